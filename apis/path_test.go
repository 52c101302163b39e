/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/opx/apis"
)

// TestPathString verifies the stable tokens and the diagnostic form for
// unknown values.
func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path apis.Path
		want string
	}{
		{"Default", apis.Default, "Default"},
		{"Factory", apis.Factory, "Factory"},
		{"Unknown", apis.Path(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestParsePathValid(t *testing.T) {
	tests := []struct {
		input string
		want  apis.Path
	}{
		{"Default", apis.Default},
		{"default", apis.Default},
		{"  FACTORY ", apis.Factory},
		{"fAcToRy", apis.Factory},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := apis.ParsePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "factory1", "def"} {
		t.Run(input, func(t *testing.T) {
			got, err := apis.ParsePath(input)
			require.Error(t, err)
			assert.Equal(t, apis.Default, got)
		})
	}
}

func TestPathText(t *testing.T) {
	b, err := apis.Factory.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Factory", string(b))

	_, err = apis.Path(7).MarshalText()
	assert.Error(t, err)

	p := apis.Factory
	require.Error(t, p.UnmarshalText([]byte("bogus")))
	assert.Equal(t, apis.Factory, p, "failed unmarshal leaves the value unchanged")

	require.NoError(t, p.UnmarshalText([]byte("default")))
	assert.Equal(t, apis.Default, p)
}

func TestPathJSON(t *testing.T) {
	type doc struct {
		Paths map[string]apis.Path `json:"paths"`
	}

	in := doc{Paths: map[string]apis.Path{"full": apis.Factory, "add": apis.Default}}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paths":{"full":"Factory","add":"Default"}}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
