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

package apis

import (
	"fmt"
	"strings"
)

// Path selects how a wrapper resolves its backend.
//
// # Values
//
//   - Default: scan the arguments for the first column, then apply the
//     kind override table and finally the device table.
//   - Factory: ignore the arguments and resolve from the explicit device
//     parameter; an integer size is mandatory.
//
// A wrapper's Path is decided once, when the wrapper is materialized, and
// never changes afterwards.
type Path int

const (
	// Default resolves from the first column argument.
	Default Path = iota
	// Factory resolves from the device parameter.
	Factory
)

// String returns "Default", "Factory", or "Unknown(<n>)" for out-of-range
// values. It never panics.
func (p Path) String() string {
	switch p {
	case Default:
		return "Default"
	case Factory:
		return "Factory"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParsePath parses a case-insensitive path token. Surrounding whitespace is
// ignored. On failure it returns Default and a non-nil error.
func ParsePath(s string) (Path, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Default, fmt.Errorf("opx: empty path")
	}

	switch strings.ToUpper(trimmed) {
	case "DEFAULT":
		return Default, nil
	case "FACTORY":
		return Factory, nil
	default:
		return Default, fmt.Errorf("opx: unknown path %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than being serialized as "Unknown(...)".
func (p Path) MarshalText() ([]byte, error) {
	switch p {
	case Default, Factory:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("opx: cannot marshal unknown path %d", p)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *p is left
// unchanged.
func (p *Path) UnmarshalText(text []byte) error {
	value, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
