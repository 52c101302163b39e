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

package opx

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/backend/dense"
	"dirpx.dev/opx/config"
	"dirpx.dev/opx/functional"
	"dirpx.dev/opx/namespace"
	"dirpx.dev/opx/registry"
	"dirpx.dev/opx/resolver"
)

// restore puts the canonical dispatcher back after the test.
func restore(tb testing.TB) {
	tb.Helper()
	saved := Default()
	tb.Cleanup(func() { _ = SetDefault(saved) })
}

func floatsOf(t *testing.T, v apis.Value) []float64 {
	t.Helper()
	require.True(t, v.IsColumn(), "want column, got %s", v)
	c, _ := v.Column()
	col, ok := c.(*dense.Float64)
	require.True(t, ok, "want *dense.Float64, got %T", c)
	return col.Values()
}

func deviceOf(t *testing.T, v apis.Value) string {
	t.Helper()
	c, ok := v.Column()
	require.True(t, ok, "want column, got %s", v)
	return c.Device()
}

func TestDefault_HasDenseBackend(t *testing.T) {
	ns, err := Default().Backend(dense.Key)
	require.NoError(t, err)
	assert.Equal(t, dense.Key, ns.Key())

	cfg := Config()
	assert.Equal(t, config.DefaultDevice, cfg.DefaultDevice)
	key, ok := cfg.DeviceKey(config.DefaultDevice)
	require.True(t, ok)
	assert.Equal(t, dense.Key, key)

	assert.ElementsMatch(t, dense.FactoryMethods, Default().FactoryMethods())
}

func TestOp_DispatchesToDense(t *testing.T) {
	out, err := Op("add").Call(apis.Col(dense.FromFloats(1, 2, 3)), apis.Scalar(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, floatsOf(t, out))
}

func TestOp_SameWrapper(t *testing.T) {
	assert.Same(t, Op("mul"), Op("mul"))
}

func TestOp_FactoryPath(t *testing.T) {
	w := Op("ones")
	assert.Equal(t, apis.Factory, w.Path())

	out, err := w.Invoke(apis.NewParams(apis.WithSize(3)))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, floatsOf(t, out))
	assert.Equal(t, config.DefaultDevice, deviceOf(t, out))

	_, err = w.Call()
	assert.ErrorIs(t, err, functional.ErrMissingSize)
}

func TestOp_UnsupportedDevice(t *testing.T) {
	_, err := Op("neg").Call(apis.Col(dense.FromFloats(1).To("gpu")))
	assert.ErrorIs(t, err, resolver.ErrUnsupportedDevice)
}

func TestScaleToUnitRange(t *testing.T) {
	out, err := ScaleToUnitRange(dense.FromFloats(2, 4, 6))
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{0, 0.5, 1}, floatsOf(t, out), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("scaled (-want +got):\n%s", diff)
	}
}

func TestSetConfig_MigratesBackends(t *testing.T) {
	restore(t)

	before := Default()
	SetConfig(config.NewConfig(
		config.WithDevices(map[string]apis.Key{"cpu": dense.Key, "cuda": dense.Key}),
		config.WithDefaultDevice("cuda"),
	))
	after := Default()
	require.NotSame(t, before, after)

	// Backend and factory set carried over.
	_, err := after.Backend(dense.Key)
	require.NoError(t, err)
	assert.ElementsMatch(t, dense.FactoryMethods, after.FactoryMethods())

	// New device table in effect.
	out, err := Op("abs").Call(apis.Col(dense.FromFloats(-1, 2).To("cuda")))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, floatsOf(t, out))

	out, err = Op("zeros").Invoke(apis.NewParams(apis.WithSize(2)))
	require.NoError(t, err)
	assert.Equal(t, "cuda", deviceOf(t, out))
	assert.Equal(t, "cuda", Config().DefaultDevice)
}

func TestSetConfig_OldWrappersKeepOldDispatcher(t *testing.T) {
	restore(t)

	old := Op("sum")
	SetConfig(config.NewConfig(config.WithDevice("tpu", dense.Key)))
	assert.NotSame(t, old, Op("sum"))

	_, err := old.Call(apis.Col(dense.FromFloats(1).To("tpu")))
	assert.ErrorIs(t, err, resolver.ErrUnsupportedDevice)
}

func TestSetDefault(t *testing.T) {
	restore(t)

	require.ErrorIs(t, SetDefault(nil), ErrNilFunctional)

	f := functional.New()
	require.NoError(t, SetDefault(f))
	assert.Same(t, f, Default())

	_, err := Op("add").Call(apis.Col(dense.FromFloats(1)), apis.Scalar(1))
	assert.ErrorIs(t, err, registry.ErrBackendNotRegistered)
}

func TestRegisterHelpers(t *testing.T) {
	restore(t)
	require.NoError(t, SetDefault(functional.New()))

	ns := namespace.New("echo").Def("identity", func(_ apis.Params, args ...apis.Value) (apis.Value, error) {
		return args[0], nil
	})
	require.NoError(t, RegisterBackend("echo", ns))
	assert.ErrorIs(t, RegisterBackend("echo", ns), registry.ErrDuplicateBackend)

	require.NoError(t, RegisterKind(dense.KindFloat64, "echo"))
	in := apis.Col(dense.FromFloats(7))
	out, err := Op("identity").Call(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	RegisterFactoryMethods("make")
	assert.Equal(t, []string{"make"}, Default().FactoryMethods())
	assert.Equal(t, apis.Factory, Op("make").Path())
}

func TestConcurrentUse(t *testing.T) {
	restore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := Op("exp").Call(apis.Col(dense.FromFloats(0)))
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			SetConfig(config.DefaultConfig())
		}()
	}
	wg.Wait()
}

func TestRegisterDuringSetConfig_NotLost(t *testing.T) {
	restore(t)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			key := apis.Key(fmt.Sprintf("b%d", i))
			assert.NoError(t, RegisterBackend(key, namespace.New(key)))
			assert.NoError(t, RegisterKind(apis.Kind(fmt.Sprintf("k%d", i)), key))
			RegisterFactoryMethods(fmt.Sprintf("f%d", i))
		}()
		go func() {
			defer wg.Done()
			SetConfig(config.DefaultConfig())
		}()
	}
	wg.Wait()

	f := Default()
	for i := 0; i < n; i++ {
		key := apis.Key(fmt.Sprintf("b%d", i))
		_, err := f.Backend(key)
		assert.NoError(t, err, key)
	}
	assert.Len(t, f.Kinds(), n)
	assert.Len(t, f.FactoryMethods(), n+len(dense.FactoryMethods))
}

func TestRebuild_MigratesAndPublishes(t *testing.T) {
	restore(t)

	before := Default()
	after := Rebuild(functional.WithConfig(config.NewConfig(config.WithDevice("tpu", dense.Key))))
	require.NotSame(t, before, after)
	assert.Same(t, after, Default())

	out, err := Op("neg").Call(apis.Col(dense.FromFloats(1).To("tpu")))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1}, floatsOf(t, out))
}
