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

package functional_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/config"
	"dirpx.dev/opx/functional"
	"dirpx.dev/opx/namespace"
	"dirpx.dev/opx/registry"
	"dirpx.dev/opx/resolver"
)

// col is a minimal column living on an arbitrary device.
type col struct {
	kind   apis.Kind
	device string
}

func (c col) Kind() apis.Kind { return c.kind }
func (c col) Device() string  { return c.device }

// call is one recorded backend invocation.
type call struct {
	key    apis.Key
	op     string
	params apis.Params
	args   []apis.Value
}

// recorder hands out namespaces whose ops record their invocation and
// return a label naming the backend.
type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) namespace(key apis.Key, ops ...string) *namespace.Table {
	ns := namespace.New(key)
	for _, op := range ops {
		ns.Def(op, func(p apis.Params, args ...apis.Value) (apis.Value, error) {
			r.mu.Lock()
			r.calls = append(r.calls, call{key: key, op: op, params: p, args: args})
			r.mu.Unlock()
			return apis.Label(string(key)), nil
		})
	}
	return ns
}

func (r *recorder) last(t *testing.T) call {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls)
	return r.calls[len(r.calls)-1]
}

// newFunctional wires two backends: "velox" for cpu and "cudf" for gpu.
func newFunctional(t *testing.T, opts ...functional.Option) (*functional.Functional, *recorder) {
	t.Helper()
	cfg := config.NewConfig(
		config.WithDevices(map[string]apis.Key{"cpu": "velox", "gpu": "cudf"}),
	)
	f := functional.New(append([]functional.Option{functional.WithConfig(cfg)}, opts...)...)
	rec := &recorder{}
	require.NoError(t, f.RegisterBackend("velox", rec.namespace("velox", "add", "full", "echo")))
	require.NoError(t, f.RegisterBackend("cudf", rec.namespace("cudf", "add", "full", "echo")))
	return f, rec
}

func backendOf(t *testing.T, v apis.Value) string {
	t.Helper()
	s, ok := v.Label()
	require.True(t, ok, "result %s is not a label", v)
	return s
}

func TestRegisterBackend_DuplicateKeepsFirst(t *testing.T) {
	f, rec := newFunctional(t)

	err := f.RegisterBackend("velox", rec.namespace("velox-2", "add"))
	require.ErrorIs(t, err, registry.ErrDuplicateBackend)

	ns, err := f.Backend("velox")
	require.NoError(t, err)
	assert.Equal(t, apis.Key("velox"), ns.Key())

	out, err := f.Op("add").Call(apis.Col(col{kind: "k", device: "cpu"}))
	require.NoError(t, err)
	assert.Equal(t, "velox", backendOf(t, out))
}

func TestDefaultPath_NoColumnArgument(t *testing.T) {
	f, _ := newFunctional(t)

	argSets := [][]apis.Value{
		nil,
		{apis.Scalar(1)},
		{apis.Scalar(1), apis.Label("gpu")},
	}
	for _, name := range []string{"add", "echo", "never_registered"} {
		for _, args := range argSets {
			_, err := f.Op(name).Call(args...)
			assert.ErrorIs(t, err, resolver.ErrNoColumnArgument, "op=%s args=%v", name, args)

			_, err = f.Op(name).Invoke(apis.NewParams(apis.WithSize(3), apis.WithDevice("cpu")), args...)
			assert.ErrorIs(t, err, resolver.ErrNoColumnArgument, "op=%s args=%v", name, args)
		}
	}
}

func TestDefaultPath_KindOverrideIgnoresDevice(t *testing.T) {
	f, _ := newFunctional(t)
	require.NoError(t, f.RegisterKind("arrow.list", "velox"))

	for _, device := range []string{"cpu", "gpu", "unmapped"} {
		out, err := f.Op("add").Call(apis.Col(col{kind: "arrow.list", device: device}))
		require.NoError(t, err, device)
		assert.Equal(t, "velox", backendOf(t, out), device)
	}
}

func TestRegisterKind_Conflict(t *testing.T) {
	f, _ := newFunctional(t)
	require.NoError(t, f.RegisterKind("arrow.list", "velox"))

	err := f.RegisterKind("arrow.list", "velox")
	require.ErrorIs(t, err, registry.ErrDuplicateKind)
	err = f.RegisterKind("arrow.list", "cudf")
	require.ErrorIs(t, err, registry.ErrDuplicateKind)
	assert.Equal(t, []apis.KindEntry{{Kind: "arrow.list", Key: "velox"}}, f.Kinds())
}

func TestDefaultPath_DeviceSelectsBackend(t *testing.T) {
	f, _ := newFunctional(t)

	out, err := f.Op("add").Call(apis.Col(col{kind: "k", device: "gpu"}), apis.Scalar(1))
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))

	out, err = f.Op("add").Call(apis.Scalar(1), apis.Col(col{kind: "k", device: "cpu"}))
	require.NoError(t, err)
	assert.Equal(t, "velox", backendOf(t, out))

	_, err = f.Op("add").Call(apis.Col(col{kind: "k", device: "tpu"}))
	assert.ErrorIs(t, err, resolver.ErrUnsupportedDevice)
}

func TestDefaultPath_FirstColumnWins(t *testing.T) {
	f, _ := newFunctional(t)

	out, err := f.Op("add").Call(
		apis.Col(col{kind: "k", device: "gpu"}),
		apis.Col(col{kind: "k", device: "cpu"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))
}

func TestDefaultPath_ForwardsUnchanged(t *testing.T) {
	f, rec := newFunctional(t)
	args := []apis.Value{apis.Label("x"), apis.Col(col{kind: "k", device: "cpu"}), apis.Scalar(2.5)}
	params := apis.NewParams(apis.WithDevice("gpu"))

	_, err := f.Op("echo").Invoke(params, args...)
	require.NoError(t, err)

	got := rec.last(t)
	assert.Equal(t, apis.Key("velox"), got.key, "default path ignores the device param")
	assert.Equal(t, "echo", got.op)
	assert.Equal(t, params, got.params)
	assert.Equal(t, args, got.args)
}

func TestDefaultPath_OperationNotFound(t *testing.T) {
	f, _ := newFunctional(t)

	w := f.Op("definitely_missing")
	require.NotNil(t, w, "unknown names are accepted optimistically")

	_, err := w.Call(apis.Col(col{kind: "k", device: "cpu"}))
	assert.ErrorIs(t, err, apis.ErrOperationNotFound)
}

func TestDefaultPath_BackendNotRegistered(t *testing.T) {
	cfg := config.NewConfig(config.WithDevice("gpu", "cudf"))
	f := functional.New(functional.WithConfig(cfg))

	_, err := f.Op("add").Call(apis.Col(col{kind: "k", device: "gpu"}))
	assert.ErrorIs(t, err, registry.ErrBackendNotRegistered)
}

func TestOp_ReturnsSameWrapper(t *testing.T) {
	f, _ := newFunctional(t)

	a := f.Op("add")
	b := f.Op("add")
	assert.Same(t, a, b)
	assert.Equal(t, "add", a.Name())
	assert.Equal(t, apis.Default, a.Path())
	assert.Equal(t, []string{"add"}, f.Ops())
}

func TestFactoryPath_MissingSize(t *testing.T) {
	f, _ := newFunctional(t)
	f.RegisterFactoryMethods("full")

	w := f.Op("full")
	require.Equal(t, apis.Factory, w.Path())

	_, err := w.Invoke(apis.NewParams(apis.WithDevice("cpu")), apis.Scalar(1))
	assert.ErrorIs(t, err, functional.ErrMissingSize)

	_, err = w.Call(apis.Scalar(1))
	assert.ErrorIs(t, err, functional.ErrMissingSize)
}

func TestFactoryPath_UnsupportedSize(t *testing.T) {
	f, _ := newFunctional(t)
	f.RegisterFactoryMethods("full")

	params := apis.NewParams(apis.WithSizeSpec(apis.SymbolicSize("len(x)")), apis.WithDevice("cpu"))
	_, err := f.Op("full").Invoke(params)
	require.ErrorIs(t, err, functional.ErrUnsupportedSize)
	assert.Contains(t, err.Error(), "symbolic(len(x))")
}

func TestFactoryPath_RoutesByDeviceOnly(t *testing.T) {
	f, rec := newFunctional(t)
	f.RegisterFactoryMethods("full")
	require.NoError(t, f.RegisterKind("arrow.list", "velox"))

	// The column argument would resolve to velox on the default path.
	args := []apis.Value{apis.Col(col{kind: "arrow.list", device: "cpu"}), apis.Scalar(7)}
	out, err := f.Op("full").Invoke(apis.NewParams(apis.WithSize(4), apis.WithDevice("gpu")), args...)
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))

	got := rec.last(t)
	assert.Equal(t, args, got.args)
	n, ok := got.params.Size.Int()
	require.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, "gpu", got.params.Device)
}

func TestFactoryPath_DefaultDevice(t *testing.T) {
	f, rec := newFunctional(t)
	f.RegisterFactoryMethods("full")

	out, err := f.Op("full").Invoke(apis.NewParams(apis.WithSize(2)))
	require.NoError(t, err)
	assert.Equal(t, "velox", backendOf(t, out))
	assert.Equal(t, config.DefaultDevice, rec.last(t).params.Device)
}

func TestFactoryPath_NoArgumentsNeeded(t *testing.T) {
	f, _ := newFunctional(t)
	f.RegisterFactoryMethods("full")

	_, err := f.Op("full").Invoke(apis.NewParams(apis.WithSize(0)))
	assert.NoError(t, err)
}

func TestFactoryPath_UnsupportedDevice(t *testing.T) {
	f, _ := newFunctional(t)
	f.RegisterFactoryMethods("full")

	_, err := f.Op("full").Invoke(apis.NewParams(apis.WithSize(2), apis.WithDevice("tpu")))
	assert.ErrorIs(t, err, resolver.ErrUnsupportedDevice)
}

func TestRegisterFactoryMethods_Idempotent(t *testing.T) {
	f, _ := newFunctional(t)

	f.RegisterFactoryMethods("full", "zeros")
	f.RegisterFactoryMethods("zeros", "full", "arange")
	assert.Equal(t, []string{"arange", "full", "zeros"}, f.FactoryMethods())
}

func TestResolveOnce_LateFactoryRegistration(t *testing.T) {
	f, _ := newFunctional(t)

	before := f.Op("full")
	require.Equal(t, apis.Default, before.Path())

	f.RegisterFactoryMethods("full", "fresh")

	after := f.Op("full")
	assert.Same(t, before, after)
	assert.Equal(t, apis.Default, after.Path())

	// The existing wrapper still dispatches on its column argument and
	// ignores the size requirement.
	out, err := after.Call(apis.Col(col{kind: "k", device: "gpu"}))
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))

	// A never-requested name observes the updated set.
	assert.Equal(t, apis.Factory, f.Op("fresh").Path())
}

func TestOp_ConcurrentCreationAgrees(t *testing.T) {
	f, _ := newFunctional(t)

	const workers = 32
	got := make([]apis.Wrapper, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if i == workers/2 {
				f.RegisterFactoryMethods("racy")
			}
			got[i] = f.Op("racy")
		}()
	}
	close(start)
	wg.Wait()

	for _, w := range got {
		assert.Same(t, got[0], w)
	}
}

func TestWithParent_Migrates(t *testing.T) {
	parent, _ := newFunctional(t)
	require.NoError(t, parent.RegisterKind("arrow.list", "cudf"))
	parent.RegisterFactoryMethods("full")
	_ = parent.Op("add")

	child := functional.New(functional.WithParent(parent))

	assert.Equal(t, parent.Config(), child.Config())
	assert.Len(t, child.Backends(), 2)
	assert.Equal(t, parent.Kinds(), child.Kinds())
	assert.Equal(t, []string{"full"}, child.FactoryMethods())
	assert.Empty(t, child.Ops(), "wrappers are rebuilt lazily")

	out, err := child.Op("add").Call(apis.Col(col{kind: "arrow.list", device: "cpu"}))
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))
}

func TestWithParent_ConfigOverride(t *testing.T) {
	parent, _ := newFunctional(t)
	cfg := config.NewConfig(config.WithDevices(map[string]apis.Key{"cpu": "cudf"}))

	child := functional.New(functional.WithParent(parent), functional.WithConfig(cfg))

	out, err := child.Op("add").Call(apis.Col(col{kind: "k", device: "cpu"}))
	require.NoError(t, err)
	assert.Equal(t, "cudf", backendOf(t, out))
}

func TestConfig_IsCopy(t *testing.T) {
	f, _ := newFunctional(t)

	cfg := f.Config()
	cfg.Devices["tpu"] = "xla"

	_, err := f.Op("add").Call(apis.Col(col{kind: "k", device: "tpu"}))
	assert.ErrorIs(t, err, resolver.ErrUnsupportedDevice)
}

func TestLogger_Registrations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, _ := newFunctional(t, functional.WithLogger(zap.New(core)))

	require.NoError(t, f.RegisterKind("arrow.list", "velox"))
	f.RegisterFactoryMethods("full")
	f.RegisterFactoryMethods("full")
	_ = f.Op("full")
	_ = f.Op("full")

	assert.Equal(t, 2, logs.FilterMessage("registered backend").Len())
	assert.Equal(t, 1, logs.FilterMessage("registered column kind").Len())
	assert.Equal(t, 1, logs.FilterMessage("registered factory methods").Len())

	materialized := logs.FilterMessage("materialized wrapper").All()
	require.Len(t, materialized, 1)
	assert.Equal(t, "full", materialized[0].ContextMap()["op"])
	assert.Equal(t, "Factory", materialized[0].ContextMap()["path"])

	// Failures are returned, not logged.
	before := logs.Len()
	_, _ = f.Op("add").Call()
	assert.Equal(t, before+1, logs.Len(), "only the materialization of add is logged")
}
