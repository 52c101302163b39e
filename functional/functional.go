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

package functional

import (
	"go.uber.org/zap"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/builder"
	"dirpx.dev/opx/config"
)

// Functional routes named operations to registered backends.
//
// A Functional is built once, populated during initialization through the
// Register* methods, and then used concurrently through Op. All methods are
// safe for concurrent use.
type Functional struct {
	cfg       apis.Config
	bld       apis.Builder
	reg       apis.Registry
	kinds     apis.KindRegistry
	res       apis.Resolver
	factories *factorySet
	wrappers  *wrapperCache
	log       *zap.Logger
}

// Option configures a Functional.
type Option func(*options)

type options struct {
	cfg    *apis.Config
	bld    apis.Builder
	log    *zap.Logger
	parent *Functional
}

// WithConfig sets the resolution tables. Defaults to config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithBuilder sets the builder used to construct registries and the resolver.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) { o.bld = b }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithParent migrates backends, kind overrides and factory method names from
// parent. Cached wrappers are not migrated.
func WithParent(parent *Functional) Option {
	return func(o *options) { o.parent = parent }
}

// New constructs a Functional.
func New(opts ...Option) *Functional {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := config.DefaultConfig()
	switch {
	case o.cfg != nil:
		cfg = config.Clone(*o.cfg)
	case o.parent != nil:
		cfg = config.Clone(o.parent.cfg)
	}
	if cfg.DefaultDevice == "" {
		cfg.DefaultDevice = config.DefaultDevice
	}

	bld := o.bld
	if bld == nil && o.parent != nil {
		bld = o.parent.bld
	}
	if bld == nil {
		bld = builder.New()
	}

	var log *zap.Logger
	switch {
	case o.log != nil:
		log = o.log.Named("opx")
	case o.parent != nil:
		log = o.parent.log
	default:
		log = zap.NewNop()
	}

	var (
		preg   apis.Registry
		pkinds apis.KindRegistry
		fs     = newFactorySet()
	)
	if p := o.parent; p != nil {
		preg, pkinds = p.reg, p.kinds
		fs.add(p.factories.list()...)
	}

	kinds := bld.BuildKinds(cfg, pkinds)
	return &Functional{
		cfg:       cfg,
		bld:       bld,
		reg:       bld.BuildRegistry(cfg, preg),
		kinds:     kinds,
		res:       bld.BuildResolver(cfg, kinds),
		factories: fs,
		wrappers:  newWrapperCache(),
		log:       log,
	}
}

// Config returns a copy of the resolution tables.
func (f *Functional) Config() apis.Config {
	return config.Clone(f.cfg)
}

// RegisterBackend registers ns under key.
func (f *Functional) RegisterBackend(key apis.Key, ns apis.Namespace) error {
	if err := f.reg.Register(key, ns); err != nil {
		return err
	}
	f.log.Info("registered backend", zap.String("key", string(key)))
	return nil
}

// Backend returns the namespace registered under key.
func (f *Functional) Backend(key apis.Key) (apis.Namespace, error) {
	return f.reg.Lookup(key)
}

// Backends returns a snapshot of the backend registry.
func (f *Functional) Backends() []apis.Entry {
	return f.reg.Entries()
}

// RegisterKind forces columns of kind onto key, bypassing the device table.
func (f *Functional) RegisterKind(kind apis.Kind, key apis.Key) error {
	if err := f.kinds.Register(kind, key); err != nil {
		return err
	}
	f.log.Info("registered column kind",
		zap.String("kind", string(kind)),
		zap.String("key", string(key)))
	return nil
}

// Kinds returns a snapshot of the kind overrides.
func (f *Functional) Kinds() []apis.KindEntry {
	return f.kinds.Entries()
}

// RegisterFactoryMethods marks names as factory operations. It is additive
// and idempotent. Names whose wrapper already exists keep their path.
func (f *Functional) RegisterFactoryMethods(names ...string) {
	added := f.factories.add(names...)
	if len(added) > 0 {
		f.log.Info("registered factory methods", zap.Strings("ops", added))
	}
}

// FactoryMethods returns the sorted factory method names.
func (f *Functional) FactoryMethods() []string {
	return f.factories.list()
}

// Op returns the wrapper for name, creating it on first use. Every later
// call for the same name returns the identical wrapper. Unknown names are
// accepted; a missing implementation surfaces when the wrapper is called.
func (f *Functional) Op(name string) apis.Wrapper {
	w, created := f.wrappers.getOrCreate(name, f.newWrapper)
	if created {
		f.log.Debug("materialized wrapper",
			zap.String("op", name),
			zap.Stringer("path", w.Path()))
	}
	return w
}

// Ops returns the sorted names of all materialized wrappers.
func (f *Functional) Ops() []string {
	return f.wrappers.names()
}

// newWrapper runs under the wrapper cache lock, so the path decision and
// the cache insert are one atomic step.
func (f *Functional) newWrapper(name string) apis.Wrapper {
	if f.factories.has(name) {
		return &factoryWrapper{fn: f, name: name}
	}
	return &defaultWrapper{fn: f, name: name}
}

// lookup finds the implementation of op in the backend registered under key.
func (f *Functional) lookup(key apis.Key, op string) (apis.Func, error) {
	ns, err := f.reg.Lookup(key)
	if err != nil {
		return nil, err
	}
	return ns.Lookup(op)
}
