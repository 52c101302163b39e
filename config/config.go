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

package config

import (
	"maps"

	"dirpx.dev/opx/apis"
)

const (
	// DefaultDevice is the device factory calls target when none is given.
	DefaultDevice = "cpu"
	// DefaultDispatchKey is the backend serving DefaultDevice out of the box.
	// It matches the key of the bundled dense backend.
	DefaultDispatchKey apis.Key = "dense"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure DefaultDevice is valid.
	if cfg.DefaultDevice == "" {
		cfg.DefaultDevice = DefaultDevice
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
// Every call returns a fresh device table.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultDevice: DefaultDevice,
		Devices: map[string]apis.Key{
			DefaultDevice: DefaultDispatchKey,
		},
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultDevice sets the DefaultDevice option.
// An empty device resets to the default.
func WithDefaultDevice(device string) Option {
	return func(c *apis.Config) {
		if device == "" {
			c.DefaultDevice = DefaultDevice
			return
		}
		c.DefaultDevice = device
	}
}

// WithDevice maps device to key, replacing any previous mapping.
func WithDevice(device string, key apis.Key) Option {
	return func(c *apis.Config) {
		c.Devices = cloneDevices(c.Devices)
		c.Devices[device] = key
	}
}

// WithDevices replaces the whole device table.
func WithDevices(devices map[string]apis.Key) Option {
	return func(c *apis.Config) {
		c.Devices = cloneDevices(devices)
	}
}

// Clone returns a copy of cfg that shares no mutable state with it.
func Clone(cfg apis.Config) apis.Config {
	cfg.Devices = cloneDevices(cfg.Devices)
	return cfg
}

func cloneDevices(m map[string]apis.Key) map[string]apis.Key {
	out := make(map[string]apis.Key, len(m)+1)
	maps.Copy(out, m)
	return out
}
