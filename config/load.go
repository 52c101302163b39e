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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/opx/apis"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. OPX_DEFAULT_DEVICE.
	EnvPrefix = "OPX"
	// FileName is the config file name searched for when no path is given.
	FileName = "opx"
)

// ErrEmptyDeviceKey is returned when a device entry maps to an empty key.
var ErrEmptyDeviceKey = errors.New("opx(config): device mapped to empty dispatch key")

// file mirrors the on-disk layout:
//
//	default_device: cpu
//	devices:
//	  cpu: dense
//	  gpu: cudf
type file struct {
	DefaultDevice string            `mapstructure:"default_device"`
	Devices       map[string]string `mapstructure:"devices"`
}

// Load reads configuration with the following precedence:
// 1. Explicit settings already present on v (flags bound by the caller)
// 2. Config file (path, or opx.yaml in the working directory / /etc/opx)
// 3. Environment variables (OPX_*)
// 4. Defaults
//
// v may be nil, in which case a fresh viper instance is used. Devices read
// from the file are merged over the default table.
//
// Device labels are folded to lower case, both the keys of devices (viper
// folds map keys on read) and default_device. Dispatch compares
// Column.Device() exactly, so columns must report lower-case labels to
// match a loaded table.
func Load(v *viper.Viper, path string) (apis.Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/opx/")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apis.Config{}, fmt.Errorf("opx(config): read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var f file
	if err := v.Unmarshal(&f); err != nil {
		return apis.Config{}, fmt.Errorf("opx(config): unmarshal: %w", err)
	}

	opts := []Option{WithDefaultDevice(strings.ToLower(f.DefaultDevice))}
	for device, key := range f.Devices {
		if key == "" {
			return apis.Config{}, fmt.Errorf("%w: %q", ErrEmptyDeviceKey, device)
		}
		opts = append(opts, WithDevice(strings.ToLower(device), apis.Key(key)))
	}
	return NewConfig(opts...), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_device", DefaultDevice)
}
