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

package strategy

import (
	"dirpx.dev/opx/apis"
)

// NewDeviceStrategy creates an apis.Strategy that maps the column's device
// label through cfg.Devices.
func NewDeviceStrategy() apis.Strategy {
	return deviceStrategy{}
}

// deviceStrategy is the general fallback.
type deviceStrategy struct{}

// Ensure deviceStrategy implements apis.Strategy.
var _ apis.Strategy = deviceStrategy{}

// TryResolve returns the key mapped to col.Device().
func (deviceStrategy) TryResolve(col apis.Column, cfg apis.Config) (apis.Key, bool) {
	if col == nil {
		return "", false
	}
	return cfg.DeviceKey(col.Device())
}
