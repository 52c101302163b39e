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

// Config carries the static resolution tables. It is passed by value and
// must be treated as immutable once handed to a resolver; use config.NewConfig
// to derive modified copies.
type Config struct {
	// DefaultDevice is the device a factory call targets when it names none.
	DefaultDevice string

	// Devices maps a device label to the backend serving it.
	Devices map[string]Key
}

// DeviceKey returns the key mapped to device.
func (c Config) DeviceKey(device string) (Key, bool) {
	k, ok := c.Devices[device]
	return k, ok
}
