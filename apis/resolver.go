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

// Resolver turns a call into a dispatch key.
// Typical chain: KindStrategy -> DeviceStrategy.
type Resolver interface {
	// Resolve picks the key for a default-path call from its arguments.
	Resolve(args []Value, cfg Config) (Key, error)

	// ResolveDevice picks the key for a factory-path call from the device
	// table alone.
	ResolveDevice(device string, cfg Config) (Key, error)
}
