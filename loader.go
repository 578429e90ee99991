// Copyright 2026 The KeyMagic Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file is the thin file-reading convenience mentioned in §5 and
// §7: the core itself never touches the filesystem.
package keymagic

import (
	"fmt"
	"os"
)

// LoadFromFile reads path and loads it as a KM2 keyboard layout. Read
// failures are wrapped in ErrIoError; decode failures are returned as
// produced by Decode.
func (e *Engine) LoadFromFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIoError, path, err)
	}
	return e.LoadFromBytes(b)
}
