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

package keymagic

import (
	"errors"
)

// Sentinel errors returned by this package. Loader and decoder failures
// wrap one of these with fmt.Errorf("%w: ...") for positional context;
// callers should use errors.Is to test for a specific kind. Runtime
// matching never fails: unknown opcodes are skipped at preprocessing
// time and out-of-range variable/capture references simply produce no
// output, so ProcessKey and TestProcessKey never return an error.
var (
	// ErrInvalidFormat indicates a KM2 byte stream has a bad magic
	// code, is truncated at some section, or has a length field that
	// overruns the remaining buffer.
	ErrInvalidFormat = errors.New("keymagic: invalid km2 format")

	// ErrUnsupportedVersion indicates the header's major/minor version
	// falls outside the compatible range (major 1, minor 3 through 5).
	ErrUnsupportedVersion = errors.New("keymagic: unsupported km2 version")

	// ErrInvalidArgument indicates a nil or empty argument was passed
	// to an API entry point, such as an empty hotkey string.
	ErrInvalidArgument = errors.New("keymagic: invalid argument")

	// ErrIoError indicates the thin file-loading convenience in
	// loader.go failed to read the KM2 file from disk.
	ErrIoError = errors.New("keymagic: io error")
)
