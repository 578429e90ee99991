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

// Package keymagic implements the KeyMagic keyboard-layout runtime: a
// small virtual machine that rewrites typed keystrokes into
// complex-script output (notably Myanmar) according to a compiled
// KM2 keyboard layout.
//
// A host application loads a compiled layout with Engine.LoadFromBytes,
// feeds it one Input per keystroke via Engine.ProcessKey, and applies
// the returned Output to its text field. The engine is single-threaded
// per instance: concurrent callers should use separate Engine values.
// Each Engine decodes and preprocesses its own copy of the layout in
// LoadFromBytes; there is no method that attaches an already decoded
// *KM2File to an Engine.
//
// This package does not implement a platform input-method shell (no
// Windows TSF, macOS IMK, or Linux IBus integration), a KM2 layout
// compiler, or any rendering/font/GUI concern; see cmd/kmrepl for a
// minimal terminal demo of the wiring a shell is expected to do.
package keymagic
