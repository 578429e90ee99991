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

import "testing"

func TestVirtualKeyPredicates(t *testing.T) {
	if !VKKeyA.IsLetter() || VKKey0.IsLetter() {
		t.Error("IsLetter classification wrong")
	}
	if !VKKey5.IsNumber() || VKKeyB.IsNumber() {
		t.Error("IsNumber classification wrong")
	}
	if !VKF7.IsFunctionKey() || VKKeyA.IsFunctionKey() {
		t.Error("IsFunctionKey classification wrong")
	}
	if !VKShift.IsModifier() || !VKAltGr.IsModifier() || VKKeyA.IsModifier() {
		t.Error("IsModifier classification wrong")
	}
	if VirtualKey(0).IsValid() || !VKNull.IsValid() || VirtualKey(9999).IsValid() {
		t.Error("IsValid range wrong")
	}
}

func TestParseVirtualKey(t *testing.T) {
	tests := []struct {
		in   string
		want VirtualKey
	}{
		{"a", VKKeyA}, {"A", VKKeyA}, {"  z ", VKKeyZ},
		{"5", VKKey5}, {"F3", VKF3}, {"backspace", VKBack},
		{"ESC", VKEsc},
	}
	for _, tt := range tests {
		got, ok := ParseVirtualKey(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseVirtualKey(%q) = (%v, %v), want (%v, true)", tt.in, got, ok, tt.want)
		}
	}
	if _, ok := ParseVirtualKey("not-a-key"); ok {
		t.Error("expected unknown key name to fail")
	}
}

func TestVirtualKeyString(t *testing.T) {
	if VKKeyA.String() != "A" {
		t.Errorf("VKKeyA.String() = %q", VKKeyA.String())
	}
	if VKF1.String() != "F1" {
		t.Errorf("VKF1.String() = %q", VKF1.String())
	}
}
