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

// This file implements HotkeyParser (§4.8): turning a profile-activation
// hotkey string such as "Ctrl+Shift+M" into a Hotkey value a shell can
// compare against incoming key events.
package keymagic

import (
	"fmt"
	"strings"
)

// Hotkey is a parsed modifier+key combination (§4.8).
type Hotkey struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   VirtualKey
}

// oemAliases maps OEM punctuation spellings to their VirtualKey, on
// top of the digit/letter/function-key/named-special aliases already
// registered on vkAliases by vkey.go's init.
var oemAliases = map[string]VirtualKey{
	"=": VKOemPlus, "PLUS": VKOemPlus,
	"-": VKOemMinus, "MINUS": VKOemMinus,
	",": VKOemComma, "COMMA": VKOemComma,
	".": VKOemPeriod, "PERIOD": VKOemPeriod,
	";": VKOem1, "SEMICOLON": VKOem1,
	"/": VKOem2, "SLASH": VKOem2,
	"`": VKOem3, "BACKQUOTE": VKOem3, "TILDE": VKOem3,
	"[": VKOem4, "OPENBRACKET": VKOem4,
	"\\": VKOem5, "BACKSLASH": VKOem5,
	"]": VKOem6, "CLOSEBRACKET": VKOem6,
	"'": VKOem7, "QUOTE": VKOem7, "APOSTROPHE": VKOem7,
}

// ParseHotkey parses a "Mod+Mod+Key" string (§4.8): modifiers and the
// key may be separated by '+' or whitespace, case-insensitively.
// Exactly one non-modifier token is required.
func ParseHotkey(s string) (Hotkey, error) {
	if strings.TrimSpace(s) == "" {
		return Hotkey{}, fmt.Errorf("%w: empty hotkey string", ErrInvalidArgument)
	}

	tokens := splitHotkeyTokens(s)
	if len(tokens) == 0 {
		return Hotkey{}, fmt.Errorf("%w: empty hotkey string", ErrInvalidArgument)
	}

	var hk Hotkey
	keySeen := false
	for _, tok := range tokens {
		upper := strings.ToUpper(tok)
		switch upper {
		case "CTRL", "CONTROL":
			hk.Ctrl = true
			continue
		case "ALT", "OPTION":
			hk.Alt = true
			continue
		case "SHIFT":
			hk.Shift = true
			continue
		case "META", "CMD", "COMMAND", "WIN", "SUPER":
			hk.Meta = true
			continue
		}

		vk, ok := resolveHotkeyKey(upper)
		if !ok {
			return Hotkey{}, fmt.Errorf("%w: unknown hotkey token %q", ErrInvalidArgument, tok)
		}
		if keySeen {
			return Hotkey{}, fmt.Errorf("%w: more than one key in hotkey string %q", ErrInvalidArgument, s)
		}
		hk.Key = vk
		keySeen = true
	}

	if !keySeen {
		return Hotkey{}, fmt.Errorf("%w: no key in hotkey string %q", ErrInvalidArgument, s)
	}
	return hk, nil
}

func splitHotkeyTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func resolveHotkeyKey(upper string) (VirtualKey, bool) {
	if vk, ok := oemAliases[upper]; ok {
		return vk, true
	}
	return ParseVirtualKey(upper)
}
