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

import "strings"

// VirtualKey is KeyMagic's internal key-code space. These values are NOT
// platform key codes: they appear literally in compiled KM2 files via the
// PREDEFINED opcode, so their numeric values are part of the wire format
// and must never be renumbered. A host platform shell is responsible for
// mapping its own key codes into this space (see the keycode subpackage
// for one concrete example, an X11/IBus keysym table).
type VirtualKey uint16

// Virtual key constants. Numbering matches the reference KeyMagic engine
// exactly; see keymagic-core-cpp/include/keymagic/virtual_keys.h in the
// original implementation this runtime is compatible with.
const (
	VKNull VirtualKey = 1 // NULL output (clears composing text)

	// Control keys
	VKBack    VirtualKey = 2
	VKTab     VirtualKey = 3
	VKReturn  VirtualKey = 4
	VKShift   VirtualKey = 5
	VKControl VirtualKey = 6
	VKMenu    VirtualKey = 7
	VKPause   VirtualKey = 8
	VKCapital VirtualKey = 9
	VKKanji   VirtualKey = 10
	VKEscape  VirtualKey = 11
	VKSpace   VirtualKey = 12
	VKPrior   VirtualKey = 13
	VKNext    VirtualKey = 14
	VKDelete  VirtualKey = 15

	// Number keys
	VKKey0 VirtualKey = 16
	VKKey1 VirtualKey = 17
	VKKey2 VirtualKey = 18
	VKKey3 VirtualKey = 19
	VKKey4 VirtualKey = 20
	VKKey5 VirtualKey = 21
	VKKey6 VirtualKey = 22
	VKKey7 VirtualKey = 23
	VKKey8 VirtualKey = 24
	VKKey9 VirtualKey = 25

	// Letter keys
	VKKeyA VirtualKey = 26
	VKKeyB VirtualKey = 27
	VKKeyC VirtualKey = 28
	VKKeyD VirtualKey = 29
	VKKeyE VirtualKey = 30
	VKKeyF VirtualKey = 31
	VKKeyG VirtualKey = 32
	VKKeyH VirtualKey = 33
	VKKeyI VirtualKey = 34
	VKKeyJ VirtualKey = 35
	VKKeyK VirtualKey = 36
	VKKeyL VirtualKey = 37
	VKKeyM VirtualKey = 38
	VKKeyN VirtualKey = 39
	VKKeyO VirtualKey = 40
	VKKeyP VirtualKey = 41
	VKKeyQ VirtualKey = 42
	VKKeyR VirtualKey = 43
	VKKeyS VirtualKey = 44
	VKKeyT VirtualKey = 45
	VKKeyU VirtualKey = 46
	VKKeyV VirtualKey = 47
	VKKeyW VirtualKey = 48
	VKKeyX VirtualKey = 49
	VKKeyY VirtualKey = 50
	VKKeyZ VirtualKey = 51

	// Numpad keys
	VKNumpad0 VirtualKey = 52
	VKNumpad1 VirtualKey = 53
	VKNumpad2 VirtualKey = 54
	VKNumpad3 VirtualKey = 55
	VKNumpad4 VirtualKey = 56
	VKNumpad5 VirtualKey = 57
	VKNumpad6 VirtualKey = 58
	VKNumpad7 VirtualKey = 59
	VKNumpad8 VirtualKey = 60
	VKNumpad9 VirtualKey = 61

	// Numpad operators
	VKMultiply VirtualKey = 62
	VKAdd      VirtualKey = 63
	VKSeparator VirtualKey = 64
	VKSubtract VirtualKey = 65
	VKDecimal  VirtualKey = 66
	VKDivide   VirtualKey = 67

	// Function keys
	VKF1  VirtualKey = 68
	VKF2  VirtualKey = 69
	VKF3  VirtualKey = 70
	VKF4  VirtualKey = 71
	VKF5  VirtualKey = 72
	VKF6  VirtualKey = 73
	VKF7  VirtualKey = 74
	VKF8  VirtualKey = 75
	VKF9  VirtualKey = 76
	VKF10 VirtualKey = 77
	VKF11 VirtualKey = 78
	VKF12 VirtualKey = 79

	// Left/right modifier variants
	VKLShift   VirtualKey = 80
	VKRShift   VirtualKey = 81
	VKLControl VirtualKey = 82
	VKRControl VirtualKey = 83
	VKLMenu    VirtualKey = 84
	VKRMenu    VirtualKey = 85

	// OEM punctuation (US layout names)
	VKOem1    VirtualKey = 86 // ;:
	VKOemPlus VirtualKey = 87
	VKOemComma VirtualKey = 88
	VKOemMinus VirtualKey = 89
	VKOemPeriod VirtualKey = 90
	VKOem2    VirtualKey = 91 // /?
	VKOem3    VirtualKey = 92 // `~
	VKOem4    VirtualKey = 93 // [{
	VKOem5    VirtualKey = 94 // \|
	VKOem6    VirtualKey = 95 // ]}
	VKOem7    VirtualKey = 96 // '"
	VKOem8    VirtualKey = 97
	VKOemAx   VirtualKey = 98
	VKOem102  VirtualKey = 99
	VKIcoHelp VirtualKey = 100
	VKIco00   VirtualKey = 101

	// Navigation keys
	VKEnd    VirtualKey = 102
	VKHome   VirtualKey = 103
	VKLeft   VirtualKey = 104
	VKUp     VirtualKey = 105
	VKRight  VirtualKey = 106
	VKDown   VirtualKey = 107
	VKInsert VirtualKey = 108

	// Aliases used by some layouts and by HotkeyParser
	VKCapsLock           VirtualKey = 109 // alias of VKCapital
	VKCflex              VirtualKey = 110
	VKColon              VirtualKey = 111 // alias of VKOem1
	VKQuote              VirtualKey = 112 // alias of VKOem7
	VKBackSlash          VirtualKey = 113 // alias of VKOem5
	VKOpenSquareBracket  VirtualKey = 114 // alias of VKOem4
	VKCloseSquareBracket VirtualKey = 115 // alias of VKOem6
	VKBackQuote          VirtualKey = 116 // alias of VKOem3
	VKForwardSlash       VirtualKey = 117 // alias of VKOem2
	VKEnter              VirtualKey = 118 // alias of VKReturn
	VKCtrl               VirtualKey = 119 // alias of VKControl
	VKAlt                VirtualKey = 120 // alias of VKMenu
	VKEsc                VirtualKey = 121 // alias of VKEscape
	VKAltGr              VirtualKey = 122 // alias of VKRMenu

	vkMaxValue = VKAltGr
)

// IsValid reports whether v falls within the closed VirtualKey range.
func (v VirtualKey) IsValid() bool {
	return v >= VKNull && v <= vkMaxValue
}

// IsModifier reports whether v is a modifier key (Shift/Ctrl/Alt and
// their left/right/alias variants). matchKeyCombo consults this to
// decide whether a PREDEFINED segment gates on a Modifiers bit or on
// Input.KeyCode equality.
func (v VirtualKey) IsModifier() bool {
	switch v {
	case VKShift, VKControl, VKMenu,
		VKLShift, VKRShift, VKLControl, VKRControl, VKLMenu, VKRMenu,
		VKCtrl, VKAlt, VKAltGr:
		return true
	default:
		return false
	}
}

// IsLetter reports whether v is one of VKKeyA..VKKeyZ.
func (v VirtualKey) IsLetter() bool { return v >= VKKeyA && v <= VKKeyZ }

// IsNumber reports whether v is one of VKKey0..VKKey9.
func (v VirtualKey) IsNumber() bool { return v >= VKKey0 && v <= VKKey9 }

// IsFunctionKey reports whether v is one of VKF1..VKF12.
func (v VirtualKey) IsFunctionKey() bool { return v >= VKF1 && v <= VKF12 }

var vkNames = map[VirtualKey]string{
	VKNull: "NULL", VKBack: "BACK", VKTab: "TAB", VKReturn: "RETURN",
	VKShift: "SHIFT", VKControl: "CONTROL", VKMenu: "MENU", VKPause: "PAUSE",
	VKCapital: "CAPITAL", VKKanji: "KANJI", VKEscape: "ESCAPE", VKSpace: "SPACE",
	VKPrior: "PRIOR", VKNext: "NEXT", VKDelete: "DELETE",
	VKKey0: "0", VKKey1: "1", VKKey2: "2", VKKey3: "3", VKKey4: "4",
	VKKey5: "5", VKKey6: "6", VKKey7: "7", VKKey8: "8", VKKey9: "9",
	VKKeyA: "A", VKKeyB: "B", VKKeyC: "C", VKKeyD: "D", VKKeyE: "E",
	VKKeyF: "F", VKKeyG: "G", VKKeyH: "H", VKKeyI: "I", VKKeyJ: "J",
	VKKeyK: "K", VKKeyL: "L", VKKeyM: "M", VKKeyN: "N", VKKeyO: "O",
	VKKeyP: "P", VKKeyQ: "Q", VKKeyR: "R", VKKeyS: "S", VKKeyT: "T",
	VKKeyU: "U", VKKeyV: "V", VKKeyW: "W", VKKeyX: "X", VKKeyY: "Y", VKKeyZ: "Z",
	VKLShift: "LSHIFT", VKRShift: "RSHIFT", VKLControl: "LCONTROL",
	VKRControl: "RCONTROL", VKLMenu: "LMENU", VKRMenu: "RMENU",
	VKEnd: "END", VKHome: "HOME", VKLeft: "LEFT", VKUp: "UP",
	VKRight: "RIGHT", VKDown: "DOWN", VKInsert: "INSERT",
	VKEnter: "ENTER", VKCtrl: "CTRL", VKAlt: "ALT", VKEsc: "ESC", VKAltGr: "ALTGR",
}

// String returns a short display name ("A", "BACK", ...), or a
// numeric fallback for values with no symbolic name registered.
func (v VirtualKey) String() string {
	if name, ok := vkNames[v]; ok {
		return name
	}
	if v.IsFunctionKey() {
		return "F" + itoa(int(v-VKF1+1))
	}
	return "VK(" + itoa(int(v)) + ")"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

var vkAliases = map[string]VirtualKey{
	"NULL": VKNull, "BACK": VKBack, "BACKSPACE": VKBack, "TAB": VKTab,
	"RETURN": VKReturn, "ENTER": VKEnter, "SHIFT": VKShift,
	"CONTROL": VKControl, "CTRL": VKCtrl, "MENU": VKMenu, "ALT": VKAlt,
	"PAUSE": VKPause, "CAPITAL": VKCapital, "CAPSLOCK": VKCapsLock,
	"ESCAPE": VKEscape, "ESC": VKEsc, "SPACE": VKSpace, "PRIOR": VKPrior,
	"PAGEUP": VKPrior, "PGUP": VKPrior, "NEXT": VKNext, "PAGEDOWN": VKNext,
	"PGDN": VKNext, "DELETE": VKDelete, "DEL": VKDelete,
	"END": VKEnd, "HOME": VKHome, "LEFT": VKLeft, "UP": VKUp,
	"RIGHT": VKRight, "DOWN": VKDown, "INSERT": VKInsert, "INS": VKInsert,
	"LSHIFT": VKLShift, "RSHIFT": VKRShift, "LCONTROL": VKLControl,
	"RCONTROL": VKRControl, "LMENU": VKLMenu, "RMENU": VKRMenu, "ALTGR": VKAltGr,
}

func init() {
	for i := 0; i < 10; i++ {
		vkAliases[itoa(i)] = VKKey0 + VirtualKey(i)
	}
	for c := byte('A'); c <= 'Z'; c++ {
		vkAliases[string(c)] = VKKeyA + VirtualKey(c-'A')
	}
	for i := 0; i < 10; i++ {
		vkAliases["NUMPAD"+itoa(i)] = VKNumpad0 + VirtualKey(i)
	}
	for i := 1; i <= 12; i++ {
		vkAliases["F"+itoa(i)] = VKF1 + VirtualKey(i-1)
	}
}

// ParseVirtualKey resolves a case-insensitive key name (as accepted by
// HotkeyParser) to a VirtualKey. The second return value is false for
// unknown names.
func ParseVirtualKey(name string) (VirtualKey, bool) {
	vk, ok := vkAliases[strings.ToUpper(strings.TrimSpace(name))]
	return vk, ok
}
