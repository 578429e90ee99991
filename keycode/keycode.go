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

// Package keycode provides one concrete host-platform key-code table,
// X11/IBus keysyms, as referenced by VirtualKey's two-table contract
// (keymagic spec §4.7: "Provides two lookup tables mapping to/from a
// platform key-code space"). A shell targeting a different platform
// (Windows VK_*, macOS kVK_*) supplies its own equivalent table; it
// does not belong in the core keymagic package.
package keycode

import "github.com/thantthet/keymagic-go"

// X11 keysym values used below, copied from X11/keysymdef.h. Only the
// keysyms this table maps are named; keymagic_map_ibus_keyval in the
// reference IBus engine enumerates the same set.
const (
	keyBackSpace  = 0xff08
	keyTab        = 0xff09
	keyReturn     = 0xff0d
	keyKPEnter    = 0xff8d
	keyShiftL     = 0xffe1
	keyShiftR     = 0xffe2
	keyControlL   = 0xffe3
	keyControlR   = 0xffe4
	keyAltL       = 0xffe9
	keyAltR       = 0xffea
	keyPause      = 0xff13
	keyCapsLock   = 0xffe5
	keyEscape     = 0xff1b
	keySpace      = 0x0020
	keyPageUp     = 0xff55
	keyPageDown   = 0xff56
	keyDelete     = 0xffff

	key0 = 0x0030
	key9 = 0x0039

	keyLowerA = 0x0061
	keyUpperA = 0x0041
	keyLowerZ = 0x007a
	keyUpperZ = 0x005a

	keyKP0        = 0xffb0
	keyKP9        = 0xffb9
	keyKPMultiply = 0xffaa
	keyKPAdd      = 0xffab
	keyKPSeparator = 0xffac
	keyKPSubtract = 0xffad
	keyKPDecimal  = 0xffae
	keyKPDivide   = 0xffaf

	keyF1  = 0xffbe
	keyF12 = 0xffc9

	keyExclam      = 0x0021
	keyAt          = 0x0040
	keyNumberSign  = 0x0023
	keyDollar      = 0x0024
	keyPercent     = 0x0025
	keyAsciiCircum = 0x005e
	keyAmpersand   = 0x0026
	keyAsterisk    = 0x002a
	keyParenLeft   = 0x0028
	keyParenRight  = 0x0029

	keySemicolon    = 0x003b
	keyColon        = 0x003a
	keyEqual        = 0x003d
	keyPlus         = 0x002b
	keyComma        = 0x002c
	keyLess         = 0x003c
	keyMinus        = 0x002d
	keyUnderscore   = 0x005f
	keyPeriod       = 0x002e
	keyGreater      = 0x003e
	keySlash        = 0x002f
	keyQuestion     = 0x003f
	keyGrave        = 0x0060
	keyAsciiTilde   = 0x007e
	keyBracketLeft  = 0x005b
	keyBraceLeft    = 0x007b
	keyBackslash    = 0x005c
	keyBar          = 0x007c
	keyBracketRight = 0x005d
	keyBraceRight   = 0x007d
	keyApostrophe   = 0x0027
	keyQuoteDbl     = 0x0022
)

// x11ToVK is the keysym-to-VirtualKey direction, grounded on
// keymagic_map_ibus_keyval in the reference IBus integration: shifted
// symbol keysyms (e.g. exclam) map to the base digit key, and both the
// unshifted and shifted punctuation forms of an OEM key map to the same
// VirtualKey, since KeyMagic rules gate on the physical OEM slot, not
// the shifted glyph.
var x11ToVK = map[uint32]keymagic.VirtualKey{
	keyBackSpace: keymagic.VKBack,
	keyTab:       keymagic.VKTab,
	keyReturn:    keymagic.VKReturn,
	keyKPEnter:   keymagic.VKReturn,
	keyShiftL:    keymagic.VKLShift,
	keyShiftR:    keymagic.VKRShift,
	keyControlL:  keymagic.VKLControl,
	keyControlR:  keymagic.VKRControl,
	keyAltL:      keymagic.VKLMenu,
	keyAltR:      keymagic.VKRMenu,
	keyPause:     keymagic.VKPause,
	keyCapsLock:  keymagic.VKCapital,
	keyEscape:    keymagic.VKEscape,
	keySpace:     keymagic.VKSpace,
	keyPageUp:    keymagic.VKPrior,
	keyPageDown:  keymagic.VKNext,
	keyDelete:    keymagic.VKDelete,

	keyKPMultiply:  keymagic.VKMultiply,
	keyKPAdd:       keymagic.VKAdd,
	keyKPSeparator: keymagic.VKSeparator,
	keyKPSubtract:  keymagic.VKSubtract,
	keyKPDecimal:   keymagic.VKDecimal,
	keyKPDivide:    keymagic.VKDivide,

	keyExclam:      keymagic.VKKey1,
	keyAt:          keymagic.VKKey2,
	keyNumberSign:  keymagic.VKKey3,
	keyDollar:      keymagic.VKKey4,
	keyPercent:     keymagic.VKKey5,
	keyAsciiCircum: keymagic.VKKey6,
	keyAmpersand:   keymagic.VKKey7,
	keyAsterisk:    keymagic.VKKey8,
	keyParenLeft:   keymagic.VKKey9,
	keyParenRight:  keymagic.VKKey0,

	keySemicolon:    keymagic.VKOem1,
	keyColon:        keymagic.VKOem1,
	keyEqual:        keymagic.VKOemPlus,
	keyPlus:         keymagic.VKOemPlus,
	keyComma:        keymagic.VKOemComma,
	keyLess:         keymagic.VKOemComma,
	keyMinus:        keymagic.VKOemMinus,
	keyUnderscore:   keymagic.VKOemMinus,
	keyPeriod:       keymagic.VKOemPeriod,
	keyGreater:      keymagic.VKOemPeriod,
	keySlash:        keymagic.VKOem2,
	keyQuestion:     keymagic.VKOem2,
	keyGrave:        keymagic.VKOem3,
	keyAsciiTilde:   keymagic.VKOem3,
	keyBracketLeft:  keymagic.VKOem4,
	keyBraceLeft:    keymagic.VKOem4,
	keyBackslash:    keymagic.VKOem5,
	keyBar:          keymagic.VKOem5,
	keyBracketRight: keymagic.VKOem6,
	keyBraceRight:   keymagic.VKOem6,
	keyApostrophe:   keymagic.VKOem7,
	keyQuoteDbl:     keymagic.VKOem7,
}

// vkToX11 is the VirtualKey-to-keysym direction, used by a shell that
// needs to synthesize a key event (e.g. for a hotkey registration
// confirmation). It intentionally picks one canonical keysym per
// VirtualKey rather than reproducing x11ToVK's many-to-one folds.
var vkToX11 = map[keymagic.VirtualKey]uint32{
	keymagic.VKBack:    keyBackSpace,
	keymagic.VKTab:     keyTab,
	keymagic.VKReturn:  keyReturn,
	keymagic.VKShift:   keyShiftL,
	keymagic.VKControl: keyControlL,
	keymagic.VKMenu:    keyAltL,
	keymagic.VKPause:   keyPause,
	keymagic.VKCapital: keyCapsLock,
	keymagic.VKEscape:  keyEscape,
	keymagic.VKSpace:   keySpace,
	keymagic.VKPrior:   keyPageUp,
	keymagic.VKNext:    keyPageDown,
	keymagic.VKDelete:  keyDelete,

	keymagic.VKLShift:   keyShiftL,
	keymagic.VKRShift:   keyShiftR,
	keymagic.VKLControl: keyControlL,
	keymagic.VKRControl: keyControlR,
	keymagic.VKLMenu:    keyAltL,
	keymagic.VKRMenu:    keyAltR,

	keymagic.VKMultiply:  keyKPMultiply,
	keymagic.VKAdd:       keyKPAdd,
	keymagic.VKSeparator: keyKPSeparator,
	keymagic.VKSubtract:  keyKPSubtract,
	keymagic.VKDecimal:   keyKPDecimal,
	keymagic.VKDivide:    keyKPDivide,

	keymagic.VKOem1:       keySemicolon,
	keymagic.VKOemPlus:    keyEqual,
	keymagic.VKOemComma:   keyComma,
	keymagic.VKOemMinus:   keyMinus,
	keymagic.VKOemPeriod:  keyPeriod,
	keymagic.VKOem2:       keySlash,
	keymagic.VKOem3:       keyGrave,
	keymagic.VKOem4:       keyBracketLeft,
	keymagic.VKOem5:       keyBackslash,
	keymagic.VKOem6:       keyBracketRight,
	keymagic.VKOem7:       keyApostrophe,
}

func init() {
	for d := uint32(key0); d <= key9; d++ {
		x11ToVK[d] = keymagic.VKKey0 + keymagic.VirtualKey(d-key0)
		vkToX11[keymagic.VKKey0+keymagic.VirtualKey(d-key0)] = d
	}
	for l := uint32(keyLowerA); l <= keyLowerZ; l++ {
		vk := keymagic.VKKeyA + keymagic.VirtualKey(l-keyLowerA)
		x11ToVK[l] = vk
		vkToX11[vk] = l
	}
	for u := uint32(keyUpperA); u <= keyUpperZ; u++ {
		x11ToVK[u] = keymagic.VKKeyA + keymagic.VirtualKey(u-keyUpperA)
	}
	for kp := uint32(keyKP0); kp <= keyKP9; kp++ {
		vk := keymagic.VKNumpad0 + keymagic.VirtualKey(kp-keyKP0)
		x11ToVK[kp] = vk
		vkToX11[vk] = kp
	}
	for f := uint32(keyF1); f <= keyF12; f++ {
		vk := keymagic.VKF1 + keymagic.VirtualKey(f-keyF1)
		x11ToVK[f] = vk
		vkToX11[vk] = f
	}
}

// FromX11 maps an X11/IBus keysym to its KeyMagic VirtualKey, or
// ok=false if the keysym has no mapping (keymagic_map_ibus_keyval
// returns 0 in the same case).
func FromX11(keysym uint32) (keymagic.VirtualKey, bool) {
	vk, ok := x11ToVK[keysym]
	return vk, ok
}

// ToX11 maps a KeyMagic VirtualKey to a representative X11/IBus
// keysym, or ok=false if none is registered.
func ToX11(vk keymagic.VirtualKey) (uint32, bool) {
	keysym, ok := vkToX11[vk]
	return keysym, ok
}
