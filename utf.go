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

// This file implements the Utf component (§4, leaf dependency of the
// rest of the package): UTF-8 <-> UTF-16 <-> scalar conversions, scalar
// counting, and a suffix-by-code-unit helper. There is no helper that
// takes a substring by scalar index. The composing buffer
// is kept internally as []uint16 (UTF-16 code units, matching the KM2
// storage unit and the original engine's matching arithmetic); it is
// converted to UTF-8 only at the Output boundary.
package keymagic

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// km2UTF16LE is a validating UTF-16LE codec for callers that want
// well-formed text out of arbitrary UTF-16LE byte blobs (for example a
// shell loading a keystroke test script authored on Windows). The KM2
// string table itself is decoded with decodeUTF16LE instead: §4.1
// requires it NOT validate surrogate pairing, which a conforming codec
// cannot do.
var km2UTF16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16LEText validates and decodes a UTF-16LE byte blob to a
// UTF-8 string, via golang.org/x/text's codec. Unlike the KM2 string
// table decoder, this rejects malformed input; it exists for shells and
// tools that need a standards-conforming transcode (e.g. reading a
// keystroke fixture authored as UTF-16LE text) rather than the KM2
// wire format's permissive code-unit extraction.
func DecodeUTF16LEText(b []byte) (string, error) {
	out, err := km2UTF16LE.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeUTF16LE decodes raw UTF-16LE bytes (as stored in a KM2 string
// table entry) into UTF-16 code units. It does not validate surrogate
// pairing, matching §4.1's "do not validate surrogate pairing".
func decodeUTF16LE(b []byte) []uint16 {
	if len(b) == 0 {
		return nil
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units
}

// utf16ToUTF8 renders UTF-16 code units as a UTF-8 string, matching
// Go's behavior of substituting utf8.RuneError for unpaired surrogates.
func utf16ToUTF8(units []uint16) string {
	return string(utf16.Decode(units))
}

// utf8ToUTF16 converts a UTF-8 string to UTF-16 code units.
func utf8ToUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// runeToUTF16 widens a single scalar to 1 or 2 UTF-16 code units.
func runeToUTF16(r rune) []uint16 {
	if r1, r2 := utf16.EncodeRune(r); r1 != 0xFFFD || r2 != 0xFFFD {
		return []uint16{uint16(r1), uint16(r2)}
	}
	return []uint16{uint16(r)}
}

// decodeRuneUTF16 extracts one scalar starting at position p in units,
// respecting surrogate pairs: a leading surrogate at p consumes two
// code units. It returns the scalar and how many code units it
// consumed (always 1 or 2, never 0, provided p < len(units)).
func decodeRuneUTF16(units []uint16, p int) (rune, int) {
	u := units[p]
	if isHighSurrogate(u) && p+1 < len(units) && isLowSurrogate(units[p+1]) {
		return utf16.DecodeRune(rune(u), rune(units[p+1])), 2
	}
	return rune(u), 1
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// utf16Suffix returns the trailing n code units of units.
func utf16Suffix(units []uint16, n int) []uint16 {
	return units[len(units)-n:]
}

// scalarCount counts Unicode scalar values (not code units, not
// bytes) in a UTF-8 string, used by the diff routine (§4.5 step 8) to
// compute DeleteCount.
func scalarCount(s string) int {
	return utf8.RuneCountInString(s)
}

// isAnyCharacter reports whether r falls in the ANY opcode's range,
// U+0021 through U+007E (printable ASCII excluding space).
func isAnyCharacter(r rune) bool {
	return r >= 0x21 && r <= 0x7E
}

// isSingleASCIIPrintable reports whether s is exactly one scalar in
// U+0021..U+007E, one of the recursive re-matching stop conditions
// (§4.5 step 7, §9).
func isSingleASCIIPrintable(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return false
	}
	return isAnyCharacter(r)
}
