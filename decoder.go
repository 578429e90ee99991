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

// This file implements the Km2Decoder component (§4.1): a pure,
// allocation-only parse of a KM2 byte stream into a *KM2File. It
// performs no I/O; see loader.go for the thin file-reading convenience.
package keymagic

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a complete KM2 byte stream into a KM2File. It accepts
// major=1, minor in {3,4,5} (§3, §6.2); v1.3/v1.4 headers are upgraded
// in memory to the v1.5 shape (RightAlt defaults to true for both).
// Decode never mutates b and returns a KM2File usable read-only from
// multiple Engine instances.
func Decode(b []byte) (*KM2File, error) {
	hdr, offset, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}

	strings, offset, err := decodeStrings(b, offset, hdr.stringCount)
	if err != nil {
		return nil, err
	}

	var entries []InfoEntry
	if hdr.version.HasInfoSection() {
		entries, offset, err = decodeInfoSection(b, offset, hdr.infoCount)
		if err != nil {
			return nil, err
		}
	}

	rules, _, err := decodeRules(b, offset, hdr.ruleCount)
	if err != nil {
		return nil, err
	}

	return &KM2File{
		Version:       hdr.version,
		LayoutOptions: hdr.layoutOptions,
		Strings:       strings,
		Rules:         rules,
		meta:          newMetadata(entries),
	}, nil
}

type decodedHeader struct {
	version       KM2Version
	layoutOptions LayoutOptions
	stringCount   uint16
	infoCount     uint16
	ruleCount     uint16
}

// headerSize1_3 is magic(4) + major(1) + minor(1) + stringCount(2) +
// ruleCount(2) + 4 option bytes = 14.
const headerSize1_3 = 14

// headerSize1_4 adds infoCount(2) = 16.
const headerSize1_4 = 16

// headerSize1_5 adds the 5th option byte (rightAlt) = 17, plus one
// trailing pad byte not counted here (§3, §6.2).
const headerSize1_5 = 17

// decodeHeader tries v1.5, then v1.4, then v1.3, matching the
// reference loader's fallback order (keymagic-core-cpp's
// KM2LoaderImpl::readHeader). It returns the byte offset of the first
// section after the header (skipping the v1.5 pad byte when present).
func decodeHeader(b []byte) (decodedHeader, int, error) {
	if len(b) < headerSize1_3 {
		return decodedHeader{}, 0, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	if [4]byte(b[0:4]) != km2Magic {
		return decodedHeader{}, 0, fmt.Errorf("%w: bad magic code", ErrInvalidFormat)
	}
	major, minor := b[4], b[5]

	// v1.5: has infoCount and a 5-byte option block, plus one pad byte.
	if minor == 5 && len(b) >= headerSize1_5+1 {
		h := decodedHeader{
			version:     KM2Version{Major: major, Minor: minor},
			stringCount: binary.LittleEndian.Uint16(b[6:8]),
			infoCount:   binary.LittleEndian.Uint16(b[8:10]),
			ruleCount:   binary.LittleEndian.Uint16(b[10:12]),
			layoutOptions: LayoutOptions{
				TrackCaps: b[12] != 0,
				AutoBksp:  b[13] != 0,
				Eat:       b[14] != 0,
				PosBased:  b[15] != 0,
				RightAlt:  b[16] != 0,
			},
		}
		if !h.version.Compatible() {
			return decodedHeader{}, 0, fmt.Errorf("%w: major=%d minor=%d", ErrUnsupportedVersion, major, minor)
		}
		return h, headerSize1_5 + 1, nil
	}

	// v1.4: has infoCount, 4-byte option block, no RightAlt on disk.
	if minor == 4 && len(b) >= headerSize1_4 {
		h := decodedHeader{
			version:     KM2Version{Major: major, Minor: minor},
			stringCount: binary.LittleEndian.Uint16(b[6:8]),
			infoCount:   binary.LittleEndian.Uint16(b[8:10]),
			ruleCount:   binary.LittleEndian.Uint16(b[10:12]),
			layoutOptions: LayoutOptions{
				TrackCaps: b[12] != 0,
				AutoBksp:  b[13] != 0,
				Eat:       b[14] != 0,
				PosBased:  b[15] != 0,
				RightAlt:  true,
			},
		}
		if !h.version.Compatible() {
			return decodedHeader{}, 0, fmt.Errorf("%w: major=%d minor=%d", ErrUnsupportedVersion, major, minor)
		}
		return h, headerSize1_4, nil
	}

	// v1.3: no info section at all, 4-byte option block.
	if minor == 3 && len(b) >= headerSize1_3 {
		h := decodedHeader{
			version:     KM2Version{Major: major, Minor: minor},
			stringCount: binary.LittleEndian.Uint16(b[6:8]),
			infoCount:   0,
			ruleCount:   binary.LittleEndian.Uint16(b[8:10]),
			layoutOptions: LayoutOptions{
				TrackCaps: b[10] != 0,
				AutoBksp:  b[11] != 0,
				Eat:       b[12] != 0,
				PosBased:  b[13] != 0,
				RightAlt:  true,
			},
		}
		if !h.version.Compatible() {
			return decodedHeader{}, 0, fmt.Errorf("%w: major=%d minor=%d", ErrUnsupportedVersion, major, minor)
		}
		return h, headerSize1_3, nil
	}

	return decodedHeader{}, 0, fmt.Errorf("%w: major=%d minor=%d", ErrUnsupportedVersion, major, minor)
}

func decodeStrings(b []byte, offset int, count uint16) ([]StringEntry, int, error) {
	entries := make([]StringEntry, 0, count)
	for i := uint16(0); i < count; i++ {
		if offset+2 > len(b) {
			return nil, 0, fmt.Errorf("%w: truncated string table at entry %d", ErrInvalidFormat, i)
		}
		length := int(binary.LittleEndian.Uint16(b[offset : offset+2]))
		offset += 2
		byteLen := length * 2
		if offset+byteLen > len(b) {
			return nil, 0, fmt.Errorf("%w: string entry %d overruns buffer", ErrInvalidFormat, i)
		}
		entries = append(entries, StringEntry{Units: decodeUTF16LE(b[offset : offset+byteLen])})
		offset += byteLen
	}
	return entries, offset, nil
}

func decodeInfoSection(b []byte, offset int, count uint16) ([]InfoEntry, int, error) {
	entries := make([]InfoEntry, 0, count)
	for i := uint16(0); i < count; i++ {
		if offset+6 > len(b) {
			return nil, 0, fmt.Errorf("%w: truncated info entry %d", ErrInvalidFormat, i)
		}
		var id [4]byte
		copy(id[:], b[offset:offset+4])
		offset += 4
		length := int(binary.LittleEndian.Uint16(b[offset : offset+2]))
		offset += 2
		if offset+length > len(b) {
			return nil, 0, fmt.Errorf("%w: info entry %d overruns buffer", ErrInvalidFormat, i)
		}
		data := make([]byte, length)
		copy(data, b[offset:offset+length])
		entries = append(entries, InfoEntry{ID: id, Data: data})
		offset += length
	}
	return entries, offset, nil
}

func decodeRules(b []byte, offset int, count uint16) ([]BinaryRule, int, error) {
	rules := make([]BinaryRule, 0, count)
	for i := uint16(0); i < count; i++ {
		lhs, next, err := decodeRuleSide(b, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("rule %d lhs: %w", i, err)
		}
		offset = next
		rhs, next, err := decodeRuleSide(b, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("rule %d rhs: %w", i, err)
		}
		offset = next
		rules = append(rules, BinaryRule{LHS: lhs, RHS: rhs})
	}
	return rules, offset, nil
}

// decodeRuleSide reads one rule side: a word_length (in 16-bit units,
// NOT bytes; §3 "length in 16-bit units") followed by that many opcode
// words. An empty side is legal.
func decodeRuleSide(b []byte, offset int) ([]Opcode, int, error) {
	if offset+2 > len(b) {
		return nil, 0, fmt.Errorf("%w: truncated rule side length", ErrInvalidFormat)
	}
	wordLength := int(binary.LittleEndian.Uint16(b[offset : offset+2]))
	offset += 2
	byteLength := wordLength * 2
	if offset+byteLength > len(b) {
		return nil, 0, fmt.Errorf("%w: rule side overruns buffer", ErrInvalidFormat)
	}
	if byteLength == 0 {
		return nil, offset, nil
	}
	opcodes := make([]Opcode, wordLength)
	for i := 0; i < wordLength; i++ {
		opcodes[i] = binary.LittleEndian.Uint16(b[offset : offset+2])
		offset += 2
	}
	return opcodes, offset, nil
}
