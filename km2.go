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

// This file declares the KM2 on-disk shapes (§3, §6.2): the opcode
// alphabet, layout options, and the decoded-in-memory representation
// that Decode produces. KM2File is immutable once returned.
package keymagic

// Opcode is one 16-bit word of a rule side's opcode stream.
type Opcode = uint16

// Opcode alphabet. High byte is always 0x00 for the values used today;
// the decoder does not reject other values (§7 "unknown opcodes are
// silently skipped").
const (
	opString     Opcode = 0x00F0
	opVariable   Opcode = 0x00F1
	opReference  Opcode = 0x00F2
	opPredefined Opcode = 0x00F3
	opModifier   Opcode = 0x00F4
	opFlagAnyOf  Opcode = 0x00F5 // qualifies OP_MODIFIER
	opAnd        Opcode = 0x00F6
	opFlagNAnyOf Opcode = 0x00F7 // qualifies OP_MODIFIER
	opAny        Opcode = 0x00F8
	opSwitch     Opcode = 0x00F9
)

// km2Magic is the 4-byte "KMKL" magic code every KM2 file starts with.
var km2Magic = [4]byte{'K', 'M', 'K', 'L'}

// Info section ids (§3). Textual payloads (name/desc/font/htky) are
// UTF-8; icon is opaque image bytes.
const (
	infoName = "name"
	infoDesc = "desc"
	infoFont = "font"
	infoIcon = "icon"
	infoHtky = "htky"
)

// LayoutOptions mirrors the 5 boolean flags packed into a KM2 header
// (§3, §6.4). v1.3/v1.4 files lack RightAlt on disk; the decoder
// defaults it to true for those versions, matching the reference
// engine's upgrade path.
type LayoutOptions struct {
	TrackCaps bool // shell should forward real caps-lock state
	AutoBksp  bool // enable smart backspace (§4.6)
	Eat       bool // consume unmatched printable keys
	PosBased  bool // shell should report key codes by US physical position
	RightAlt  bool // Ctrl+Alt is reported as Right-Alt only, not also Ctrl
}

// KM2Version is the file's format version. Compatible versions are
// major=1, minor in {3, 4, 5}.
type KM2Version struct {
	Major uint8
	Minor uint8
}

// Compatible reports whether v falls within the versions this decoder
// accepts.
func (v KM2Version) Compatible() bool {
	return v.Major == 1 && v.Minor >= 3 && v.Minor <= 5
}

// HasInfoSection reports whether this version's files carry an info
// section (v1.4+).
func (v KM2Version) HasInfoSection() bool {
	return v.Major == 1 && v.Minor >= 4
}

// StringEntry is one decoded entry of the KM2 string table, held as raw
// UTF-16 code units (§4.1: surrogate pairing is not validated on load).
type StringEntry struct {
	Units []uint16
}

// String renders the entry as UTF-8 for display purposes.
func (e StringEntry) String() string { return utf16ToUTF8(e.Units) }

// InfoEntry is one raw entry of the KM2 info section (v1.4+): a 4-byte
// id and its payload bytes.
type InfoEntry struct {
	ID   [4]byte
	Data []byte
}

// BinaryRule is one decoded rule: two raw opcode-word sequences, LHS
// (pattern) and RHS (production).
type BinaryRule struct {
	LHS []Opcode
	RHS []Opcode
}

// KeyboardMeta exposes the textual and binary info-section fields of a
// loaded keyboard (§6.1 keyboard_meta). IconBytes is the raw "icon"
// payload (opaque image bytes); KeyMagic does not decode or render it,
// per the Non-goals, but a shell that wants to show a tray icon needs
// the bytes, so they are carried through rather than dropped, following
// keymagic-core-cpp's Metadata::getIcon().
type KeyboardMeta struct {
	Name          string
	Description   string
	Font          string
	Hotkey        string
	LayoutOptions LayoutOptions
	IconBytes     []byte
}

// metadata indexes an info section by its 4-byte id for O(1) lookup,
// the same shape as keymagic-core-cpp's Metadata class.
type metadata struct {
	entries map[[4]byte][]byte
}

func newMetadata(entries []InfoEntry) metadata {
	m := metadata{entries: make(map[[4]byte][]byte, len(entries))}
	for _, e := range entries {
		m.entries[e.ID] = e.Data
	}
	return m
}

func (m metadata) getString(id string) string {
	var key [4]byte
	copy(key[:], id)
	data, ok := m.entries[key]
	if !ok {
		return ""
	}
	return string(data)
}

func (m metadata) getBytes(id string) []byte {
	var key [4]byte
	copy(key[:], id)
	return m.entries[key]
}

// KM2File is the fully decoded, immutable representation of a KM2
// keyboard layout file.
type KM2File struct {
	Version       KM2Version
	LayoutOptions LayoutOptions
	Strings       []StringEntry
	Rules         []BinaryRule
	meta          metadata
}

// Meta assembles the KeyboardMeta view of this file's info section.
func (k *KM2File) Meta() KeyboardMeta {
	return KeyboardMeta{
		Name:          k.meta.getString(infoName),
		Description:   k.meta.getString(infoDesc),
		Font:          k.meta.getString(infoFont),
		Hotkey:        k.meta.getString(infoHtky),
		LayoutOptions: k.LayoutOptions,
		IconBytes:     k.meta.getBytes(infoIcon),
	}
}
