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

// This file declares the segment and capture shapes that
// RulePreprocessor produces and Matcher/apply consume (§3, §9 "model
// segments as a tagged variant"). A SegmentKind plus the handful of
// fields each kind actually uses stands in for a sum type.
package keymagic

// SegmentKind classifies one segment of a rule side.
type SegmentKind int

const (
	SegString SegmentKind = iota
	SegVariable
	SegAnyOfVariable
	SegNotAnyOfVariable
	SegAny
	SegVirtualKey
	SegState
	SegReference
)

func (k SegmentKind) String() string {
	switch k {
	case SegString:
		return "String"
	case SegVariable:
		return "Variable"
	case SegAnyOfVariable:
		return "AnyOfVariable"
	case SegNotAnyOfVariable:
		return "NotAnyOfVariable"
	case SegAny:
		return "Any"
	case SegVirtualKey:
		return "VirtualKey"
	case SegState:
		return "State"
	case SegReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Segment is one classified item of an LHS or RHS opcode stream.
//
// Which fields are meaningful depends on Kind:
//   - SegString: Literal holds the code units.
//   - SegVariable, SegAnyOfVariable, SegNotAnyOfVariable: VarIndex is the
//     1-based string-table index. SegVariable additionally sets
//     IndexFrom (>0) when this is an RHS "project via another segment's
//     capture position" item (§4.2, §4.4).
//   - SegAny: no extra fields.
//   - SegVirtualKey: Key and, for an AND-combination, Keys.
//   - SegState: StateID.
//   - SegReference: RefIndex is the 1-based LHS segment index it reads.
//
// Index is the segment's 1-based position among LHS segments (0 for
// RHS-only kinds such as SegReference); RHS REFERENCE/index-modifier
// items address LHS segments by this number.
type Segment struct {
	Kind     SegmentKind
	Index    int // 1-based LHS segment index; 0 if not applicable
	Literal  []uint16
	VarIndex int // 1-based string-table index
	IndexFrom int // RHS Variable-with-modifier: LHS segment index supplying the position
	Key      VirtualKey
	Keys     []VirtualKey // full AND-combination, when len > 1
	StateID  int
	RefIndex int
}

// length returns the segment's contribution to expected_lhs_length in
// UTF-16 code units (§3): literal strings/variables count their own
// length; AnyOf/NotAnyOf/Any count as 1; State/VirtualKey count as 0.
// Reference never appears on an LHS so it is unreached here.
func (s Segment) length(strings []StringEntry) int {
	switch s.Kind {
	case SegString:
		return len(s.Literal)
	case SegVariable:
		return len(variableUnits(strings, s.VarIndex))
	case SegAnyOfVariable, SegNotAnyOfVariable, SegAny:
		return 1
	default:
		return 0
	}
}

// variableUnits resolves a 1-based string-table index to its code
// units, or nil if out of range (§7: out-of-range indices emit/match
// nothing rather than failing).
func variableUnits(strings []StringEntry, idx int) []uint16 {
	if idx < 1 || idx > len(strings) {
		return nil
	}
	return strings[idx-1].Units
}

// Capture is one LHS segment's match result (§3, §9: a parallel array
// of value+position+segment_index, not a named group).
type Capture struct {
	Value        []uint16
	Position     int // 0-based offset within the referenced variable, for AnyOfVariable
	SegmentIndex int // 1-based, matches the producing Segment.Index
}

// captureBySegment finds the capture produced by LHS segment n
// (1-based), as used by RHS Reference and index-modifier Variable
// segments. Returns ok=false if no such capture exists (§7: treated as
// empty, not an error).
func captureBySegment(captures []Capture, n int) (Capture, bool) {
	for _, c := range captures {
		if c.SegmentIndex == n {
			return c, true
		}
	}
	return Capture{}, false
}
