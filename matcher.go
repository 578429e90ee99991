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

// This file implements the Matcher and output-generation components
// (§4.3, §4.4): given a composing buffer, the current key event, and a
// preprocessed rule, decide whether the rule fires and, if so, what it
// produces.
package keymagic

// MatchContext is what TryMatch returns on success: the captures
// gathered from the LHS and how many trailing code units of ctxProbe
// were consumed.
type MatchContext struct {
	Captures      []Capture
	MatchedLength int // UTF-16 code units of ctxProbe consumed
}

// buildProbe forms ctx_probe (§4.3.1): the composing buffer plus the
// current input's character, if it is a printable non-zero BMP
// scalar. Non-BMP scalars do not participate in text matching (§9 open
// question: "BMP-only appends").
func buildProbe(composing []uint16, input Input) []uint16 {
	if input.Character == 0 || input.Character >= 0x10000 {
		return composing
	}
	probe := make([]uint16, len(composing), len(composing)+2)
	copy(probe, composing)
	return append(probe, runeToUTF16(input.Character)...)
}

// TryMatch attempts rule against the given active states, input event
// and probe buffer, returning the match context on success (§4.3).
func TryMatch(rule *ProcessedRule, activeStates map[int]bool, input Input, probe []uint16, strings []StringEntry, rightAlt bool) (MatchContext, bool) {
	// 4.3.2 State gate.
	for _, id := range rule.StateIDs {
		if !activeStates[id] {
			return MatchContext{}, false
		}
	}
	if rule.HasStatePrereq() && onlyStateSegments(rule.LHSSegments) {
		return MatchContext{MatchedLength: 0}, true
	}

	// 4.3.3 Virtual-key gate.
	if rule.HasVirtualKey() {
		if !matchKeyCombo(rule.KeyCombo, input, rightAlt) {
			return MatchContext{}, false
		}
		return MatchContext{MatchedLength: 0}, true
	}

	// 4.3.4 Text pattern, suffix-anchored.
	return matchText(rule, probe, strings)
}

func onlyStateSegments(segs []Segment) bool {
	for _, s := range segs {
		if s.Kind != SegState {
			return false
		}
	}
	return true
}

// matchKeyCombo evaluates a rule's required key combination against
// the current input event (§4.3.3). A modifier key in the combo
// requires the corresponding modifier bit in input.Modifiers (left and
// right variants of a family are accepted interchangeably); a
// non-modifier key requires input.KeyCode to equal it exactly.
func matchKeyCombo(combo []VirtualKey, input Input, rightAlt bool) bool {
	for _, k := range combo {
		if k.IsModifier() {
			if !modifierSatisfied(k, input.Modifiers, rightAlt) {
				return false
			}
			continue
		}
		if input.KeyCode != k {
			return false
		}
	}
	return true
}

func modifierSatisfied(k VirtualKey, m Modifiers, rightAlt bool) bool {
	switch k {
	case VKShift, VKLShift, VKRShift:
		return m.Shift
	case VKControl, VKLControl, VKRControl, VKCtrl:
		return m.Ctrl
	case VKMenu, VKLMenu, VKRMenu, VKAlt, VKAltGr:
		if k == VKAltGr {
			return m.IsRightAlt(rightAlt)
		}
		return m.Alt
	default:
		return false
	}
}

// matchText performs the segment-by-segment, suffix-anchored LHS match
// (§4.3.4).
func matchText(rule *ProcessedRule, probe []uint16, strings []StringEntry) (MatchContext, bool) {
	l := rule.ExpectedLHSLength
	if l == 0 {
		return MatchContext{MatchedLength: 0}, true
	}
	if len(probe) < l {
		return MatchContext{}, false
	}
	m := probe[len(probe)-l:]

	captures := make([]Capture, 0, len(rule.LHSSegments))
	p := 0
	for _, seg := range rule.LHSSegments {
		switch seg.Kind {
		case SegString:
			if !matchLiteral(m, p, seg.Literal) {
				return MatchContext{}, false
			}
			captures = append(captures, Capture{Value: seg.Literal, SegmentIndex: seg.Index})
			p += len(seg.Literal)

		case SegVariable:
			v := variableUnits(strings, seg.VarIndex)
			if !matchLiteral(m, p, v) {
				return MatchContext{}, false
			}
			captures = append(captures, Capture{Value: v, SegmentIndex: seg.Index})
			p += len(v)

		case SegAnyOfVariable:
			if p >= len(m) {
				return MatchContext{}, false
			}
			c, width := decodeRuneUTF16(m, p)
			v := variableUnits(strings, seg.VarIndex)
			pos, ok := indexOfUnit(v, runeToUTF16(c))
			if !ok {
				return MatchContext{}, false
			}
			captures = append(captures, Capture{Value: runeToUTF16(c), Position: pos, SegmentIndex: seg.Index})
			p += width

		case SegNotAnyOfVariable:
			if p >= len(m) {
				return MatchContext{}, false
			}
			c, width := decodeRuneUTF16(m, p)
			v := variableUnits(strings, seg.VarIndex)
			if _, ok := indexOfUnit(v, runeToUTF16(c)); ok {
				return MatchContext{}, false
			}
			captures = append(captures, Capture{Value: runeToUTF16(c), SegmentIndex: seg.Index})
			p += width

		case SegAny:
			if p >= len(m) {
				return MatchContext{}, false
			}
			c, width := decodeRuneUTF16(m, p)
			if !isAnyCharacter(c) {
				return MatchContext{}, false
			}
			captures = append(captures, Capture{Value: runeToUTF16(c), SegmentIndex: seg.Index})
			p += width

		case SegState, SegVirtualKey:
			// Handled by the gates above; contribute no length, no capture.
		}
	}
	if p != l {
		return MatchContext{}, false
	}
	return MatchContext{Captures: captures, MatchedLength: l}, true
}

func matchLiteral(m []uint16, p int, lit []uint16) bool {
	if p+len(lit) > len(m) {
		return false
	}
	for i, u := range lit {
		if m[p+i] != u {
			return false
		}
	}
	return true
}

// indexOfUnit returns the first index in v at which the given scalar
// (as UTF-16 units) appears as a single code unit, matching AnyOf's
// "capture position is the first matching i" (§4.3.4). Only BMP
// (single-unit) matches participate, mirroring how AnyOf variables are
// authored as flat character classes.
func indexOfUnit(v []uint16, units []uint16) (int, bool) {
	if len(units) != 1 {
		return 0, false
	}
	for i, u := range v {
		if u == units[0] {
			return i, true
		}
	}
	return 0, false
}

// ApplyResult is what Apply returns: the produced UTF-16 text and the
// set of states the RHS asserts for the next match (§4.4).
type ApplyResult struct {
	Produced  []uint16
	NewStates []int
}

// Apply walks a rule's RHS and realises §4.4's output table.
func Apply(rule *ProcessedRule, captures []Capture, strings []StringEntry) ApplyResult {
	var produced []uint16
	var newStates []int

	for _, seg := range rule.RHSSegments {
		switch seg.Kind {
		case SegString:
			produced = append(produced, seg.Literal...)

		case SegVariable:
			if seg.IndexFrom > 0 {
				if cap, ok := captureBySegment(captures, seg.IndexFrom); ok {
					v := variableUnits(strings, seg.VarIndex)
					if cap.Position >= 0 && cap.Position < len(v) {
						produced = append(produced, v[cap.Position])
					}
				}
				continue
			}
			produced = append(produced, variableUnits(strings, seg.VarIndex)...)

		case SegReference:
			if cap, ok := captureBySegment(captures, seg.RefIndex); ok {
				produced = append(produced, cap.Value...)
			}

		case SegState:
			newStates = append(newStates, seg.StateID)

		case SegVirtualKey:
			if seg.Key == VKNull {
				produced = nil
			}
		}
	}

	return ApplyResult{Produced: produced, NewStates: newStates}
}
