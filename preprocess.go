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

// This file implements the RulePreprocessor component (§4.2): turning
// each BinaryRule's raw opcode streams into segment lists once at load
// time, so the hot matching path never walks opcodes again (§9).
package keymagic

import "sort"

// Priority is the rule-selection order (§3); smaller fires first.
type Priority int

const (
	PriorityStateSpecific Priority = iota
	PriorityVirtualKey
	PriorityLongPattern
	PriorityShortPattern
)

// longPatternThreshold is the expected_lhs_length above which a
// pattern rule is considered "long" rather than "short" (§3).
const longPatternThreshold = 3

// ProcessedRule is a BinaryRule after segmentation: everything the
// Matcher needs, computed once and never recomputed per keystroke.
type ProcessedRule struct {
	OriginalIndex     int
	LHSSegments       []Segment
	RHSSegments       []Segment
	ExpectedLHSLength int
	Priority          Priority
	KeyCombo          []VirtualKey // non-nil if LHS has any PREDEFINED
	StateIDs          []int        // state ids required by LHS
}

// HasVirtualKey reports whether this rule's LHS gates on a key
// combination rather than, or in addition to, text.
func (r *ProcessedRule) HasVirtualKey() bool { return len(r.KeyCombo) > 0 }

// HasStatePrereq reports whether this rule's LHS requires one or more
// states to be active.
func (r *ProcessedRule) HasStatePrereq() bool { return len(r.StateIDs) > 0 }

// Preprocess segments every rule in km2 and returns them sorted stably
// by (priority, original_index) (§3, §4.2, §8 invariant 5).
func Preprocess(km2 *KM2File) []*ProcessedRule {
	rules := make([]*ProcessedRule, len(km2.Rules))
	for i, raw := range km2.Rules {
		rules[i] = preprocessRule(i, raw, km2.Strings)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	return rules
}

func preprocessRule(originalIndex int, raw BinaryRule, strings []StringEntry) *ProcessedRule {
	lhs, keyCombo, stateIDs := segmentSide(raw.LHS, true)
	rhs, _, _ := segmentSide(raw.RHS, false)

	length := 0
	for _, s := range lhs {
		length += s.length(strings)
	}

	r := &ProcessedRule{
		OriginalIndex:     originalIndex,
		LHSSegments:       lhs,
		RHSSegments:       rhs,
		ExpectedLHSLength: length,
		KeyCombo:          keyCombo,
		StateIDs:          stateIDs,
	}
	r.Priority = rulePriority(r)
	return r
}

func rulePriority(r *ProcessedRule) Priority {
	switch {
	case r.HasStatePrereq():
		return PriorityStateSpecific
	case r.HasVirtualKey():
		return PriorityVirtualKey
	case r.ExpectedLHSLength > longPatternThreshold:
		return PriorityLongPattern
	default:
		return PriorityShortPattern
	}
}

// segmentSide walks one rule side's opcode stream left to right,
// emitting one Segment per logical item (§4.2). assignIndex is true
// for LHS sides, where each segment gets a 1-based index that RHS
// Reference/index-modifier items address; RHS segments never need
// their own index. Unknown opcode values are silently skipped one
// word at a time (§7, §9), and a truncated trailing item stops
// segmentation rather than panicking, since a malformed rule must
// never crash the load.
func segmentSide(opcodes []Opcode, assignIndex bool) (segs []Segment, keyCombo []VirtualKey, stateIDs []int) {
	segIndex := 0
	i := 0
	for i < len(opcodes) {
		switch opcodes[i] {
		case opString:
			if i+1 >= len(opcodes) {
				i = len(opcodes)
				break
			}
			n := int(opcodes[i+1])
			start := i + 2
			end := start + n
			if end > len(opcodes) {
				i = len(opcodes)
				break
			}
			seg := Segment{Kind: SegString, Literal: append([]uint16(nil), opcodes[start:end]...)}
			if assignIndex {
				segIndex++
				seg.Index = segIndex
			}
			segs = append(segs, seg)
			i = end

		case opVariable:
			if i+1 >= len(opcodes) {
				i = len(opcodes)
				break
			}
			idx := int(opcodes[i+1])
			i += 2
			if i+1 < len(opcodes) && opcodes[i] == opModifier {
				flag := opcodes[i+1]
				switch flag {
				case opFlagAnyOf:
					seg := Segment{Kind: SegAnyOfVariable, VarIndex: idx}
					if assignIndex {
						segIndex++
						seg.Index = segIndex
					}
					segs = append(segs, seg)
				case opFlagNAnyOf:
					seg := Segment{Kind: SegNotAnyOfVariable, VarIndex: idx}
					if assignIndex {
						segIndex++
						seg.Index = segIndex
					}
					segs = append(segs, seg)
				default:
					// RHS-only: project variable idx via the capture
					// position recorded at LHS segment `flag` (§4.2, §4.4).
					segs = append(segs, Segment{Kind: SegVariable, VarIndex: idx, IndexFrom: int(flag)})
				}
				i += 2
			} else {
				seg := Segment{Kind: SegVariable, VarIndex: idx}
				if assignIndex {
					segIndex++
					seg.Index = segIndex
				}
				segs = append(segs, seg)
			}

		case opReference:
			if i+1 >= len(opcodes) {
				i = len(opcodes)
				break
			}
			segs = append(segs, Segment{Kind: SegReference, RefIndex: int(opcodes[i+1])})
			i += 2

		case opPredefined:
			if i+1 >= len(opcodes) {
				i = len(opcodes)
				break
			}
			keys := []VirtualKey{VirtualKey(opcodes[i+1])}
			i += 2
			for i+2 < len(opcodes) && opcodes[i] == opAnd && opcodes[i+1] == opPredefined {
				keys = append(keys, VirtualKey(opcodes[i+2]))
				i += 3
			}
			seg := Segment{Kind: SegVirtualKey, Key: keys[0]}
			if len(keys) > 1 {
				seg.Keys = keys
			}
			if assignIndex {
				segIndex++
				seg.Index = segIndex
			}
			segs = append(segs, seg)
			keyCombo = append(keyCombo, keys...)

		case opSwitch:
			if i+1 >= len(opcodes) {
				i = len(opcodes)
				break
			}
			id := int(opcodes[i+1])
			seg := Segment{Kind: SegState, StateID: id}
			if assignIndex {
				segIndex++
				seg.Index = segIndex
			}
			segs = append(segs, seg)
			stateIDs = append(stateIDs, id)
			i += 2

		case opAny:
			seg := Segment{Kind: SegAny}
			if assignIndex {
				segIndex++
				seg.Index = segIndex
			}
			segs = append(segs, seg)
			i++

		default:
			i++
		}
	}
	return segs, keyCombo, stateIDs
}
