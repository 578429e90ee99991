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

func TestSegmentSideString(t *testing.T) {
	units := utf8ToUTF16("ka")
	opcodes := append([]Opcode{opString, uint16(len(units))}, units...)
	segs, keyCombo, stateIDs := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegString {
		t.Fatalf("segs = %+v", segs)
	}
	if utf16ToUTF8(segs[0].Literal) != utf16ToUTF8(units) {
		t.Errorf("literal mismatch")
	}
	if segs[0].Index != 1 {
		t.Errorf("expected Index=1, got %d", segs[0].Index)
	}
	if keyCombo != nil || stateIDs != nil {
		t.Errorf("unexpected keyCombo/stateIDs")
	}
}

func TestSegmentSideAnyOfVariable(t *testing.T) {
	opcodes := []Opcode{opVariable, 1, opModifier, opFlagAnyOf}
	segs, _, _ := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegAnyOfVariable || segs[0].VarIndex != 1 {
		t.Fatalf("segs = %+v", segs)
	}
}

func TestSegmentSideNotAnyOfVariable(t *testing.T) {
	opcodes := []Opcode{opVariable, 2, opModifier, opFlagNAnyOf}
	segs, _, _ := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegNotAnyOfVariable || segs[0].VarIndex != 2 {
		t.Fatalf("segs = %+v", segs)
	}
}

func TestSegmentSideVariableIndexModifier(t *testing.T) {
	// RHS-only: VARIABLE idx followed by MODIFIER k (k not a flag value)
	// projects variable idx via LHS segment k's capture position.
	opcodes := []Opcode{opVariable, 3, opModifier, 1}
	segs, _, _ := segmentSide(opcodes, false)
	if len(segs) != 1 || segs[0].Kind != SegVariable || segs[0].VarIndex != 3 || segs[0].IndexFrom != 1 {
		t.Fatalf("segs = %+v", segs)
	}
}

func TestSegmentSideVirtualKeyCombo(t *testing.T) {
	opcodes := []Opcode{opPredefined, uint16(VKControl), opAnd, opPredefined, uint16(VKKeyM)}
	segs, keyCombo, _ := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegVirtualKey {
		t.Fatalf("segs = %+v", segs)
	}
	if len(segs[0].Keys) != 2 {
		t.Fatalf("expected 2 keys in combo, got %+v", segs[0].Keys)
	}
	if len(keyCombo) != 2 || keyCombo[0] != VKControl || keyCombo[1] != VKKeyM {
		t.Fatalf("keyCombo = %+v", keyCombo)
	}
}

func TestSegmentSideStateAndReference(t *testing.T) {
	opcodes := []Opcode{opSwitch, 7}
	segs, _, stateIDs := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegState || segs[0].StateID != 7 {
		t.Fatalf("segs = %+v", segs)
	}
	if len(stateIDs) != 1 || stateIDs[0] != 7 {
		t.Fatalf("stateIDs = %+v", stateIDs)
	}

	refOpcodes := []Opcode{opReference, 2}
	refSegs, _, _ := segmentSide(refOpcodes, false)
	if len(refSegs) != 1 || refSegs[0].Kind != SegReference || refSegs[0].RefIndex != 2 {
		t.Fatalf("refSegs = %+v", refSegs)
	}
}

func TestSegmentSideUnknownOpcodeSkipped(t *testing.T) {
	opcodes := []Opcode{0x1234, opAny}
	segs, _, _ := segmentSide(opcodes, true)
	if len(segs) != 1 || segs[0].Kind != SegAny {
		t.Fatalf("expected unknown opcode skipped, got %+v", segs)
	}
}

func TestRulePriority(t *testing.T) {
	strings := []StringEntry{}

	stateRule := &ProcessedRule{StateIDs: []int{1}}
	vkRule := &ProcessedRule{KeyCombo: []VirtualKey{VKKeyA}}
	longRule := &ProcessedRule{ExpectedLHSLength: 4}
	shortRule := &ProcessedRule{ExpectedLHSLength: 2}

	for _, r := range []*ProcessedRule{stateRule, vkRule, longRule, shortRule} {
		r.Priority = rulePriority(r)
	}
	_ = strings

	if stateRule.Priority != PriorityStateSpecific {
		t.Errorf("state rule priority = %v", stateRule.Priority)
	}
	if vkRule.Priority != PriorityVirtualKey {
		t.Errorf("vk rule priority = %v", vkRule.Priority)
	}
	if longRule.Priority != PriorityLongPattern {
		t.Errorf("long rule priority = %v", longRule.Priority)
	}
	if shortRule.Priority != PriorityShortPattern {
		t.Errorf("short rule priority = %v", shortRule.Priority)
	}
	if !(stateRule.Priority < vkRule.Priority && vkRule.Priority < longRule.Priority && longRule.Priority < shortRule.Priority) {
		t.Error("priority ordering invariant violated")
	}
}

func TestPreprocessStableSortByOriginalIndex(t *testing.T) {
	km2 := &KM2File{
		Rules: []BinaryRule{
			{LHS: literalOpcode("x"), RHS: nil},
			{LHS: literalOpcode("yy"), RHS: nil}, // both short patterns, len<=3
			{LHS: literalOpcode("zzzz"), RHS: nil}, // long pattern
		},
	}
	rules := Preprocess(km2)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	// The long-pattern rule (original index 2) must sort before the two
	// short-pattern rules, which keep their relative original order.
	if rules[0].OriginalIndex != 2 {
		t.Errorf("expected long-pattern rule first, got original_index=%d", rules[0].OriginalIndex)
	}
	if rules[1].OriginalIndex != 0 || rules[2].OriginalIndex != 1 {
		t.Errorf("stable order violated: %d, %d", rules[1].OriginalIndex, rules[2].OriginalIndex)
	}
}
