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

func ruleFromLHS(t *testing.T, lhsOpcodes []Opcode, strings []StringEntry) *ProcessedRule {
	t.Helper()
	segs, keyCombo, stateIDs := segmentSide(lhsOpcodes, true)
	length := 0
	for _, s := range segs {
		length += s.length(strings)
	}
	r := &ProcessedRule{LHSSegments: segs, ExpectedLHSLength: length, KeyCombo: keyCombo, StateIDs: stateIDs}
	r.Priority = rulePriority(r)
	return r
}

func TestMatchTextLiteral(t *testing.T) {
	rule := ruleFromLHS(t, literalOpcode("ka"), nil)
	probe := utf8ToUTF16("ka")
	ctx, ok := matchText(rule, probe, nil)
	if !ok || ctx.MatchedLength != 2 {
		t.Fatalf("matchText = %+v, %v", ctx, ok)
	}
}

func TestMatchTextRejectsShortProbe(t *testing.T) {
	rule := ruleFromLHS(t, literalOpcode("kaa"), nil)
	probe := utf8ToUTF16("ka")
	if _, ok := matchText(rule, probe, nil); ok {
		t.Fatal("expected rejection on short probe")
	}
}

func TestMatchTextAnyOfVariableCapturesFirstMatchingPosition(t *testing.T) {
	strings := []StringEntry{{Units: utf8ToUTF16("xyzx")}}
	rule := ruleFromLHS(t, []Opcode{opVariable, 1, opModifier, opFlagAnyOf}, strings)
	probe := utf8ToUTF16("x")
	ctx, ok := matchText(rule, probe, strings)
	if !ok {
		t.Fatal("expected match")
	}
	if ctx.Captures[0].Position != 0 {
		t.Errorf("expected first matching position 0, got %d", ctx.Captures[0].Position)
	}
}

func TestMatchTextNotAnyOfVariableRejectsMember(t *testing.T) {
	strings := []StringEntry{{Units: utf8ToUTF16("xyz")}}
	rule := ruleFromLHS(t, []Opcode{opVariable, 1, opModifier, opFlagNAnyOf}, strings)
	if _, ok := matchText(rule, utf8ToUTF16("x"), strings); ok {
		t.Fatal("expected rejection: x is a member")
	}
	ctx, ok := matchText(rule, utf8ToUTF16("q"), strings)
	if !ok || utf16ToUTF8(ctx.Captures[0].Value) != "q" {
		t.Fatalf("expected match on q, got %+v, %v", ctx, ok)
	}
}

func TestMatchTextAnyRange(t *testing.T) {
	rule := ruleFromLHS(t, []Opcode{opAny}, nil)
	if _, ok := matchText(rule, utf8ToUTF16(" "), nil); ok {
		t.Fatal("space is outside ANY's range")
	}
	if _, ok := matchText(rule, utf8ToUTF16("!"), nil); !ok {
		t.Fatal("'!' (U+0021) should match ANY")
	}
}

func TestMatchKeyCombo(t *testing.T) {
	combo := []VirtualKey{VKControl, VKKeyM}
	in := Input{KeyCode: VKKeyM, Modifiers: Modifiers{Ctrl: true}}
	if !matchKeyCombo(combo, in, false) {
		t.Fatal("expected combo to match")
	}
	in2 := Input{KeyCode: VKKeyM, Modifiers: Modifiers{}}
	if matchKeyCombo(combo, in2, false) {
		t.Fatal("expected combo to reject without ctrl")
	}
}

func TestTryMatchStateGate(t *testing.T) {
	rule := &ProcessedRule{StateIDs: []int{5}, LHSSegments: []Segment{{Kind: SegState, StateID: 5}}}
	_, ok := TryMatch(rule, map[int]bool{}, Input{}, nil, nil, false)
	if ok {
		t.Fatal("expected rejection: state not active")
	}
	ctx, ok := TryMatch(rule, map[int]bool{5: true}, Input{}, nil, nil, false)
	if !ok || ctx.MatchedLength != 0 {
		t.Fatalf("expected immediate accept with zero length, got %+v, %v", ctx, ok)
	}
}

func TestApplyReference(t *testing.T) {
	// RHS: $2 $1, i.e. Reference(2) then Reference(1).
	rule := &ProcessedRule{
		RHSSegments: []Segment{
			{Kind: SegReference, RefIndex: 2},
			{Kind: SegReference, RefIndex: 1},
		},
	}
	captures := []Capture{
		{Value: utf8ToUTF16("e"), SegmentIndex: 1},
		{Value: utf8ToUTF16("u"), SegmentIndex: 2},
	}
	result := Apply(rule, captures, nil)
	if utf16ToUTF8(result.Produced) != "ue" {
		t.Errorf("Apply produced %q, want %q", utf16ToUTF8(result.Produced), "ue")
	}
}

func TestApplyIndexModifierVariable(t *testing.T) {
	strings := []StringEntry{{Units: utf8ToUTF16("ABCD")}}
	rule := &ProcessedRule{
		RHSSegments: []Segment{{Kind: SegVariable, VarIndex: 1, IndexFrom: 1}},
	}
	captures := []Capture{{Position: 2, SegmentIndex: 1}}
	result := Apply(rule, captures, strings)
	if utf16ToUTF8(result.Produced) != "C" {
		t.Errorf("Apply produced %q, want %q", utf16ToUTF8(result.Produced), "C")
	}
}

func TestApplyNullClearsOutput(t *testing.T) {
	rule := &ProcessedRule{
		RHSSegments: []Segment{
			{Kind: SegString, Literal: utf8ToUTF16("keep-me")},
			{Kind: SegVirtualKey, Key: VKNull},
		},
	}
	result := Apply(rule, nil, nil)
	if len(result.Produced) != 0 {
		t.Errorf("expected NULL to clear output, got %q", utf16ToUTF8(result.Produced))
	}
}

func TestApplyStateAssertion(t *testing.T) {
	rule := &ProcessedRule{RHSSegments: []Segment{{Kind: SegState, StateID: 9}}}
	result := Apply(rule, nil, nil)
	if len(result.NewStates) != 1 || result.NewStates[0] != 9 {
		t.Errorf("NewStates = %+v", result.NewStates)
	}
}
