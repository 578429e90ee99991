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

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func pressChar(e *Engine, vk VirtualKey, ch rune) Output {
	return e.ProcessKey(NewInput(vk, ch, Modifiers{}))
}

func TestNoKeyboardLoaded(t *testing.T) {
	e := NewEngine()
	out := e.ProcessKey(NewInput(VKKeyA, 'a', Modifiers{}))
	if out.Action != ActionNone || out.IsProcessed || out.ComposingText != "" {
		t.Fatalf("unloaded engine returned %+v", out)
	}
}

func TestReorderRuleSwapsOrder(t *testing.T) {
	Convey("a keyboard with a reorder rule and a follow-up cascade rule", t, func() {
		b := &km2Builder{}
		sE := b.addString("e")
		sX := b.addString("X")
		b.addRule(literalOpcode("e"), stringOpcode(sX))
		_ = sE

		// "X" + ANY => $2 $1 (reorders the just-typed character ahead of X)
		b.addRule([]Opcode{opVariable, sX, opAny}, []Opcode{opReference, 2, opReference, 1})

		// "uX" => "Z"
		b.addRule(literalOpcode("uX"), literalOpcode("Z"))

		e := NewEngine()
		So(e.LoadFromBytes(b.build()), ShouldBeNil)

		Convey("typing e then u cascades through both rewrite rules", func() {
			pressChar(e, VKKeyE, 'e')
			So(e.GetComposingUTF8(), ShouldEqual, "X")

			pressChar(e, VKKeyU, 'u')
			So(e.GetComposingUTF8(), ShouldEqual, "Z")
		})
	})
}

func TestScenario1BasicRuleFires(t *testing.T) {
	Convey("ka => က", t, func() {
		b := &km2Builder{}
		idx := b.addString("က")
		b.addRule(literalOpcode("ka"), stringOpcode(idx))
		e := NewEngine()
		So(e.LoadFromBytes(b.build()), ShouldBeNil)

		pressChar(e, VKKeyK, 'k')
		pressChar(e, VKKeyA, 'a')
		So(e.GetComposingUTF8(), ShouldEqual, "က")
	})
}

func TestScenario2NoRuleYet(t *testing.T) {
	Convey("typing k alone with no completing rule falls through to insert", t, func() {
		b := &km2Builder{}
		idx := b.addString("က")
		b.addRule(literalOpcode("ka"), stringOpcode(idx))
		e := NewEngine()
		So(e.LoadFromBytes(b.build()), ShouldBeNil)

		out := pressChar(e, VKKeyK, 'k')
		So(e.GetComposingUTF8(), ShouldEqual, "k")
		So(out.Action, ShouldEqual, ActionInsert)
	})
}

func TestScenario3EmptyRuleSetFallsThrough(t *testing.T) {
	Convey("with no rules at all, every printable key just inserts", t, func() {
		e := NewEngine()
		So(e.LoadFromBytes((&km2Builder{}).build()), ShouldBeNil)

		pressChar(e, VKKeyA, 'a')
		pressChar(e, VKKeyB, 'b')
		pressChar(e, VKKeyC, 'c')
		So(e.GetComposingUTF8(), ShouldEqual, "abc")
	})
}

func TestScenario4And5SmartBackspace(t *testing.T) {
	Convey("with auto_bksp enabled", t, func() {
		b := &km2Builder{opts: LayoutOptions{AutoBksp: true}}
		idx := b.addString("က")
		b.addRule(literalOpcode("ka"), stringOpcode(idx))
		e := NewEngine()
		So(e.LoadFromBytes(b.build()), ShouldBeNil)

		pressChar(e, VKKeyK, 'k')
		pressChar(e, VKKeyA, 'a')
		So(e.GetComposingUTF8(), ShouldEqual, "က")

		Convey("one backspace undoes the rule firing back to the pre-match buffer", func() {
			e.ProcessKey(NewInput(VKBack, 0, Modifiers{}))
			So(e.GetComposingUTF8(), ShouldEqual, "k")

			Convey("a second backspace undoes the original character insert", func() {
				e.ProcessKey(NewInput(VKBack, 0, Modifiers{}))
				So(e.GetComposingUTF8(), ShouldEqual, "")
			})
		})
	})
}

func TestScenario6StateRuleWinsByPriority(t *testing.T) {
	Convey("a state-gated rule outranks a same-length plain rule", t, func() {
		b := &km2Builder{}
		const symState = 1
		// Activation key VKKeyS sets the 'sym' state with no text output.
		b.addRule([]Opcode{opPredefined, uint16(VKKeyS)}, []Opcode{opSwitch, symState})
		// ('sym') + "u" => "ူ"
		uVowel := b.addString("ူ")
		b.addRule(append([]Opcode{opSwitch, symState}, literalOpcode("u")...), stringOpcode(uVowel))
		// plain "u" => "က"
		ka := b.addString("က")
		b.addRule(literalOpcode("u"), stringOpcode(ka))

		e := NewEngine()
		So(e.LoadFromBytes(b.build()), ShouldBeNil)

		e.ProcessKey(NewInput(VKKeyS, 0, Modifiers{}))
		pressChar(e, VKKeyU, 'u')

		So(e.GetComposingUTF8(), ShouldEqual, "ူ")
	})
}

func TestResetClearsComposingAndHistory(t *testing.T) {
	b := &km2Builder{opts: LayoutOptions{AutoBksp: true}}
	e := NewEngine()
	if err := e.LoadFromBytes(b.build()); err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	pressChar(e, VKKeyA, 'a')
	e.Reset()
	if e.GetComposingUTF8() != "" {
		t.Errorf("composing after reset = %q", e.GetComposingUTF8())
	}
	if e.CanUndo() {
		t.Error("expected no undo available after reset")
	}
}

func TestTestProcessKeyDoesNotMutateState(t *testing.T) {
	b := &km2Builder{}
	idx := b.addString("က")
	b.addRule(literalOpcode("ka"), stringOpcode(idx))
	e := NewEngine()
	if err := e.LoadFromBytes(b.build()); err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	pressChar(e, VKKeyK, 'k')
	before := e.GetComposingUTF8()

	out := e.TestProcessKey(NewInput(VKKeyA, 'a', Modifiers{}))
	if out.ComposingText != "က" {
		t.Errorf("TestProcessKey output = %q, want %q", out.ComposingText, "က")
	}
	if e.GetComposingUTF8() != before {
		t.Errorf("TestProcessKey mutated state: now %q, was %q", e.GetComposingUTF8(), before)
	}
}

func TestDiffOutputInsertOnly(t *testing.T) {
	out := diffOutput(utf8ToUTF16("ab"), utf8ToUTF16("abc"))
	if out.Action != ActionInsert || out.Text != "c" || out.DeleteCount != 0 {
		t.Errorf("diffOutput = %+v", out)
	}
}

func TestDiffOutputBackspaceDeleteAndInsert(t *testing.T) {
	out := diffOutput(utf8ToUTF16("abc"), utf8ToUTF16("abXY"))
	if out.Action != ActionBackspaceDeleteAndInsert || out.DeleteCount != 1 || out.Text != "XY" {
		t.Errorf("diffOutput = %+v", out)
	}
}

func TestDiffOutputPureBackspace(t *testing.T) {
	out := diffOutput(utf8ToUTF16("abc"), utf8ToUTF16("ab"))
	if out.Action != ActionBackspaceDelete || out.DeleteCount != 1 || out.Text != "" {
		t.Errorf("diffOutput = %+v", out)
	}
}

func TestEatAllUnusedKeysSwallowsUnmatchedPrintable(t *testing.T) {
	b := &km2Builder{opts: LayoutOptions{Eat: true}}
	e := NewEngine()
	if err := e.LoadFromBytes(b.build()); err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	out := pressChar(e, VKKeyA, 'a')
	if out.Action != ActionNone || !out.IsProcessed {
		t.Errorf("eat_all_unused_keys should swallow unmatched printable: %+v", out)
	}
	if e.GetComposingUTF8() != "" {
		t.Errorf("composing should remain empty, got %q", e.GetComposingUTF8())
	}
}
