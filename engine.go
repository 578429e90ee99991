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

// This file implements Engine (§4.5, §6.1): the orchestrator that
// turns one Input into one Output by snapshotting state, running the
// matcher, applying the winning rule, and driving recursive re-match.
package keymagic

// maxRecursion bounds the recursive re-matching pass (§4.5 step 7,
// §8 invariant 7).
const maxRecursion = 10

// Engine runs one loaded keyboard layout. It is not safe for
// concurrent use by multiple goroutines; callers that need concurrency
// should construct one Engine per goroutine (§5). Each Engine holds its
// own decoded *KM2File and rule table, built by LoadFromBytes; neither
// is mutated after load, but no method lets Engines share one copy.
type Engine struct {
	km2   *KM2File
	rules []*ProcessedRule
	state *engineState
}

// NewEngine returns an Engine with no keyboard loaded.
func NewEngine() *Engine {
	return &Engine{state: newEngineState()}
}

// LoadFromBytes decodes and preprocesses a KM2 byte stream, replacing
// any previously loaded keyboard only on success (§7: "decoder errors
// abort the load and leave the engine's previous keyboard untouched").
func (e *Engine) LoadFromBytes(b []byte) error {
	km2, err := Decode(b)
	if err != nil {
		return err
	}
	e.km2 = km2
	e.rules = Preprocess(km2)
	e.state.reset()
	return nil
}

// Unload discards the current keyboard and resets all state.
func (e *Engine) Unload() {
	e.km2 = nil
	e.rules = nil
	e.state.reset()
}

// Loaded reports whether a keyboard is currently loaded.
func (e *Engine) Loaded() bool { return e.km2 != nil }

// Reset clears composing text, active states and history; the loaded
// keyboard, if any, remains loaded (§6.1).
func (e *Engine) Reset() {
	e.state.reset()
}

// GetComposingUTF8 returns the current composing buffer as UTF-8.
func (e *Engine) GetComposingUTF8() string {
	return utf16ToUTF8(e.state.composing)
}

// SetComposingUTF8 replaces the composing buffer and clears history
// and active states (§6.1).
func (e *Engine) SetComposingUTF8(s string) {
	e.state.composing = utf8ToUTF16(s)
	e.state.activeStates = make(map[int]bool)
	e.state.history = nil
}

// KeyboardMeta returns the loaded keyboard's metadata, or the zero
// value if no keyboard is loaded.
func (e *Engine) KeyboardMeta() KeyboardMeta {
	if e.km2 == nil {
		return KeyboardMeta{}
	}
	return e.km2.Meta()
}

// CanUndo reports whether a smart-backspace undo is available right
// now: auto_bksp enabled, a keyboard loaded, and non-empty history.
func (e *Engine) CanUndo() bool {
	return e.km2 != nil && e.km2.LayoutOptions.AutoBksp && len(e.state.history) > 0
}

// Undo performs one smart-backspace step outside of key processing,
// for shells that expose an explicit "undo" affordance. If there is
// nothing to undo it returns an ActionNone Output with IsProcessed=false
// and ComposingText set to the current composing buffer.
func (e *Engine) Undo() Output {
	if !e.CanUndo() {
		return outputNone(e.GetComposingUTF8())
	}
	old := e.state.composing
	snap, _ := e.state.popHistory()
	e.state.restore(snap)
	return diffOutput(old, e.state.composing)
}

// ClearHistory empties the undo history without touching composing
// text or active states.
func (e *Engine) ClearHistory() {
	e.state.history = nil
}

// ProcessKey runs the full pipeline for one keystroke and mutates
// engine state accordingly (§4.5).
func (e *Engine) ProcessKey(input Input) Output {
	return e.processKey(input, false)
}

// TestProcessKey runs the same pipeline but restores the pre-call
// state before returning, so the Output describes what would happen
// without committing it (§4.5 "Test mode", §8 invariant 3).
func (e *Engine) TestProcessKey(input Input) Output {
	return e.processKey(input, true)
}

func (e *Engine) processKey(input Input, testMode bool) Output {
	if e.km2 == nil {
		return outputNone("")
	}

	var restoreSnap historySnapshot
	var restoreHistory []historySnapshot
	if testMode {
		restoreSnap = e.state.clone()
		restoreHistory = append([]historySnapshot(nil), e.state.history...)
	}

	out := e.runProcessKey(input)

	if testMode {
		e.state.restore(restoreSnap)
		e.state.history = restoreHistory
	}
	return out
}

// runProcessKey implements §4.5 steps 2 through 9 against live state.
func (e *Engine) runProcessKey(input Input) Output {
	opts := e.km2.LayoutOptions
	old := e.state.composing

	// Smart backspace: consumed before rule matching when auto_bksp is
	// enabled (§4.6, §9 open question 3).
	if opts.AutoBksp && input.KeyCode == VKBack {
		if snap, ok := e.state.popHistory(); ok {
			e.state.restore(snap)
			return diffOutput(old, e.state.composing)
		}
		return outputNone(e.GetComposingUTF8())
	}

	probe := buildProbe(e.state.composing, input)
	rule, ctx, matched := e.selectRule(input, probe, opts.RightAlt)

	if !matched {
		if opts.Eat && isPrintable(input.Character) {
			return outputEaten(e.GetComposingUTF8())
		}
		if isPrintable(input.Character) {
			e.state.pushHistory()
			e.state.composing = append(append([]uint16(nil), e.state.composing...), runeToUTF16(input.Character)...)
			return diffOutput(old, e.state.composing)
		}
		if input.KeyCode == VKBack {
			if len(e.state.composing) > 0 {
				// History is not pushed here: a snapshot produced by
				// backspace itself must not become backspace's own undo
				// target (§4.6).
				_, width := decodeRuneUTF16(e.state.composing, lastRuneStart(e.state.composing))
				e.state.composing = e.state.composing[:len(e.state.composing)-width]
				return diffOutput(old, e.state.composing)
			}
		}
		return outputNone(e.GetComposingUTF8())
	}

	e.state.pushHistory()
	e.applyMatch(probe, rule, ctx)
	e.recursiveRematch()
	return diffOutput(old, e.state.composing)
}

// selectRule iterates rules in priority order and returns the first
// one that matches (§4.5 step 4).
func (e *Engine) selectRule(input Input, probe []uint16, rightAlt bool) (*ProcessedRule, MatchContext, bool) {
	for _, r := range e.rules {
		if ctx, ok := TryMatch(r, e.state.activeStates, input, probe, e.km2.Strings, rightAlt); ok {
			return r, ctx, true
		}
	}
	return nil, MatchContext{}, false
}

// applyMatch realises §4.5 step 5: replace the matched suffix of probe
// with the rule's production, then adopt the RHS's asserted states.
func (e *Engine) applyMatch(probe []uint16, rule *ProcessedRule, ctx MatchContext) {
	result := Apply(rule, ctx.Captures, e.km2.Strings)
	prefix := probe[:len(probe)-ctx.MatchedLength]
	composing := make([]uint16, 0, len(prefix)+len(result.Produced))
	composing = append(composing, prefix...)
	composing = append(composing, result.Produced...)
	e.state.composing = composing
	e.state.clearStatesAndApply(result.NewStates)
}

// recursiveRematch re-enters the matcher with no new key, cascading
// derived rewrites up to maxRecursion times or until a stop condition
// fires (§4.5 step 7, §9).
func (e *Engine) recursiveRematch() {
	for depth := 0; depth < maxRecursion; depth++ {
		if len(e.state.composing) == 0 {
			return
		}
		if isSingleASCIIPrintable(utf16ToUTF8(e.state.composing)) {
			return
		}
		noKey := Input{}
		probe := e.state.composing
		rule, ctx, matched := e.selectRule(noKey, probe, e.km2.LayoutOptions.RightAlt)
		if !matched {
			return
		}
		e.applyMatch(probe, rule, ctx)
	}
}

func isPrintable(r rune) bool {
	return r != 0 && r < 0x10000
}

// lastRuneStart returns the UTF-16 index of the last scalar's first
// code unit in units, respecting a trailing surrogate pair.
func lastRuneStart(units []uint16) int {
	n := len(units)
	if n == 0 {
		return 0
	}
	if n >= 2 && isLowSurrogate(units[n-1]) && isHighSurrogate(units[n-2]) {
		return n - 2
	}
	return n - 1
}

// diffOutput realises the diff routine of §4.5 step 8: longest common
// UTF-16 prefix, scalar-counted delete_count, and the resulting
// Output. It is only called from paths where a key was consumed (a
// rule matched, a printable character was appended, or backspace was
// handled), so is_processed is always true, even when old == next
// (e.g. a state-only rule that changes no visible text).
func diffOutput(old, next []uint16) Output {
	p := commonPrefixLen(old, next)
	oldSuffix := old[p:]
	nextSuffix := next[p:]
	composing := utf16ToUTF8(next)

	if len(oldSuffix) == 0 && len(nextSuffix) == 0 {
		return Output{Action: ActionNone, ComposingText: composing, IsProcessed: true}
	}

	deleteCount := scalarCount(utf16ToUTF8(oldSuffix))
	insertText := utf16ToUTF8(nextSuffix)

	switch {
	case deleteCount == 0:
		return outputInsert(insertText, composing)
	case insertText == "":
		return outputDelete(deleteCount, composing)
	default:
		return outputDeleteAndInsert(deleteCount, insertText, composing)
	}
}

func commonPrefixLen(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
