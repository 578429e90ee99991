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

// This file implements EngineState (§3): the composing buffer, the
// one-shot active-state set, and the bounded undo history.
package keymagic

// historyCapacity bounds the undo stack (§3, §8 invariant 8).
const historyCapacity = 50

// historySnapshot is one entry of the undo history: a deep copy of the
// composing buffer and active-state set at the moment a
// character-producing key was processed.
type historySnapshot struct {
	composing     []uint16
	activeStates  map[int]bool
}

func snapshotOf(composing []uint16, activeStates map[int]bool) historySnapshot {
	c := make([]uint16, len(composing))
	copy(c, composing)
	s := make(map[int]bool, len(activeStates))
	for k, v := range activeStates {
		s[k] = v
	}
	return historySnapshot{composing: c, activeStates: s}
}

// engineState is the engine's mutable per-instance state.
type engineState struct {
	composing    []uint16
	activeStates map[int]bool
	history      []historySnapshot
}

func newEngineState() *engineState {
	return &engineState{activeStates: make(map[int]bool)}
}

// reset clears composing text, active states and history; it backs
// Engine.Reset, LoadFromBytes and Unload (§6.1).
func (s *engineState) reset() {
	s.composing = nil
	s.activeStates = make(map[int]bool)
	s.history = nil
}

// pushHistory records a snapshot of the current state, dropping the
// oldest entry first if the stack is already at capacity (§3, §4.5
// step 9, §8 invariant 8).
func (s *engineState) pushHistory() {
	if len(s.history) >= historyCapacity {
		s.history = s.history[1:]
	}
	s.history = append(s.history, snapshotOf(s.composing, s.activeStates))
}

// popHistory removes and returns the most recent snapshot, or ok=false
// if history is empty.
func (s *engineState) popHistory() (historySnapshot, bool) {
	if len(s.history) == 0 {
		return historySnapshot{}, false
	}
	last := len(s.history) - 1
	snap := s.history[last]
	s.history = s.history[:last]
	return snap, true
}

// restore replaces composing and active states from a snapshot,
// without touching history (used by smart backspace).
func (s *engineState) restore(snap historySnapshot) {
	s.composing = snap.composing
	s.activeStates = snap.activeStates
}

// clearStatesAndApply replaces active_states with newStates (§4.4:
// "clear state.active_states and insert all new_states" — one-shot
// semantics, §9).
func (s *engineState) clearStatesAndApply(newStates []int) {
	s.activeStates = make(map[int]bool, len(newStates))
	for _, id := range newStates {
		s.activeStates[id] = true
	}
}

// clone produces a full snapshot without pushing it to history, used
// by Engine to bracket TestProcessKey.
func (s *engineState) clone() historySnapshot {
	return snapshotOf(s.composing, s.activeStates)
}
