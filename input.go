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

// Modifiers records which modifier keys were held down alongside a key
// press. A shell translates its own OS event into this shape before
// calling Engine.ProcessKey.
type Modifiers struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	CapsLock bool
	Meta     bool // Windows key / Command key
}

// HasAny reports whether any of Shift, Ctrl, Alt or Meta is set.
// CapsLock is excluded: it is a latch, not a momentary modifier, and
// rules never gate on it directly (track_caps only tells a shell
// whether to forward real caps-lock state).
func (m Modifiers) HasAny() bool {
	return m.Shift || m.Ctrl || m.Alt || m.Meta
}

// IsRightAlt reports whether the combination should be treated as
// AltGr, given the layout's right_alt option (§6.4). When
// treatCtrlAltAsRightAlt is true, Ctrl+Alt is folded into AltGr; when false, Ctrl+Alt is
// reported as plain Ctrl and Alt rather than AltGr.
func (m Modifiers) IsRightAlt(treatCtrlAltAsRightAlt bool) bool {
	return m.Alt && (!m.Ctrl || treatCtrlAltAsRightAlt)
}

// Input is one keystroke event as seen by the engine: an internal key
// code, the scalar value the shell's keyboard layout produced (0 if
// none), and the modifier state.
type Input struct {
	KeyCode   VirtualKey
	Character rune // Unicode scalar value, or 0 if this key has none
	Modifiers Modifiers
}

// NewInput is a convenience constructor matching the shape shells most
// often build: a key code, an optional character, and modifiers.
func NewInput(key VirtualKey, ch rune, mods Modifiers) Input {
	return Input{KeyCode: key, Character: ch, Modifiers: mods}
}

// Action identifies which of the three shell-facing primitives an
// Output describes (§6.3).
type Action int

const (
	// ActionNone means the shell should do nothing; for unprocessed
	// keys it should forward the event to the OS.
	ActionNone Action = iota
	// ActionInsert means append Output.Text to the document.
	ActionInsert
	// ActionBackspaceDelete means remove Output.DeleteCount scalars
	// before the cursor.
	ActionBackspaceDelete
	// ActionBackspaceDeleteAndInsert means remove Output.DeleteCount
	// scalars, then insert Output.Text.
	ActionBackspaceDeleteAndInsert
)

// String renders the action name for logging/debugging.
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "Insert"
	case ActionBackspaceDelete:
		return "BackspaceDelete"
	case ActionBackspaceDeleteAndInsert:
		return "BackspaceDeleteAndInsert"
	default:
		return "None"
	}
}

// Output is what Engine.ProcessKey (or TestProcessKey) returns: the
// primitive the shell should apply, plus the engine's resulting
// composing buffer mirrored as UTF-8 for shells that render a preedit.
type Output struct {
	Action        Action
	Text          string // UTF-8 text to emit (Insert, BackspaceDeleteAndInsert)
	DeleteCount   int    // scalars to remove before Text (BackspaceDelete*)
	ComposingText string // engine's new composing buffer, UTF-8
	IsProcessed   bool   // whether the key was consumed
}

func outputNone(composing string) Output {
	return Output{Action: ActionNone, ComposingText: composing}
}

// outputEaten is outputNone's processed counterpart: no primitive for
// the shell to apply, but the key must not be treated as unhandled
// (eat_all_unused_keys swallowing an unmatched printable key).
func outputEaten(composing string) Output {
	return Output{Action: ActionNone, ComposingText: composing, IsProcessed: true}
}

func outputInsert(text, composing string) Output {
	return Output{Action: ActionInsert, Text: text, ComposingText: composing, IsProcessed: true}
}

func outputDelete(count int, composing string) Output {
	return Output{Action: ActionBackspaceDelete, DeleteCount: count, ComposingText: composing, IsProcessed: true}
}

func outputDeleteAndInsert(count int, text, composing string) Output {
	return Output{
		Action:        ActionBackspaceDeleteAndInsert,
		Text:          text,
		DeleteCount:   count,
		ComposingText: composing,
		IsProcessed:   true,
	}
}
