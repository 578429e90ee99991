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

// Command kmrepl is a minimal terminal demo of the wiring a platform
// shell is expected to do around the keymagic core (spec's "platform
// adapter boundary", made concrete the way tcell/demos/hello makes a
// screen driver concrete): read raw keystrokes, translate them into
// keymagic.Input, apply the resulting keymagic.Output to a line buffer,
// and redraw.
//
// It does not attempt real IME shell duties (no text-field commit, no
// preedit underline); it prints the committed line and the current
// composing buffer on every keystroke.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/term"

	"github.com/thantthet/keymagic-go"
)

func main() {
	layoutPath := flag.String("layout", "", "path to a .km2 keyboard layout")
	scriptPath := flag.String("script", "", "UTF-16LE text file of keystrokes to replay instead of reading the terminal")
	flag.Parse()

	if *layoutPath == "" {
		fmt.Fprintln(os.Stderr, "usage: kmrepl -layout path/to/keyboard.km2 [-script keys.utf16le]")
		os.Exit(2)
	}

	engine := keymagic.NewEngine()
	if err := engine.LoadFromFile(*layoutPath); err != nil {
		fmt.Fprintf(os.Stderr, "kmrepl: load %s: %v\n", *layoutPath, err)
		os.Exit(1)
	}

	meta := engine.KeyboardMeta()
	fmt.Printf("loaded %q (%s)\n", meta.Name, meta.Description)

	if *scriptPath != "" {
		runScript(engine, *scriptPath)
		return
	}
	runInteractive(engine)
}

// runScript replays a UTF-16LE-encoded keystroke script non-interactively,
// one character per scalar; useful for CI or headless reproduction of a
// reported layout bug without a terminal. This is the feature
// DecodeUTF16LEText exists for: script authors commonly save fixtures as
// UTF-16LE text on Windows.
func runScript(engine *keymagic.Engine, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kmrepl: read script: %v\n", err)
		os.Exit(1)
	}
	text, err := keymagic.DecodeUTF16LEText(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kmrepl: decode script: %v\n", err)
		os.Exit(1)
	}
	var line string
	for _, r := range text {
		out := engine.ProcessKey(inputForRune(r))
		line = applyOutput(line, out)
		printLine(line, out.ComposingText)
	}
}

func runInteractive(engine *keymagic.Engine) {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kmrepl: open terminal: %v\n", err)
		os.Exit(1)
	}
	defer t.Restore()
	defer t.Close()

	fmt.Println("type; Ctrl-D to quit")
	var line string
	buf := make([]byte, 1)
	for {
		n, err := t.Read(buf)
		if err != nil || n == 0 {
			return
		}
		b := buf[0]
		if b == 0x04 { // Ctrl-D
			return
		}
		out := engine.ProcessKey(inputForByte(b))
		line = applyOutput(line, out)
		printLine(line, out.ComposingText)
	}
}

func inputForByte(b byte) keymagic.Input {
	switch b {
	case 0x7f, 0x08:
		return keymagic.NewInput(keymagic.VKBack, 0, keymagic.Modifiers{})
	case '\r', '\n':
		return keymagic.NewInput(keymagic.VKReturn, 0, keymagic.Modifiers{})
	default:
		return keymagic.NewInput(keymagic.VKNull, rune(b), keymagic.Modifiers{})
	}
}

func inputForRune(r rune) keymagic.Input {
	if r == '\b' {
		return keymagic.NewInput(keymagic.VKBack, 0, keymagic.Modifiers{})
	}
	return keymagic.NewInput(keymagic.VKNull, r, keymagic.Modifiers{})
}

// applyOutput folds an Output onto a committed-text buffer the way a
// real shell would apply the three action primitives (§6.3).
func applyOutput(line string, out keymagic.Output) string {
	runes := []rune(line)
	switch out.Action {
	case keymagic.ActionInsert:
		return line + out.Text
	case keymagic.ActionBackspaceDelete:
		n := out.DeleteCount
		if n > len(runes) {
			n = len(runes)
		}
		return string(runes[:len(runes)-n])
	case keymagic.ActionBackspaceDeleteAndInsert:
		n := out.DeleteCount
		if n > len(runes) {
			n = len(runes)
		}
		return string(runes[:len(runes)-n]) + out.Text
	default:
		return line
	}
}

// printLine redraws the committed text and the composing preedit,
// right-padded to the display width go-runewidth reports so a shorter
// redraw doesn't leave stray glyphs from the previous one (the same
// problem a real preedit renderer has to solve for wide Myanmar
// clusters).
func printLine(committed, composing string) {
	text := committed + composing
	width := runewidth.StringWidth(text)
	fmt.Printf("\r%s%*s", text, 40-width, "")
}
