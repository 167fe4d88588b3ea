/*
 * PCRTC - Monitor command line parser.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package parser

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	core "github.com/rcornwell/pcrtc/emu/core"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string    // Current command.
	pos  int       // Position in line.
	out  io.Writer // Where command output goes.
}

// Execute the command line given on the console. Returns true if the
// monitor should exit.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	return Execute(os.Stdout, commandLine, core)
}

// Execute the command line given, output is written to out.
func Execute(out io.Writer, commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine, out: out}
	command := line.getWord()
	if command == "" {
		if !line.isEOL() {
			return false, errors.New("invalid command: " + strings.TrimSpace(commandLine))
		}
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, command) && len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}

	var match []cmd
	for _, m := range cmdList {
		// An exact match wins.
		if m.Name == command {
			return []cmd{m}
		}
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character without moving.
func (line *cmdLine) peek() byte {
	if line.isEOL() {
		return 0
	}
	return line.line[line.pos]
}

// Check that nothing but spaces or a comment remains.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("extra text on line: " + line.line[line.pos:])
	}
	return nil
}

// Return next word of letters in lower case.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && unicode.IsLetter(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// Return next argument, everything up to a space.
func (line *cmdLine) getArg() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

const hexDigits = "0123456789abcdef"

// Parse hex number, stops at first character that is not a digit.
func (line *cmdLine) getHex() (uint32, error) {
	line.skipSpace()
	start := line.pos
	value := uint32(0)
	for !line.isEOL() {
		digit := strings.IndexByte(hexDigits, byte(unicode.ToLower(rune(line.line[line.pos]))))
		if digit == -1 {
			break
		}
		if value > 0xfffffff {
			return 0, errors.New("number too large")
		}
		value = (value << 4) + uint32(digit)
		line.pos++
	}
	if line.pos == start {
		return 0, errors.New("not a number")
	}
	return value, nil
}

// Parse hex number that must fit in limit.
func (line *cmdLine) getHexLimit(what string, limit uint32) (uint32, error) {
	value, err := line.getHex()
	if err != nil {
		return 0, errors.New(what + " must be a hex number")
	}
	if value > limit {
		return 0, errors.New(what + " too large")
	}
	if c := line.peek(); c != 0 && !unicode.IsSpace(rune(c)) && c != '-' {
		return 0, errors.New(what + " must be a hex number")
	}
	return value, nil
}
