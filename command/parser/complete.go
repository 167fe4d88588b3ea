/*
 * PCRTC - Monitor command completion.
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
	"slices"
	"strings"

	"github.com/rcornwell/pcrtc/emu/models"
	"github.com/rcornwell/pcrtc/emu/rtc"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// Command followed by space, let the command complete its argument.
	if name != "" && line.pos < len(line.line) {
		match := matchList(name)
		if len(match) != 1 || match[0].Complete == nil {
			return nil
		}
		return match[0].Complete(&line)
	}
	if line.pos < len(line.line) {
		return nil
	}

	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name)
		}
	}
	slices.Sort(matches)
	return matches
}

// Complete last argument from list of choices. Returned values are full lines.
func (line *cmdLine) completeArg(choices []string) []string {
	line.skipSpace()
	prefix := line.line[:line.pos]
	arg := strings.ToLower(line.line[line.pos:])
	if strings.ContainsAny(arg, " \t") {
		return nil
	}
	var matches []string
	for _, choice := range choices {
		if strings.HasPrefix(strings.ToLower(choice), arg) {
			matches = append(matches, prefix+choice)
		}
	}
	return matches
}

func machineComplete(line *cmdLine) []string {
	return line.completeArg(models.Names())
}

// Debug options are separated by commas, complete the last one.
func debugComplete(line *cmdLine) []string {
	line.skipSpace()
	if i := strings.LastIndexByte(line.line[line.pos:], ','); i >= 0 {
		line.pos += i + 1
	}
	opts := rtc.DebugOptions()
	for i := range opts {
		opts[i] = strings.ToLower(opts[i])
	}
	return line.completeArg(opts)
}
