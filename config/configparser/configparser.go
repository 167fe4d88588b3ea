/*
 * PCRTC - Configuration file parser
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <keyword> [<whitespace> <first>] *(<whitespace> <option>)
 * <first> ::= <quoteopt>
 * <option> ::= <name> ['=' <quoteopt>] *(',' *(<whitespace>) <name>)
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 * <name> ::= <letter> *(<letter> | <number>)
 *
 * Example:
 *    MACHINE ibmat
 *    NVRDIR "/var/lib/pcrtc"
 *    SYNC
 *    DEBUG RTC REG,IRQ UPDATE
 */

// Option following the first value.
type Option struct {
	Name     string   // Name of option.
	EqualOpt string   // Value of string after =.
	Value    []string // Values after commas.
}

const (
	TypeOption  = 1 + iota // Keyword takes one value.
	TypeOptions            // Keyword takes a value and list of options.
	TypeSwitch             // Keyword takes nothing.
)

// Create function for keyword.
type CreateFunc func(first string, options []Option) error

type keywordDef struct {
	create CreateFunc
	ty     int
}

var keywords = map[string]keywordDef{}

// Current line being parsed.
type optionLine struct {
	line   string // Current option line.
	pos    int    // Current position in line.
	number int    // Line number in file.
}

// Register a keyword, should be called from init functions.
func Register(name string, ty int, fn CreateFunc) {
	keywords[strings.ToUpper(name)] = keywordDef{create: fn, ty: ty}
}

// Register keyword taking one value.
func RegisterOption(name string, fn CreateFunc) {
	Register(name, TypeOption, fn)
}

// Register keyword taking a value and options.
func RegisterOptions(name string, fn CreateFunc) {
	Register(name, TypeOptions, fn)
}

// Register keyword that takes nothing.
func RegisterSwitch(name string, fn CreateFunc) {
	Register(name, TypeSwitch, fn)
}

// Load in a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Load configuration from a reader.
func LoadConfig(r io.Reader) error {
	reader := bufio.NewReader(r)
	number := 0
	for {
		text, err := reader.ReadString('\n')
		number++
		if len(text) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line := optionLine{line: strings.TrimRight(text, "\r\n"), number: number}
		if perr := line.parseLine(); perr != nil {
			return perr
		}
	}
}

// Parse one line.
func (line *optionLine) parseLine() error {
	line.skipSpace()
	if line.isEOL() {
		return nil
	}

	name := strings.ToUpper(line.getName())
	if name == "" {
		return line.errorf("invalid keyword")
	}
	keyword, ok := keywords[name]
	if !ok {
		return line.errorf("unknown keyword: %s", name)
	}

	switch keyword.ty {
	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return line.errorf("switch %s followed by options", name)
		}
		return line.wrap(keyword.create("", nil))

	case TypeOption:
		line.skipSpace()
		first, ok := line.parseQuoteString()
		if !ok || first == "" {
			return line.errorf("option %s not followed by value", name)
		}
		line.skipSpace()
		if !line.isEOL() {
			return line.errorf("option %s has extra text", name)
		}
		return line.wrap(keyword.create(first, nil))

	case TypeOptions:
		line.skipSpace()
		first, ok := line.parseQuoteString()
		if !ok || first == "" {
			return line.errorf("option %s not followed by value", name)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return line.wrap(keyword.create(first, options))
	}
	return line.errorf("keyword %s has no type", name)
}

// Format error with line number.
func (line *optionLine) errorf(format string, a ...interface{}) error {
	return fmt.Errorf("line %d: "+format, append([]interface{}{line.number}, a...)...)
}

// Add line number to error from create function.
func (line *optionLine) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("line %d: %w", line.number, err)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// Return letters and digits starting with a letter.
func (line *optionLine) getName() string {
	start := line.pos
	for !line.isEOL() {
		by := rune(line.line[line.pos])
		if unicode.IsLetter(by) || (line.pos != start && (unicode.IsDigit(by) || by == '_')) {
			line.pos++
			continue
		}
		break
	}
	return line.line[start:line.pos]
}

// Parse string that is "string" or just string. Inside quotes "" is a
// single quote.
func (line *optionLine) parseQuoteString() (string, bool) {
	if line.isEOL() {
		return "", true
	}
	var value strings.Builder
	if line.line[line.pos] != '"' {
		for !line.isEOL() {
			by := line.line[line.pos]
			if unicode.IsSpace(rune(by)) || by == ',' {
				break
			}
			value.WriteByte(by)
			line.pos++
		}
		return value.String(), true
	}

	line.pos++
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				value.WriteByte('"')
				line.pos++
				continue
			}
			return value.String(), true
		}
		value.WriteByte(by)
	}
	// Unterminated quote.
	return value.String(), false
}

// Parse one option.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()
	if line.isEOL() {
		return nil, nil
	}

	name := line.getName()
	if name == "" {
		return nil, line.errorf("invalid option at %d", line.pos)
	}
	option := Option{Name: name}

	// Check if equals option.
	if !line.isEOL() && line.line[line.pos] == '=' {
		line.pos++
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, line.errorf("invalid quoted string at %d", line.pos)
		}
		option.EqualOpt = v
	}

	line.skipSpace()
	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++
		line.skipSpace()
		v := line.getName()
		if v == "" {
			return nil, line.errorf("invalid option after comma at %d", line.pos)
		}
		option.Value = append(option.Value, v)
		line.skipSpace()
	}
	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			return options, nil
		}
		options = append(options, *option)
	}
}
