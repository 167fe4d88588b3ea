/*
 * PCRTC - Configuration parser test cases.
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
	"errors"
	"strings"
	"testing"
)

var testOptions []Option
var testFirst string
var testType string

func cleanUpConfig() {
	keywords = map[string]keywordDef{}
	testOptions = nil
	testFirst = "error"
	testType = ""
}

func modOption(first string, options []Option) error {
	testFirst = first
	testType = "option"
	testOptions = options
	return nil
}

func modOptions(first string, options []Option) error {
	testFirst = first
	testType = "options"
	testOptions = options
	return nil
}

func modSwitch(first string, options []Option) error {
	testFirst = first
	testType = "switch"
	testOptions = options
	return nil
}

func registerTest() {
	cleanUpConfig()
	RegisterOption("machine", modOption)
	RegisterOptions("debug", modOptions)
	RegisterSwitch("sync", modSwitch)
}

func TestSwitch(t *testing.T) {
	registerTest()
	err := LoadConfig(strings.NewReader("sync\n"))
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if testType != "switch" || testFirst != "" {
		t.Errorf("Switch not created got: %s %q", testType, testFirst)
	}

	err = LoadConfig(strings.NewReader("SYNC extra\n"))
	if err == nil {
		t.Errorf("Switch with options succeeded")
	}
}

func TestOption(t *testing.T) {
	registerTest()
	err := LoadConfig(strings.NewReader("  Machine ibmat   # comment\n"))
	if err != nil {
		t.Fatalf("Option failed: %v", err)
	}
	if testType != "option" || testFirst != "ibmat" {
		t.Errorf("Option not created got: %s %q", testType, testFirst)
	}

	err = LoadConfig(strings.NewReader(`machine "my dir"` + "\n"))
	if err != nil {
		t.Fatalf("Quoted option failed: %v", err)
	}
	if testFirst != "my dir" {
		t.Errorf("Quoted value got: %q expected: %q", testFirst, "my dir")
	}

	err = LoadConfig(strings.NewReader(`machine "say ""hi"""`))
	if err != nil {
		t.Fatalf("Quoted option failed: %v", err)
	}
	if testFirst != `say "hi"` {
		t.Errorf("Quoted value got: %q expected: %q", testFirst, `say "hi"`)
	}

	for _, bad := range []string{"machine\n", "machine a b\n", `machine "open`} {
		if err := LoadConfig(strings.NewReader(bad)); err == nil {
			t.Errorf("Bad option line %q succeeded", bad)
		}
	}
}

func TestOptions(t *testing.T) {
	registerTest()
	err := LoadConfig(strings.NewReader("# debug setup\n\ndebug rtc reg, irq update mode=fast\n"))
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if testType != "options" || testFirst != "rtc" {
		t.Errorf("Options not created got: %s %q", testType, testFirst)
	}
	if len(testOptions) != 3 {
		t.Fatalf("Options count got: %d expected: %d", len(testOptions), 3)
	}
	if testOptions[0].Name != "reg" || len(testOptions[0].Value) != 1 || testOptions[0].Value[0] != "irq" {
		t.Errorf("Option 0 not correct: %+v", testOptions[0])
	}
	if testOptions[1].Name != "update" || len(testOptions[1].Value) != 0 {
		t.Errorf("Option 1 not correct: %+v", testOptions[1])
	}
	if testOptions[2].Name != "mode" || testOptions[2].EqualOpt != "fast" {
		t.Errorf("Option 2 not correct: %+v", testOptions[2])
	}

	if err := LoadConfig(strings.NewReader("debug rtc reg,\n")); err == nil {
		t.Errorf("Trailing comma succeeded")
	}
}

func TestUnknown(t *testing.T) {
	registerTest()
	err := LoadConfig(strings.NewReader("sync\nfoo bar\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Unknown keyword error got: %v", err)
	}
	if err := LoadConfig(strings.NewReader("123\n")); err == nil {
		t.Errorf("Numeric keyword succeeded")
	}
}

func TestCreateError(t *testing.T) {
	cleanUpConfig()
	failed := errors.New("no such machine")
	RegisterOption("machine", func(string, []Option) error {
		return failed
	})
	err := LoadConfig(strings.NewReader("\nmachine xyz\n"))
	if !errors.Is(err, failed) {
		t.Errorf("Create error not returned got: %v", err)
	}
	if err == nil || !strings.HasPrefix(err.Error(), "line 2:") {
		t.Errorf("Create error missing line got: %v", err)
	}
}
