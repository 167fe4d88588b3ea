/*
 * PCRTC - Monitor command test cases.
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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rcornwell/pcrtc/config/rtcconfig"
	core "github.com/rcornwell/pcrtc/emu/core"
	"github.com/rcornwell/pcrtc/emu/master"
	"github.com/rcornwell/pcrtc/emu/nvstore"
)

var buf = &bytes.Buffer{}

func setup(t *testing.T) (*core.Core, *nvstore.MemStore, *bytes.Buffer) {
	t.Helper()
	store := nvstore.NewMemStore()
	c, err := core.NewCore(make(chan master.Packet), rtcconfig.Default(), store)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	c.Start()
	t.Cleanup(c.Stop)
	buf.Reset()
	return c, store, buf
}

func doCmd(t *testing.T, c *core.Core, text string) {
	t.Helper()
	quit, err := Execute(buf, text, c)
	if err != nil {
		t.Fatalf("Command %q failed: %v", text, err)
	}
	if quit {
		t.Fatalf("Command %q quit", text)
	}
}

func TestDepositExamine(t *testing.T) {
	c, _, buf := setup(t)
	doCmd(t, c, "deposit 20 5a")
	doCmd(t, c, "e 20")
	if buf.String() != "20: 5A \n" {
		t.Errorf("Examine got: %q", buf.String())
	}

	buf.Reset()
	doCmd(t, c, "dep 21 a5 # comment")
	doCmd(t, c, "examine 1f-21")
	if buf.String() != "1F: FF 5A A5 \n" {
		t.Errorf("Examine range got: %q", buf.String())
	}

	buf.Reset()
	doCmd(t, c, "examine 0-10")
	if bytes.Count(buf.Bytes(), []byte("\n")) != 2 {
		t.Errorf("Examine rows got: %q", buf.String())
	}
}

func TestPorts(t *testing.T) {
	c, _, buf := setup(t)
	doCmd(t, c, "out 70 40")
	doCmd(t, c, "o 71 12")
	doCmd(t, c, "in 71")
	if buf.String() != "0071: 12\n" {
		t.Errorf("In got: %q", buf.String())
	}
}

func TestRunSave(t *testing.T) {
	c, store, buf := setup(t)
	doCmd(t, c, "deposit 0a 20")
	doCmd(t, c, "out 70 0c")
	doCmd(t, c, "in 71")
	doCmd(t, c, "run 1000")
	doCmd(t, c, "run 3ms")
	buf.Reset()
	doCmd(t, c, "in 71")
	if buf.String() != "0071: 10\n" {
		t.Errorf("Register C after run got: %q", buf.String())
	}

	doCmd(t, c, "deposit 30 77")
	doCmd(t, c, "save")
	if store.Images["at.nvr"][0x30] != 0x77 {
		t.Errorf("Save did not write image")
	}

	doCmd(t, c, "start")
	if !c.IsRunning() {
		t.Errorf("Start did not start")
	}
	doCmd(t, c, "stop")
	if c.IsRunning() {
		t.Errorf("Stop did not stop")
	}
}

func TestMachineShow(t *testing.T) {
	c, _, buf := setup(t)
	doCmd(t, c, "machine IBMAT386")
	doCmd(t, c, "debug reg,irq")
	doCmd(t, c, "show")
	if !bytes.Contains(buf.Bytes(), []byte("Machine: ibmat386")) {
		t.Errorf("Show got: %q", buf.String())
	}
	doCmd(t, c, "e 7f")
}

func TestErrors(t *testing.T) {
	c, _, _ := setup(t)
	tests := []string{
		"bogus",
		"s",
		"de 20 1",
		"in",
		"in 10000",
		"in 7g",
		"out 70",
		"out 70 100",
		"examine 80",
		"examine 40",
		"examine 21-20",
		"deposit 20",
		"run",
		"run 10x",
		"run 0",
		"run -1s",
		"machine",
		"machine ibmpc",
		"debug",
		"debug bogus",
		"show all",
		"1234",
	}
	for _, text := range tests {
		if _, err := Execute(buf, text, c); err == nil {
			t.Errorf("Command %q accepted", text)
		}
	}

	quit, err := Execute(buf, "quit", c)
	if err != nil || !quit {
		t.Errorf("Quit got: %v %v", quit, err)
	}
	quit, err = Execute(buf, "   ", c)
	if err != nil || quit {
		t.Errorf("Empty line got: %v %v", quit, err)
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line   string
		expect []string
	}{
		{"s", []string{"save", "show", "start", "stop"}},
		{"q", []string{"quit"}},
		{"machine pc1", []string{"machine pc1512", "machine pc1640"}},
		{"m   ibmps2_m5", []string{"m   ibmps2_m50", "m   ibmps2_m55sx"}},
		{"debug reg,pe", []string{"debug reg,periodic"}},
		{"debug u", []string{"debug update"}},
		{"examine ", nil},
		{"machine ibmat extra", nil},
	}
	for _, test := range tests {
		got := CompleteCmd(test.line)
		if diff := cmp.Diff(test.expect, got); diff != "" {
			t.Errorf("Complete %q (-want +got):\n%s", test.line, diff)
		}
	}
}
