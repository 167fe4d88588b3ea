/*
 * PCRTC - RTC configuration test cases.
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

package rtcconfig

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	config "github.com/rcornwell/pcrtc/config/configparser"
)

func load(t *testing.T, text string) error {
	t.Helper()
	Reset()
	return config.LoadConfig(strings.NewReader(text))
}

func TestDefaults(t *testing.T) {
	if err := load(t, "# nothing\n"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), Get()); diff != "" {
		t.Errorf("Defaults changed (-want +got):\n%s", diff)
	}
}

func TestSettings(t *testing.T) {
	text := `
MACHINE IBMPS1_2011
NVRDIR "/var/lib/pc rtc"
SYNC
PORT 170
DEBUG rtc reg,irq update
MONITOR 2323
`
	if err := load(t, text); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	expect := Settings{
		Machine: "ibmps1_2011",
		NVRDir:  "/var/lib/pc rtc",
		Sync:    true,
		Port:    0x170,
		Debug:   []string{"REG", "IRQ", "UPDATE"},
		Monitor: ":2323",
	}
	if diff := cmp.Diff(expect, Get()); diff != "" {
		t.Errorf("Settings not correct (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []string{
		"MACHINE ibmpc\n",
		"PORT 71\n",
		"PORT xyz\n",
		"DEBUG CPU inst\n",
		"DEBUG RTC\n",
		"SYNC now\n",
		"MONITOR telnet\n",
	}
	for _, text := range tests {
		if err := load(t, text); err == nil {
			t.Errorf("Config %q accepted", strings.TrimSpace(text))
		}
	}
}
