/*
 * PCRTC - Logger test cases.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTest(debug bool) (*slog.Logger, *bytes.Buffer, *bytes.Buffer) {
	var file, console bytes.Buffer
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}, debug)
	h.console = &console
	return slog.New(h), &file, &console
}

func TestHandler(t *testing.T) {
	log, file, console := newTest(false)
	log.Debug("loaded", "key", "at.nvr")
	if !strings.Contains(file.String(), "DEBUG: loaded key=at.nvr") {
		t.Errorf("Log file got: %q", file.String())
	}
	if console.Len() != 0 {
		t.Errorf("Debug written to console: %q", console.String())
	}

	log.With("dev", "rtc").WithGroup("irq").Warn("stuck", "line", 8)
	if !strings.Contains(console.String(), "WARN: stuck dev=rtc irq.line=8") {
		t.Errorf("Console got: %q", console.String())
	}
}

func TestDebugConsole(t *testing.T) {
	log, _, console := newTest(true)
	log.Debug("tick")
	if !strings.Contains(console.String(), "DEBUG: tick") {
		t.Errorf("Console got: %q", console.String())
	}
}

func TestLevel(t *testing.T) {
	var file bytes.Buffer
	h := NewHandler(&file, nil, false)
	h.console = nil
	log := slog.New(h)
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(file.String(), "hidden") || !strings.Contains(file.String(), "shown") {
		t.Errorf("Level filter got: %q", file.String())
	}
}
