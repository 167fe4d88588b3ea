/*
 * PCRTC - NVRAM image tool test cases.
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModels(t *testing.T) {
	var buf bytes.Buffer
	if err := (&modelsCmd{}).Run(&Globals{Out: &buf}); err != nil {
		t.Fatalf("Models failed: %v", err)
	}
	if !strings.Contains(buf.String(), "ibmat              at.nvr                    64   8") {
		t.Errorf("Models missing ibmat:\n%s", buf.String())
	}
}

func TestInitDumpPoke(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	g := &Globals{Out: &buf}

	if err := (&initCmd{Dir: dir, Machine: "ibmat"}).Run(g); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	file := filepath.Join(dir, "at.nvr")
	image, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Image not written: %v", err)
	}
	if len(image) != 128 || image[0x09] != 0x80 || image[0x32] != 0x19 || image[0x40] != 0xff {
		t.Errorf("Default image not correct: % x", image)
	}
	if err := (&initCmd{Dir: dir, Machine: "ibmat"}).Run(g); err == nil {
		t.Errorf("Init replaced image without force")
	}
	if err := (&initCmd{Dir: dir, Machine: "ibmat", Force: true}).Run(g); err != nil {
		t.Errorf("Init with force failed: %v", err)
	}
	if err := (&initCmd{Dir: dir, Machine: "ibmpc"}).Run(g); err == nil {
		t.Errorf("Init of machine without NVRAM accepted")
	}

	buf.Reset()
	if err := (&dumpCmd{File: file}).Run(g); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Time: 1980-01-01 00:00:00") {
		t.Errorf("Dump time not correct:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "BCD 24h") {
		t.Errorf("Dump mode not correct:\n%s", buf.String())
	}

	buf.Reset()
	if err := (&pokeCmd{File: file, Addr: "40", Value: "5a", DryRun: true}).Run(g); err != nil {
		t.Fatalf("Dry run poke failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "40: ff -> 5a\n") {
		t.Errorf("Poke report got: %q", buf.String())
	}
	image, _ = os.ReadFile(file)
	if image[0x40] != 0xff {
		t.Errorf("Dry run changed image")
	}

	if err := (&pokeCmd{File: file, Addr: "40", Value: "5a"}).Run(g); err != nil {
		t.Fatalf("Poke failed: %v", err)
	}
	image, _ = os.ReadFile(file)
	if image[0x40] != 0x5a {
		t.Errorf("Poke got: %02x expected: %02x", image[0x40], 0x5a)
	}

	for _, poke := range []pokeCmd{
		{File: file, Addr: "80", Value: "1"},
		{File: file, Addr: "zz", Value: "1"},
		{File: file, Addr: "1", Value: "100"},
	} {
		if err := poke.Run(g); err == nil {
			t.Errorf("Poke %s %s accepted", poke.Addr, poke.Value)
		}
	}
}
