/*
 * PCRTC - NVRAM image tool commands.
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rcornwell/pcrtc/emu/clock"
	"github.com/rcornwell/pcrtc/emu/event"
	"github.com/rcornwell/pcrtc/emu/models"
	"github.com/rcornwell/pcrtc/emu/nvstore"
	"github.com/rcornwell/pcrtc/emu/pic"
	"github.com/rcornwell/pcrtc/emu/rtc"
	"github.com/rcornwell/pcrtc/util/hex"
)

// Split image file name into store and key.
func openImage(file string) (*nvstore.FileStore, string) {
	return nvstore.NewFileStore(filepath.Dir(file)), filepath.Base(file)
}

type modelsCmd struct{}

func (c *modelsCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Out, "%-18s %-22s %5s %3s\n", "MACHINE", "IMAGE", "BYTES", "IRQ")
	for _, name := range models.Names() {
		model, err := models.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "%-18s %-22s %5d %3d\n", model.Name, model.Key, int(model.Mask)+1, model.IRQ)
	}
	return nil
}

type dumpCmd struct {
	File string `arg help:"Image file." type:"existingfile"`
}

func (c *dumpCmd) Run(g *Globals) error {
	store, key := openImage(c.File)
	image, err := store.Load(key)
	if err != nil {
		return err
	}
	fmt.Fprint(g.Out, hex.Dump(image))

	regB := image[rtc.RegB]
	mode := "BCD"
	if regB&rtc.RegBBinary != 0 {
		mode = "binary"
	}
	hours := "12"
	if regB&rtc.RegB2412 != 0 {
		hours = "24"
	}
	fmt.Fprintf(g.Out, "A=%02x B=%02x C=%02x D=%02x %s %sh\n",
		image[rtc.RegA], regB, image[rtc.RegC], image[rtc.RegD], mode, hours)
	if t, ok := clock.Decode(image); ok {
		fmt.Fprintf(g.Out, "Time: %s\n", t.Format(time.DateTime))
	} else {
		fmt.Fprintln(g.Out, "Time: invalid")
	}
	fmt.Fprintf(g.Out, "Alarm: %02x:%02x:%02x\n",
		image[rtc.RegHoursAlarm], image[rtc.RegMinutesAlarm], image[rtc.RegSecondsAlarm])
	return nil
}

type initCmd struct {
	Dir     string `arg help:"Directory to write image in."`
	Machine string `required short:"m" help:"Machine the image is for."`
	Force   bool   `help:"Replace existing image."`
}

// Build the image a chip with no stored image starts with.
func defaultImage(model models.Model) ([]byte, error) {
	chip := rtc.New(event.NewEventList(), pic.NewPIC(), clock.NewClock(false, time.Now),
		rtc.Config{IRQ: model.IRQ})
	if err := chip.Attach(nvstore.NewMemStore(), model.Key, model.Mask); err != nil {
		return nil, err
	}
	image := chip.Registers()
	return image, chip.Detach()
}

func (c *initCmd) Run(g *Globals) error {
	model, err := models.Lookup(c.Machine)
	if err != nil {
		return err
	}
	path := filepath.Join(c.Dir, model.Key)
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("image %s exists, use --force to replace", path)
	}
	image, err := defaultImage(model)
	if err != nil {
		return err
	}
	if err := nvstore.NewFileStore(c.Dir).Save(model.Key, image); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Wrote %s\n", path)
	return nil
}

type pokeCmd struct {
	File   string `arg help:"Image file." type:"existingfile"`
	Addr   string `arg help:"Register address in hex."`
	Value  string `arg help:"New value in hex."`
	DryRun bool   `help:"Show result without writing it."`
}

func (c *pokeCmd) Run(g *Globals) error {
	addr, err := strconv.ParseUint(c.Addr, 16, 8)
	if err != nil || addr >= rtc.Size {
		return errors.New("address must be hex 0 to 7f: " + c.Addr)
	}
	value, err := strconv.ParseUint(c.Value, 16, 8)
	if err != nil {
		return errors.New("value must be hex 0 to ff: " + c.Value)
	}

	store, key := openImage(c.File)
	image, err := store.Load(key)
	if err != nil {
		return err
	}
	old := image[addr]
	image[addr] = byte(value)

	var target rtc.Store = store
	mem := nvstore.NewMemStore()
	if c.DryRun {
		target = mem
	}
	if err := target.Save(key, image); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "%02x: %02x -> %02x\n", addr, old, value)
	if c.DryRun {
		fmt.Fprint(g.Out, hex.Dump(mem.Images[key]))
	}
	return nil
}
