/*
 * PCRTC - NVRAM image load and save
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

package rtc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rcornwell/pcrtc/emu/nvstore"
	"github.com/rcornwell/pcrtc/util/bcd"
)

// Attach the chip to its stored image and start the timers. The key and
// mask come from the host model. An image which is missing is not an
// error, the register file gets defaults. Any other load failure is
// returned, but the chip still runs from defaults.
func (r *RTC) Attach(store Store, key string, mask uint8) error {
	r.store = store
	r.key = key
	r.mask = mask
	r.addr &= mask
	r.dirty = false

	var loadErr error
	image, err := store.Load(key)
	switch {
	case err == nil:
		copy(r.regs[:], image)
		if r.sync {
			r.clock.SyncFromRegisters(r.regs[:])
		} else {
			r.clock.SetInternalFromRegisters(r.regs[:])
		}
		r.regs[RegA] = 0x06
		r.regs[RegB] = RegB2412
		slog.Debug("RTC image loaded", "key", key)
	case errors.Is(err, nvstore.ErrNotFound):
		slog.Info("RTC no image, using defaults", "key", key)
		r.setDefaults()
	default:
		loadErr = fmt.Errorf("unable to load NVRAM %s: %w", key, err)
		slog.Warn(loadErr.Error())
		r.setDefaults()
	}

	r.start()
	return loadErr
}

// Fill register file with power on defaults.
func (r *RTC) setDefaults() {
	for i := range r.regs {
		r.regs[i] = 0xff
	}
	r.regs[RegSeconds] = 0
	r.regs[RegMinutes] = 0
	r.regs[RegHours] = 0
	r.regs[RegDay] = 1
	r.regs[RegMonth] = 1
	r.regs[RegYear] = bcd.ToBCD(80)
	r.regs[RegCentury] = bcd.ToBCD(19)
	r.regs[RegB] = RegB2412
	if r.sync {
		r.clock.SyncFromRegisters(r.regs[:])
	} else {
		r.clock.SetInternalFromRegisters(r.regs[:])
	}
}

// Write image back if anything changed. The key used is the one
// captured by Attach. On failure the chip stays dirty.
func (r *RTC) Save() error {
	if r.store == nil || !r.dirty {
		return nil
	}
	err := r.store.Save(r.key, r.Registers())
	if err != nil {
		return fmt.Errorf("unable to save NVRAM %s: %w", r.key, err)
	}
	r.dirty = false
	slog.Debug("RTC image saved", "key", r.key)
	return nil
}

// Stop timers and save the image.
func (r *RTC) Detach() error {
	r.stop()
	err := r.Save()
	r.store = nil
	return err
}
