/*
 * PCRTC - Host time to register conversion
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

package clock

import (
	"log/slog"
	"time"

	"github.com/rcornwell/pcrtc/emu/rtc"
	"github.com/rcornwell/pcrtc/util/bcd"
)

// Clock converts between time and the RTC date registers. When sync is
// set the clock follows host time, otherwise it keeps its own time which
// only moves on Tick or when the guest writes the date registers.
type Clock struct {
	now      func() time.Time // Host time source.
	sync     bool             // Follow host time.
	internal time.Time        // Internal time, fields are held in UTC.
}

// Create a clock, now defaults to time.Now.
func NewClock(sync bool, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	c := &Clock{now: now, sync: sync}
	c.internal = c.wall()
	return c
}

// Return true if clock is following host time.
func (c *Clock) Sync() bool {
	return c.sync
}

// Return current clock time.
func (c *Clock) Now() time.Time {
	if c.sync {
		return c.wall()
	}
	return c.internal
}

// Host time with its wall clock fields moved to UTC.
func (c *Clock) wall() time.Time {
	n := c.now()
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
}

// Advance internal time by one second.
func (c *Clock) Tick() {
	if !c.sync {
		c.internal = c.internal.Add(time.Second)
	}
}

// Fill in time registers with current time, using the mode in register B.
func (c *Clock) ReadTime(regs []byte) {
	t := c.Now()
	statusB := regs[rtc.RegB]
	binary := statusB&rtc.RegBBinary != 0

	enc := func(v int) byte {
		if binary {
			return byte(v)
		}
		return bcd.ToBCD(byte(v))
	}

	regs[rtc.RegSeconds] = enc(t.Second())
	regs[rtc.RegMinutes] = enc(t.Minute())
	if statusB&rtc.RegB2412 != 0 {
		regs[rtc.RegHours] = enc(t.Hour())
	} else {
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}
		by := enc(hour)
		if t.Hour() >= 12 {
			by |= rtc.HourPM
		}
		regs[rtc.RegHours] = by
	}
	regs[rtc.RegWeekday] = enc(int(t.Weekday()) + 1)
	regs[rtc.RegDay] = enc(t.Day())
	regs[rtc.RegMonth] = enc(int(t.Month()))
	regs[rtc.RegYear] = enc(t.Year() % 100)
	regs[rtc.RegCentury] = enc(t.Year() / 100)
}

// Guest changed a date register, move internal time to match.
func (c *Clock) WriteTime(regs []byte, changed uint8) {
	t, ok := Decode(regs)
	if !ok {
		slog.Debug("clock: ignoring invalid date registers", "changed", changed)
		return
	}
	c.internal = t
}

// Bring internal time back to host time and refresh the registers.
func (c *Clock) SyncFromRegisters(regs []byte) {
	c.internal = c.wall()
	c.ReadTime(regs)
}

// Set internal time from the registers. Registers which do not hold a
// valid date leave the clock at host time.
func (c *Clock) SetInternalFromRegisters(regs []byte) {
	t, ok := Decode(regs)
	if !ok {
		c.internal = c.wall()
		return
	}
	c.internal = t
}

// Decode the date registers, using the mode in register B.
func Decode(regs []byte) (time.Time, bool) {
	statusB := regs[rtc.RegB]
	binary := statusB&rtc.RegBBinary != 0

	dec := func(by byte) int {
		if binary {
			return int(by)
		}
		if !bcd.Valid(by) {
			return -1
		}
		return int(bcd.FromBCD(by))
	}

	sec := dec(regs[rtc.RegSeconds])
	minute := dec(regs[rtc.RegMinutes])
	day := dec(regs[rtc.RegDay])
	month := dec(regs[rtc.RegMonth])
	year := dec(regs[rtc.RegYear])
	century := dec(regs[rtc.RegCentury])

	var hour int
	raw := regs[rtc.RegHours]
	if statusB&rtc.RegB2412 != 0 {
		hour = dec(raw)
	} else {
		hour = dec(raw &^ rtc.HourPM)
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		hour %= 12
		if raw&rtc.HourPM != 0 {
			hour += 12
		}
	}

	switch {
	case sec < 0 || sec > 59, minute < 0 || minute > 59, hour < 0 || hour > 23:
		return time.Time{}, false
	case day < 1 || day > 31, month < 1 || month > 12:
		return time.Time{}, false
	case year < 0 || year > 99, century < 0 || century > 99:
		return time.Time{}, false
	}
	return time.Date(century*100+year, time.Month(month), day, hour, minute, sec, 0, time.UTC), true
}
