/*
 * PCRTC - Clock test cases.
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
	"testing"
	"time"

	"github.com/rcornwell/pcrtc/emu/rtc"
)

var testTime = time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)

func fixedNow() time.Time {
	return testTime
}

func TestReadTimeBCD24(t *testing.T) {
	c := NewClock(true, fixedNow)
	regs := make([]byte, rtc.Size)
	regs[rtc.RegB] = rtc.RegB2412
	c.ReadTime(regs)

	expect := map[int]byte{
		rtc.RegSeconds: 0x05,
		rtc.RegMinutes: 0x04,
		rtc.RegHours:   0x15,
		rtc.RegWeekday: 0x07, // Saturday.
		rtc.RegDay:     0x09,
		rtc.RegMonth:   0x03,
		rtc.RegYear:    0x24,
		rtc.RegCentury: 0x20,
	}
	for addr, v := range expect {
		if regs[addr] != v {
			t.Errorf("Register %02x got: %02x expected: %02x", addr, regs[addr], v)
		}
	}
}

func TestReadTimeBinary12(t *testing.T) {
	c := NewClock(true, fixedNow)
	regs := make([]byte, rtc.Size)
	regs[rtc.RegB] = rtc.RegBBinary
	c.ReadTime(regs)
	if regs[rtc.RegHours] != 3|rtc.HourPM {
		t.Errorf("Hours got: %02x expected: %02x", regs[rtc.RegHours], 3|rtc.HourPM)
	}
	if regs[rtc.RegYear] != 24 || regs[rtc.RegCentury] != 20 {
		t.Errorf("Year got: %d %d expected: 20 24", regs[rtc.RegCentury], regs[rtc.RegYear])
	}

	// Midnight reads as 12 AM.
	c = NewClock(true, func() time.Time {
		return time.Date(2024, time.March, 9, 0, 30, 0, 0, time.UTC)
	})
	c.ReadTime(regs)
	if regs[rtc.RegHours] != 12 {
		t.Errorf("Midnight hours got: %02x expected: %02x", regs[rtc.RegHours], 12)
	}
}

func TestDecode(t *testing.T) {
	regs := make([]byte, rtc.Size)
	regs[rtc.RegB] = 0 // BCD, 12 hour.
	regs[rtc.RegSeconds] = 0x59
	regs[rtc.RegMinutes] = 0x30
	regs[rtc.RegHours] = 0x12 // 12 AM.
	regs[rtc.RegDay] = 0x31
	regs[rtc.RegMonth] = 0x12
	regs[rtc.RegYear] = 0x99
	regs[rtc.RegCentury] = 0x19
	tm, ok := Decode(regs)
	if !ok {
		t.Fatalf("Decode failed")
	}
	expect := time.Date(1999, time.December, 31, 0, 30, 59, 0, time.UTC)
	if !tm.Equal(expect) {
		t.Errorf("Decode got: %v expected: %v", tm, expect)
	}

	regs[rtc.RegHours] = 0x11 | rtc.HourPM
	tm, _ = Decode(regs)
	if tm.Hour() != 23 {
		t.Errorf("PM hour got: %d expected: %d", tm.Hour(), 23)
	}

	regs[rtc.RegMonth] = 0x13
	if _, ok := Decode(regs); ok {
		t.Errorf("Invalid month decoded")
	}
	regs[rtc.RegMonth] = 0xff
	if _, ok := Decode(regs); ok {
		t.Errorf("Invalid BCD decoded")
	}
}

func TestInternalClock(t *testing.T) {
	c := NewClock(false, fixedNow)
	regs := make([]byte, rtc.Size)
	regs[rtc.RegB] = rtc.RegB2412
	regs[rtc.RegSeconds] = 0x58
	regs[rtc.RegMinutes] = 0x59
	regs[rtc.RegHours] = 0x23
	regs[rtc.RegDay] = 0x31
	regs[rtc.RegMonth] = 0x12
	regs[rtc.RegYear] = 0x99
	regs[rtc.RegCentury] = 0x19
	c.SetInternalFromRegisters(regs)

	c.Tick()
	c.Tick()
	c.ReadTime(regs)
	if regs[rtc.RegYear] != 0x00 || regs[rtc.RegCentury] != 0x20 {
		t.Errorf("Rollover got: %02x%02x expected: 2000", regs[rtc.RegCentury], regs[rtc.RegYear])
	}
	if regs[rtc.RegSeconds] != 0x00 || regs[rtc.RegMonth] != 0x01 || regs[rtc.RegDay] != 0x01 {
		t.Errorf("Rollover date not correct: %02x/%02x %02x", regs[rtc.RegMonth], regs[rtc.RegDay], regs[rtc.RegSeconds])
	}

	// Guest sets minutes.
	regs[rtc.RegMinutes] = 0x45
	c.WriteTime(regs, rtc.RegMinutes)
	if c.Now().Minute() != 45 {
		t.Errorf("WriteTime minutes got: %d expected: %d", c.Now().Minute(), 45)
	}

	// Bad registers leave clock alone.
	regs[rtc.RegSeconds] = 0x77
	c.WriteTime(regs, rtc.RegSeconds)
	if c.Now().Minute() != 45 {
		t.Errorf("Invalid WriteTime changed clock")
	}

	// Bad registers fall back to host time.
	c.SetInternalFromRegisters(regs)
	if !c.Now().Equal(testTime) {
		t.Errorf("Fallback got: %v expected: %v", c.Now(), testTime)
	}
}

func TestSyncClock(t *testing.T) {
	c := NewClock(true, fixedNow)
	if !c.Sync() {
		t.Errorf("Clock not in sync mode")
	}
	c.Tick()
	if !c.Now().Equal(testTime) {
		t.Errorf("Sync clock moved on tick")
	}
	regs := make([]byte, rtc.Size)
	regs[rtc.RegB] = rtc.RegB2412 | rtc.RegBBinary
	c.SyncFromRegisters(regs)
	if regs[rtc.RegMinutes] != 4 || regs[rtc.RegHours] != 15 {
		t.Errorf("Sync did not refresh registers: %d:%d", regs[rtc.RegHours], regs[rtc.RegMinutes])
	}
}
