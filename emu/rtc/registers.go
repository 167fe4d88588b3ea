/*
 * PCRTC - MC146818 register layout
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

// Size of the register file.
const Size = 128

// Register addresses.
const (
	RegSeconds      = 0x00
	RegSecondsAlarm = 0x01
	RegMinutes      = 0x02
	RegMinutesAlarm = 0x03
	RegHours        = 0x04
	RegHoursAlarm   = 0x05
	RegWeekday      = 0x06
	RegDay          = 0x07
	RegMonth        = 0x08
	RegYear         = 0x09
	RegA            = 0x0a
	RegB            = 0x0b
	RegC            = 0x0c
	RegD            = 0x0d
	RegCentury      = 0x32
)

// Register A.
const (
	RegARateSelect = 0x0f // Periodic rate select.
	RegAUIP        = 0x80 // Update in progress.
)

// Register B.
const (
	RegBDST    = 0x01 // Daylight savings enable.
	RegB2412   = 0x02 // 24 hour mode.
	RegBBinary = 0x04 // Binary rather than BCD.
	RegBSQWE   = 0x08 // Square wave enable.
	RegBUIE    = 0x10 // Update ended interrupt enable.
	RegBAIE    = 0x20 // Alarm interrupt enable.
	RegBPIE    = 0x40 // Periodic interrupt enable.
	RegBSet    = 0x80 // Halt updates.
)

// Register C.
const (
	RegCUF   = 0x10 // Update ended.
	RegCAF   = 0x20 // Alarm.
	RegCPF   = 0x40 // Periodic.
	RegCIRQF = 0x80 // Interrupt requested.
)

// Register D.
const (
	RegDVRT = 0x80 // Valid RAM and time.
)

// Alarm byte with both top bits set matches any value.
const AlarmDontCare = 0xc0

// Hour register PM flag in 12 hour mode.
const HourPM = 0x80

// Return true if address is a time or date field the clock tracks.
// Alarm fields are not time fields.
func IsTimeField(addr uint8) bool {
	if addr == RegCentury {
		return true
	}
	if addr >= RegA {
		return false
	}
	return addr != RegSecondsAlarm && addr != RegMinutesAlarm && addr != RegHoursAlarm
}
