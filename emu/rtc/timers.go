/*
 * PCRTC - Periodic interrupt and update cycle
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
	"github.com/rcornwell/pcrtc/emu/event"
	"github.com/rcornwell/pcrtc/util/debug"
)

const (
	oneSecTick   = 10 * event.Millisecond           // Update cycle sub tick.
	oneSecCount  = 100                              // Sub ticks per second.
	updateWindow = (244 + 1984) * event.Microsecond // Update in progress window.
	baseFreq     = 32768                            // Oscillator frequency.
)

// Return periodic interval for rate select, the base tick of the
// 32768Hz oscillator doubled rate-1 times.
func PeriodicInterval(rate uint8) int {
	if rate == 0 {
		return 0
	}
	return int((uint64(event.Second) << (rate - 1)) / baseFreq)
}

// Start timers after attach.
func (r *RTC) start() {
	r.stop()
	r.oneSecCnt = 0
	r.oneSec = r.sched.AddEvent(r.oneSecCallback, oneSecTick, 0)
	r.schedulePeriodic()
}

// Cancel all timers.
func (r *RTC) stop() {
	r.sched.CancelEvent(r.periodic)
	r.sched.CancelEvent(r.oneSec)
	r.sched.CancelEvent(r.updateEnd)
	r.periodic = nil
	r.oneSec = nil
	r.updateEnd = nil
	r.uip = false
}

// Rearm periodic timer from register A, rate 0 stops it.
func (r *RTC) schedulePeriodic() {
	r.sched.CancelEvent(r.periodic)
	r.periodic = nil
	rate := r.regs[RegA] & RegARateSelect
	if rate == 0 {
		debug.Debugf("RTC", r.debugMsk, debugPeriodic, "periodic disabled")
		return
	}
	r.periodic = r.sched.AddEvent(r.periodicCallback, PeriodicInterval(rate), 0)
}

// Periodic timer fired. The flag is set even when the interrupt is masked.
func (r *RTC) periodicCallback(_ int) {
	r.periodic = nil
	rate := r.regs[RegA] & RegARateSelect
	if rate == 0 {
		return
	}
	r.periodic = r.sched.AddEvent(r.periodicCallback, PeriodicInterval(rate), 0)
	r.regs[RegC] |= RegCPF
	debug.Debugf("RTC", r.debugMsk, debugPeriodic, "periodic rate %d", rate)
	if r.regs[RegB]&RegBPIE != 0 {
		r.raise(RegCPF)
	}
}

// Sub tick of the one second update cycle.
func (r *RTC) oneSecCallback(_ int) {
	r.oneSec = r.sched.AddEvent(r.oneSecCallback, oneSecTick, 0)
	r.oneSecCnt++
	if r.oneSecCnt < oneSecCount {
		return
	}
	r.oneSecCnt = 0
	if r.regs[RegB]&RegBSet != 0 {
		return
	}

	// Open update in progress window, time moves at the start.
	r.uip = true
	r.clock.Tick()
	r.sched.CancelEvent(r.updateEnd)
	r.updateEnd = r.sched.AddEvent(r.updateEndCallback, updateWindow, 0)
	debug.Debugf("RTC", r.debugMsk, debugUpdate, "update started")
}

// Update in progress window closed.
func (r *RTC) updateEndCallback(_ int) {
	r.updateEnd = nil
	r.uip = false
	if r.regs[RegB]&RegBSet != 0 {
		return
	}

	r.clock.ReadTime(r.regs[:])
	if r.CheckAlarm() {
		r.regs[RegC] |= RegCAF
		debug.Debugf("RTC", r.debugMsk, debugUpdate, "alarm %02x:%02x:%02x",
			r.regs[RegHours], r.regs[RegMinutes], r.regs[RegSeconds])
		if r.regs[RegB]&RegBAIE != 0 {
			r.raise(RegCAF)
		}
	}

	// Flag and interrupt are issued when the update ends, not when it starts.
	r.regs[RegC] |= RegCUF
	debug.Debugf("RTC", r.debugMsk, debugUpdate, "update ended")
	if r.regs[RegB]&RegBUIE != 0 {
		r.raise(RegCUF)
	}
}

// Compare one time field against its alarm field.
func (r *RTC) alarmMatch(addr uint8) bool {
	alarm := r.regs[addr+1]
	return alarm == r.regs[addr] || alarm&AlarmDontCare == AlarmDontCare
}

// Return true if seconds, minutes and hours all match their alarms.
func (r *RTC) CheckAlarm() bool {
	return r.alarmMatch(RegSeconds) && r.alarmMatch(RegMinutes) && r.alarmMatch(RegHours)
}
