/*
 * PCRTC - MC146818 real time clock and NVRAM
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

/*
   The RTC is reached through two ports. A write to the even port latches
   the register address, a read returns the latch. The odd port reads or
   writes the register selected by the latch.

   Register C holds the interrupt flags. Reading it returns the flags,
   clears them and drops the interrupt line. Register D always reads
   with the valid RAM bit set. Writes to C and D are ignored.

   All methods must be called from the goroutine that drives the
   scheduler, the device does no locking of its own.
*/

package rtc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rcornwell/pcrtc/emu/event"
	"github.com/rcornwell/pcrtc/util/debug"
	"github.com/rcornwell/pcrtc/util/hex"
)

// Scheduler delivers callbacks after an interval of virtual time.
type Scheduler interface {
	AddEvent(cb event.Callback, time int, iarg int) *event.Event
	CancelEvent(ev *event.Event)
}

// IRQLine raises and lowers an interrupt request line.
type IRQLine interface {
	Assert(irq int)
	Deassert(irq int)
}

// TimeSource keeps the time shown in the date registers.
type TimeSource interface {
	ReadTime(regs []byte)
	WriteTime(regs []byte, changed uint8)
	SyncFromRegisters(regs []byte)
	SetInternalFromRegisters(regs []byte)
	Tick()
}

// Store holds NVRAM images by key.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

const (
	// Debug options.
	debugReg      = 1 << iota // Register access.
	debugIRQ                  // Interrupt line changes.
	debugUpdate               // Update cycle and alarm.
	debugPeriodic             // Periodic interrupt.
)

var debugOption = map[string]int{
	"REG":      debugReg,
	"IRQ":      debugIRQ,
	"UPDATE":   debugUpdate,
	"PERIODIC": debugPeriodic,
}

// Config holds construction time settings.
type Config struct {
	IRQ  int  // Interrupt line the chip drives.
	Sync bool // Clock follows host time, guest writes are not pushed.
}

type RTC struct {
	regs      [Size]byte   // Register file.
	addr      uint8        // Latched address.
	mask      uint8        // Address mask, 63 or 127.
	irq       int          // Interrupt line.
	sync      bool         // Passive clock sync.
	dirty     bool         // Unsaved changes.
	uip       bool         // Update in progress.
	oneSecCnt int          // Sub ticks since last update.
	sched     Scheduler    // Virtual time scheduler.
	line      IRQLine      // Interrupt controller.
	clock     TimeSource   // Date and time source.
	store     Store        // Where image was loaded from.
	key       string       // Model key captured at load.
	periodic  *event.Event // Periodic interrupt timer.
	oneSec    *event.Event // Update cycle sub tick.
	updateEnd *event.Event // End of update in progress window.
	debugMsk  int          // Debug option mask.
}

// Create a new RTC. Until Attach is called the register file is zero and
// no timers run.
func New(sched Scheduler, line IRQLine, clock TimeSource, cfg Config) *RTC {
	return &RTC{
		mask:  0x3f,
		irq:   cfg.IRQ,
		sync:  cfg.Sync,
		sched: sched,
		line:  line,
		clock: clock,
	}
}

// Handle read from either port.
func (r *RTC) In(port uint16) uint8 {
	if port&1 != 0 {
		return r.ReadData()
	}
	return r.ReadAddr()
}

// Handle write to either port.
func (r *RTC) Out(port uint16, value uint8) {
	if port&1 != 0 {
		r.WriteData(value)
		return
	}
	r.WriteAddr(value)
}

// Latch register address.
func (r *RTC) WriteAddr(value uint8) {
	r.addr = value & r.mask
}

// Return latched register address.
func (r *RTC) ReadAddr() uint8 {
	return r.addr
}

// Write register selected by the latch.
func (r *RTC) WriteData(value uint8) {
	addr := r.addr
	if addr == RegC || addr == RegD {
		return
	}

	old := r.regs[addr]
	if addr > RegD && old != value {
		r.dirty = true
	}
	r.regs[addr] = value
	debug.Debugf("RTC", r.debugMsk, debugReg, "write %02x: %02x -> %02x", addr, old, value)

	switch {
	case addr == RegA:
		r.schedulePeriodic()
	case addr == RegB:
		if (old^value)&RegBSet != 0 && value&RegBSet != 0 {
			r.uip = false
			r.regs[RegA] &^= RegAUIP
			r.regs[RegB] &^= RegBUIE
		}
	case IsTimeField(addr):
		if old != value && !r.sync {
			r.clock.WriteTime(r.regs[:], addr)
			r.dirty = true
		}
	}
}

// Read register selected by the latch.
func (r *RTC) ReadData() uint8 {
	var value uint8
	switch r.addr {
	case RegA:
		value = r.regs[RegA] &^ RegAUIP
		if r.uip && r.regs[RegB]&RegBSet == 0 {
			value |= RegAUIP
		}
	case RegC:
		value = r.regs[RegC]
		r.regs[RegC] = 0
		r.lower()
	case RegD:
		r.regs[RegD] |= RegDVRT
		value = r.regs[RegD]
	default:
		value = r.regs[r.addr]
	}
	debug.Debugf("RTC", r.debugMsk, debugReg, "read %02x: %02x", r.addr, value)
	return value
}

// Set interrupt requested flag and raise line.
func (r *RTC) raise(source uint8) {
	r.regs[RegC] |= RegCIRQF
	r.line.Assert(r.irq)
	debug.Debugf("RTC", r.debugMsk, debugIRQ, "assert irq %d flags %02x source %02x", r.irq, r.regs[RegC], source)
}

// Drop interrupt line.
func (r *RTC) lower() {
	r.line.Deassert(r.irq)
	debug.Debugf("RTC", r.debugMsk, debugIRQ, "deassert irq %d", r.irq)
}

// Return register value without side effects.
func (r *RTC) Peek(addr uint8) uint8 {
	return r.regs[addr&(Size-1)]
}

// Return copy of register file.
func (r *RTC) Registers() []byte {
	image := make([]byte, Size)
	copy(image, r.regs[:])
	return image
}

// Return true if update in progress window is open.
func (r *RTC) UIP() bool {
	return r.uip
}

// Return true if there are unsaved changes.
func (r *RTC) Dirty() bool {
	return r.dirty
}

// Return address mask.
func (r *RTC) Mask() uint8 {
	return r.mask
}

// Return interrupt line.
func (r *RTC) IRQ() int {
	return r.irq
}

// Return key image was loaded under.
func (r *RTC) Key() string {
	return r.key
}

// Enable debug options.
func (r *RTC) Debug(opt string) error {
	flag, ok := debugOption[strings.ToUpper(opt)]
	if !ok {
		return errors.New("RTC debug option invalid: " + opt)
	}
	r.debugMsk |= flag
	return nil
}

// Return names of debug options.
func DebugOptions() []string {
	names := make([]string, 0, len(debugOption))
	for name := range debugOption {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show register state.
func (r *RTC) Show() string {
	var str strings.Builder
	fmt.Fprintf(&str, "RTC: key=%s irq=%d mask=%02x addr=%02x", r.key, r.irq, r.mask, r.addr)
	if r.sync {
		str.WriteString(" sync")
	}
	if r.uip {
		str.WriteString(" uip")
	}
	if r.dirty {
		str.WriteString(" dirty")
	}
	str.WriteByte('\n')
	limit := int(r.mask) + 1
	for i := 0; i < limit; i += 16 {
		fmt.Fprintf(&str, "%02x: ", i)
		hex.FormatBytes(&str, true, r.regs[i:i+16])
		str.WriteByte('\n')
	}
	return str.String()
}
