/*
 * PCRTC - Interrupt request lines
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

package pic

import (
	"log/slog"
)

const Lines = 16

// PIC tracks the request state of the interrupt lines of a cascaded
// pair of 8259s. Only the line state is modelled, not priority or
// acknowledge cycles.
type PIC struct {
	irr     uint16        // Interrupt request register, one bit per line.
	edges   [Lines]uint64 // Number of times each line went high.
	onRaise func(irq int) // Called when a line goes high.
}

func NewPIC() *PIC {
	return &PIC{}
}

// Set function to call whenever a line is raised.
func (p *PIC) OnRaise(fn func(irq int)) {
	p.onRaise = fn
}

// Raise an interrupt line.
func (p *PIC) Assert(irq int) {
	if irq < 0 || irq >= Lines {
		slog.Warn("pic: assert of invalid line", "irq", irq)
		return
	}
	bit := uint16(1) << irq
	if p.irr&bit != 0 {
		return
	}
	p.irr |= bit
	p.edges[irq]++
	if p.onRaise != nil {
		p.onRaise(irq)
	}
}

// Drop an interrupt line.
func (p *PIC) Deassert(irq int) {
	if irq < 0 || irq >= Lines {
		slog.Warn("pic: deassert of invalid line", "irq", irq)
		return
	}
	p.irr &^= uint16(1) << irq
}

// Return true if line is currently asserted.
func (p *PIC) Asserted(irq int) bool {
	if irq < 0 || irq >= Lines {
		return false
	}
	return p.irr&(uint16(1)<<irq) != 0
}

// Return mask of asserted lines.
func (p *PIC) Pending() uint16 {
	return p.irr
}

// Return number of times line has been raised.
func (p *PIC) Edges(irq int) uint64 {
	if irq < 0 || irq >= Lines {
		return 0
	}
	return p.edges[irq]
}
