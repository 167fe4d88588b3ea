/*
 * PCRTC - Interrupt line test cases.
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

import "testing"

func TestAssertDeassert(t *testing.T) {
	p := NewPIC()
	raised := []int{}
	p.OnRaise(func(irq int) {
		raised = append(raised, irq)
	})

	p.Assert(8)
	if !p.Asserted(8) {
		t.Errorf("Line 8 not asserted")
	}
	if p.Pending() != 0x100 {
		t.Errorf("Pending not correct got: %04x expected: %04x", p.Pending(), 0x100)
	}

	// Already high, no new edge.
	p.Assert(8)
	if p.Edges(8) != 1 {
		t.Errorf("Edge count not correct got: %d expected: %d", p.Edges(8), 1)
	}

	p.Deassert(8)
	if p.Asserted(8) {
		t.Errorf("Line 8 still asserted")
	}
	p.Assert(8)
	if p.Edges(8) != 2 {
		t.Errorf("Edge count not correct got: %d expected: %d", p.Edges(8), 2)
	}
	if len(raised) != 2 {
		t.Errorf("Raise callback called %d times expected: %d", len(raised), 2)
	}
}

func TestInvalidLine(t *testing.T) {
	p := NewPIC()
	p.Assert(16)
	p.Assert(-1)
	p.Deassert(99)
	if p.Pending() != 0 {
		t.Errorf("Invalid line changed state: %04x", p.Pending())
	}
	if p.Asserted(20) || p.Edges(20) != 0 {
		t.Errorf("Invalid line reported state")
	}
}
