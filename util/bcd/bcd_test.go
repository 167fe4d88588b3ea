/*
 * PCRTC - BCD test cases.
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

package bcd

import "testing"

func TestBCD(t *testing.T) {
	for i := range 100 {
		b := ToBCD(byte(i))
		if !Valid(b) {
			t.Errorf("BCD %02x not valid", b)
		}
		if FromBCD(b) != byte(i) {
			t.Errorf("BCD round trip got: %d expected: %d", FromBCD(b), i)
		}
	}
	if ToBCD(80) != 0x80 || ToBCD(19) != 0x19 {
		t.Errorf("BCD not correct got: %02x %02x", ToBCD(80), ToBCD(19))
	}
	if Valid(0x1a) || Valid(0xa1) || Valid(0xff) {
		t.Errorf("Invalid BCD reported valid")
	}
}
