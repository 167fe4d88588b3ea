/*
 * PCRTC - Messages sent to the simulation goroutine.
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

package master

// Message types.
const (
	TimeClock   = 1 + iota // Real time tick, advance virtual time if running.
	Start                  // Let virtual time follow real time.
	Stop                   // Freeze virtual time.
	Advance                // Step virtual time by Time nanoseconds.
	PortIn                 // Read I/O port.
	PortOut                // Write I/O port.
	Examine                // Read register without side effects.
	Deposit                // Write register through the ports.
	Show                   // Return device state.
	Save                   // Write NVRAM image.
	SelectModel            // Switch host machine.
	Debug                  // Enable debug option.
)

// Reply to a packet.
type Reply struct {
	Value uint8  // Value read.
	Text  string // Text for show.
	Err   error  // Error if request failed.
}

// Packet sent to the simulation.
type Packet struct {
	Msg   int        // Message type.
	Port  uint16     // I/O port.
	Addr  uint8      // Register address.
	Data  uint8      // Value to write.
	Time  int        // Nanoseconds to advance.
	Name  string     // Model name or debug option.
	Reply chan Reply // Where to send answer, may be nil.
}

// Send reply if requested.
func (packet *Packet) Answer(reply Reply) {
	if packet.Reply != nil {
		packet.Reply <- reply
	}
}
