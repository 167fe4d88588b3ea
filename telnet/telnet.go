/*
 * PCRTC - Telnet protocol handling for remote monitor.
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

package telnet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/rcornwell/pcrtc/command/parser"
	"github.com/rcornwell/pcrtc/emu/core"
)

// Telnet protocol constants.
const (
	tnIAC  byte = 255 // protocol delim
	tnDONT byte = 254 // dont
	tnDO   byte = 253 // do
	tnWONT byte = 252 // wont
	tnWILL byte = 251 // will
	tnSB   byte = 250 // Sub negotiations begin
	tnGA   byte = 249 // Go ahead
	tnIP   byte = 244 // Interrupt process
	tnBRK  byte = 243 // break
	tnSE   byte = 240 // Sub negotiations end

	// Telnet line states.
	tnStateData int = 1 + iota // normal
	tnStateIAC                 // IAC seen
	tnStateWILL                // WILL seen
	tnStateDO                  // DO seen
	tnStateDONT                // DONT seen
	tnStateWONT                // WONT seen
	tnStateSKIP                // skip next cmd
	tnStateSB                  // Inside sub negotiation
	tnStateSBIAC               // IAC seen inside sub negotiation

	// Telnet options.
	tnOptionBinary byte = 0  // Binary data transfer
	tnOptionEcho   byte = 1  // Echo
	tnOptionSGA    byte = 3  // Suppress go ahead
	tnOptionLINE   byte = 34 // line mode

	// Telnet flags.
	tnFlagDo   uint8 = 0x01 // Do sent
	tnFlagDont uint8 = 0x02 // Don't sent
	tnFlagWill uint8 = 0x04 // Will sent
	tnFlagWont uint8 = 0x08 // Wont sent
)

const prompt = "RTC> "

// Longest command line accepted.
const maxLine = 256

type tnState struct {
	optionState [256]uint8 // Current state of telnet session
	state       int        // Current line State
	lastCR      bool       // Last data character was a CR.
	line        []byte     // Command being collected.
	w           io.Writer  // Where replies go.
}

// Send option reply, each is sent once.
func (state *tnState) sendOption(setState, option byte) {
	var flag uint8
	switch setState {
	case tnWILL:
		flag = tnFlagWill
	case tnWONT:
		flag = tnFlagWont
	case tnDO:
		flag = tnFlagDo
	case tnDONT:
		flag = tnFlagDont
	}
	if state.optionState[option]&flag != 0 {
		return
	}
	state.optionState[option] |= flag
	_, _ = state.w.Write([]byte{tnIAC, setState, option})
}

// Client asks us to do something. Only suppress go ahead is agreed to.
func (state *tnState) handleDO(input byte) {
	if input == tnOptionSGA {
		state.sendOption(tnWILL, input)
		return
	}
	state.sendOption(tnWONT, input)
}

// Client offers to do something. Client side echo and line mode are fine.
func (state *tnState) handleWILL(input byte) {
	switch input {
	case tnOptionSGA, tnOptionBinary, tnOptionLINE:
		state.sendOption(tnDO, input)
	default:
		state.sendOption(tnDONT, input)
	}
}

// Strip protocol from input and return any completed lines.
func (state *tnState) receive(data []byte) []string {
	var lines []string
	for _, input := range data {
		switch state.state {
		case tnStateData:
			switch {
			case input == tnIAC:
				state.state = tnStateIAC
			case input == '\r' || (input == '\n' && !state.lastCR):
				lines = append(lines, string(state.line))
				state.line = state.line[:0]
			case input == 0x08 || input == 0x7f:
				if len(state.line) > 0 {
					state.line = state.line[:len(state.line)-1]
				}
			case input >= 0x20 && input < 0x7f && len(state.line) < maxLine:
				state.line = append(state.line, input)
			}
			state.lastCR = input == '\r'

		case tnStateIAC:
			state.state = tnStateData
			switch input {
			case tnIAC:
				// Escaped 255 is not valid command text.
			case tnIP, tnBRK:
				state.line = state.line[:0]
			case tnWILL:
				state.state = tnStateWILL
			case tnWONT:
				state.state = tnStateWONT
			case tnDO:
				state.state = tnStateDO
			case tnDONT:
				state.state = tnStateDONT
			case tnSB:
				state.state = tnStateSB
			}

		case tnStateWILL:
			state.handleWILL(input)
			state.state = tnStateData

		case tnStateWONT:
			state.sendOption(tnDONT, input)
			state.state = tnStateData

		case tnStateDO:
			state.handleDO(input)
			state.state = tnStateData

		case tnStateDONT:
			state.sendOption(tnWONT, input)
			state.state = tnStateData

		case tnStateSB:
			if input == tnIAC {
				state.state = tnStateSBIAC
			}

		case tnStateSBIAC:
			if input == tnSE {
				state.state = tnStateData
			} else {
				state.state = tnStateSB
			}
		}
	}
	return lines
}

// Network virtual terminal wants CR LF line ends.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(data []byte) (int, error) {
	_, err := c.w.Write(bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// Handle client connection until quit or connection closes.
func handleClient(conn net.Conn, core *core.Core) {
	defer conn.Close()
	state := tnState{state: tnStateData, w: conn}
	out := crlfWriter{w: conn}
	buffer := make([]byte, 1024)

	fmt.Fprint(out, prompt)
	for {
		num, err := conn.Read(buffer)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("Monitor read error: " + err.Error())
			}
			return
		}
		for _, text := range state.receive(buffer[:num]) {
			quit, err := parser.Execute(out, text, core)
			if err != nil {
				fmt.Fprintln(out, "Error: "+err.Error())
			}
			if quit {
				return
			}
			fmt.Fprint(out, prompt)
		}
	}
}
