/*
 * PCRTC - Monitor commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	core "github.com/rcornwell/pcrtc/emu/core"
	"github.com/rcornwell/pcrtc/emu/master"
	"github.com/rcornwell/pcrtc/emu/rtc"
	"github.com/rcornwell/pcrtc/util/hex"
)

var cmdList = []cmd{
	{Name: "in", Min: 1, Process: portIn},
	{Name: "out", Min: 1, Process: portOut},
	{Name: "examine", Min: 1, Process: examine},
	{Name: "deposit", Min: 3, Process: deposit},
	{Name: "show", Min: 2, Process: show},
	{Name: "run", Min: 1, Process: run},
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "save", Min: 2, Process: save},
	{Name: "machine", Min: 1, Process: machine, Complete: machineComplete},
	{Name: "debug", Min: 3, Process: debugCmd, Complete: debugComplete},
	{Name: "quit", Min: 1, Process: quit},
}

// Read an I/O port.
func portIn(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command In")
	port, err := line.getHexLimit("port", 0xffff)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.PortIn, Port: uint16(port)})
	if reply.Err != nil {
		return false, reply.Err
	}
	fmt.Fprintf(line.out, "%04x: %02x\n", port, reply.Value)
	return false, nil
}

// Write an I/O port.
func portOut(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Out")
	port, err := line.getHexLimit("port", 0xffff)
	if err != nil {
		return false, err
	}
	value, err := line.getHexLimit("value", 0xff)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.PortOut, Port: uint16(port), Data: uint8(value)})
	return false, reply.Err
}

// Display registers, either one or a range start-end.
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	first, err := line.getHexLimit("register", rtc.Size-1)
	if err != nil {
		return false, err
	}
	last := first
	if line.peek() == '-' {
		line.pos++
		last, err = line.getHexLimit("register", rtc.Size-1)
		if err != nil {
			return false, err
		}
		if last < first {
			return false, errors.New("register range reversed")
		}
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}

	values := []byte{}
	for addr := first; addr <= last; addr++ {
		reply := core.Request(master.Packet{Msg: master.Examine, Addr: uint8(addr)})
		if reply.Err != nil {
			return false, reply.Err
		}
		values = append(values, reply.Value)
	}

	var str strings.Builder
	for i := 0; i < len(values); i += 16 {
		hex.FormatByte(&str, byte(int(first)+i))
		str.WriteString(": ")
		hex.FormatBytes(&str, true, values[i:min(i+16, len(values))])
		str.WriteByte('\n')
	}
	fmt.Fprint(line.out, str.String())
	return false, nil
}

// Write register through the ports.
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	addr, err := line.getHexLimit("register", rtc.Size-1)
	if err != nil {
		return false, err
	}
	value, err := line.getHexLimit("value", 0xff)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.Deposit, Addr: uint8(addr), Data: uint8(value)})
	return false, reply.Err
}

func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.Show})
	if reply.Err != nil {
		return false, reply.Err
	}
	fmt.Fprint(line.out, reply.Text)
	return false, nil
}

// Advance virtual time, run 250 or run 1s.
func run(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Run")
	arg := line.getArg()
	if arg == "" {
		return false, errors.New("run requires a time")
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	// Plain number is milliseconds.
	var duration time.Duration
	if ms, err := strconv.ParseUint(arg, 10, 32); err == nil {
		duration = time.Duration(ms) * time.Millisecond
	} else if duration, err = time.ParseDuration(arg); err != nil {
		return false, fmt.Errorf("invalid time: %s", arg)
	}
	if duration <= 0 {
		return false, fmt.Errorf("time must be positive: %s", arg)
	}
	reply := core.Request(master.Packet{Msg: master.Advance, Time: int(duration.Nanoseconds())})
	return false, reply.Err
}

// Let virtual time follow real time.
func start(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.SendStart()
	return false, nil
}

// Freeze virtual time.
func stop(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.SendStop()
	return false, nil
}

func save(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Save")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.Save})
	return false, reply.Err
}

// Switch host machine.
func machine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Machine")
	name := line.getArg()
	if name == "" {
		return false, errors.New("machine requires a name")
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	reply := core.Request(master.Packet{Msg: master.SelectModel, Name: name})
	return false, reply.Err
}

// Enable debug options, separated by commas.
func debugCmd(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Debug")
	arg := line.getArg()
	if arg == "" {
		return false, errors.New("debug requires options")
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	for _, opt := range strings.Split(arg, ",") {
		if opt == "" {
			continue
		}
		reply := core.Request(master.Packet{Msg: master.Debug, Name: opt})
		if reply.Err != nil {
			return false, reply.Err
		}
	}
	return false, nil
}

func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
