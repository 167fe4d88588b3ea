/*
 * PCRTC - I/O port bus
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

package iobus

import (
	"fmt"
	"log/slog"

	dev "github.com/rcornwell/pcrtc/emu/device"
)

// Bus maps I/O ports to devices.
type Bus struct {
	ports map[uint16]dev.PortDevice
}

func NewBus() *Bus {
	return &Bus{ports: make(map[uint16]dev.PortDevice)}
}

// Register device for count ports starting at base.
func (bus *Bus) Register(base uint16, count int, device dev.PortDevice) error {
	if device == nil {
		return fmt.Errorf("no device given for port %04x", base)
	}
	if count <= 0 || int(base)+count > 0x10000 {
		return fmt.Errorf("invalid port range %04x count %d", base, count)
	}
	for i := range count {
		port := base + uint16(i)
		if _, ok := bus.ports[port]; ok {
			return fmt.Errorf("port %04x already in use", port)
		}
	}
	for i := range count {
		bus.ports[base+uint16(i)] = device
	}
	return nil
}

// Remove whatever is mapped at count ports starting at base.
func (bus *Bus) Unregister(base uint16, count int) {
	for i := range count {
		delete(bus.ports, base+uint16(i))
	}
}

// Read from a port. Unmapped ports float high.
func (bus *Bus) In(port uint16) uint8 {
	device, ok := bus.ports[port]
	if !ok {
		slog.Debug("iobus: read from unmapped port", "port", fmt.Sprintf("%04x", port))
		return 0xff
	}
	return device.In(port)
}

// Write to a port. Writes to unmapped ports are dropped.
func (bus *Bus) Out(port uint16, value uint8) {
	device, ok := bus.ports[port]
	if !ok {
		slog.Debug("iobus: write to unmapped port", "port", fmt.Sprintf("%04x", port))
		return
	}
	device.Out(port, value)
}
