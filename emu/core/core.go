/*
 * PCRTC - Simulation goroutine owning the RTC.
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
   All devices are owned by one goroutine. Everything else talks to them
   by sending packets on the master channel, so the devices never need
   locks. Real time ticks from the timer move virtual time forward while
   the simulation is running.
*/

package core

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcornwell/pcrtc/config/rtcconfig"
	"github.com/rcornwell/pcrtc/emu/clock"
	"github.com/rcornwell/pcrtc/emu/event"
	"github.com/rcornwell/pcrtc/emu/iobus"
	"github.com/rcornwell/pcrtc/emu/master"
	"github.com/rcornwell/pcrtc/emu/models"
	"github.com/rcornwell/pcrtc/emu/pic"
	"github.com/rcornwell/pcrtc/emu/rtc"
	"github.com/rcornwell/pcrtc/emu/timer"
)

// Returned by Request once the simulation has stopped.
var ErrStopped = errors.New("simulation stopped")

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running atomic.Bool   // Indicate when virtual time follows real time.
	Master  chan master.Packet
	events  *event.EventList
	bus     *iobus.Bus
	pic     *pic.PIC
	clock   *clock.Clock
	rtc     *rtc.RTC
	store   rtc.Store
	model   models.Model
	port    uint16   // Base I/O port of RTC.
	sync    bool     // Passive clock sync.
	debug   []string // Debug options given to each new RTC.
}

// Create simulation for the configured machine, the image is loaded
// from store.
func NewCore(masterChannel chan master.Packet, settings rtcconfig.Settings, store rtc.Store) (*Core, error) {
	model, err := models.Lookup(settings.Machine)
	if err != nil {
		return nil, err
	}
	core := &Core{
		Master: masterChannel,
		done:   make(chan struct{}),
		events: event.NewEventList(),
		bus:    iobus.NewBus(),
		pic:    pic.NewPIC(),
		clock:  clock.NewClock(settings.Sync, time.Now),
		store:  store,
		port:   settings.Port,
		sync:   settings.Sync,
		debug:  settings.Debug,
	}
	core.pic.OnRaise(func(irq int) {
		slog.Debug("Interrupt raised", "irq", irq)
	})
	if err := core.attach(model); err != nil {
		return nil, err
	}
	return core, nil
}

// Create RTC for model and put it on the bus.
func (core *Core) attach(model models.Model) error {
	r := rtc.New(core.events, core.pic, core.clock, rtc.Config{IRQ: model.IRQ, Sync: core.sync})
	for _, opt := range core.debug {
		if err := r.Debug(opt); err != nil {
			return err
		}
	}
	if err := core.bus.Register(core.port, 2, r); err != nil {
		return err
	}
	// A bad image still leaves a working chip.
	if err := r.Attach(core.store, model.Key, model.Mask); err != nil {
		slog.Error(err.Error())
	}
	core.rtc = r
	core.model = model
	slog.Info("RTC attached", "machine", model.Name, "key", model.Key, "irq", model.IRQ)
	return nil
}

// Save image and remove RTC from the bus.
func (core *Core) detach() error {
	if core.rtc == nil {
		return nil
	}
	err := core.rtc.Detach()
	core.bus.Unregister(core.port, 2)
	core.pic.Deassert(core.rtc.IRQ())
	core.rtc = nil
	return err
}

// Start simulation goroutine.
func (core *Core) Start() {
	core.wg.Add(1)
	go core.run()
}

func (core *Core) run() {
	defer core.wg.Done()
	for {
		select {
		case <-core.done:
			if err := core.detach(); err != nil {
				slog.Error(err.Error())
			}
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		}
	}
}

// Stop a running simulation, the image is saved.
func (core *Core) Stop() {
	slog.Info("Shutting down RTC")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for RTC to finish.")
		return
	}
}

// Return true if virtual time is following real time.
func (core *Core) IsRunning() bool {
	return core.running.Load()
}

// Let virtual time run.
func (core *Core) SendStart() {
	core.Request(master.Packet{Msg: master.Start})
}

// Freeze virtual time.
func (core *Core) SendStop() {
	core.Request(master.Packet{Msg: master.Stop})
}

// Send packet and wait for answer.
func (core *Core) Request(packet master.Packet) master.Reply {
	packet.Reply = make(chan master.Reply, 1)
	select {
	case core.Master <- packet:
	case <-core.done:
		return master.Reply{Err: ErrStopped}
	}
	select {
	case reply := <-packet.Reply:
		return reply
	case <-core.done:
		return master.Reply{Err: ErrStopped}
	}
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(packet master.Packet) {
	var reply master.Reply
	switch packet.Msg {
	case master.TimeClock:
		if core.running.Load() {
			core.events.Advance(int(timer.Interval))
		}
	case master.Start:
		core.running.Store(true)
	case master.Stop:
		core.running.Store(false)
	case master.Advance:
		if packet.Time < 0 {
			reply.Err = fmt.Errorf("can't advance by negative time %d", packet.Time)
			break
		}
		core.events.Advance(packet.Time)
	case master.PortIn:
		reply.Value = core.bus.In(packet.Port)
	case master.PortOut:
		core.bus.Out(packet.Port, packet.Data)
	case master.Examine:
		reply.Value, reply.Err = core.examine(packet.Addr)
	case master.Deposit:
		reply.Err = core.deposit(packet.Addr, packet.Data)
	case master.Show:
		reply.Text = core.show()
	case master.Save:
		if core.rtc != nil {
			reply.Err = core.rtc.Save()
		}
	case master.SelectModel:
		reply.Err = core.selectModel(packet.Name)
	case master.Debug:
		reply.Err = core.setDebug(packet.Name)
	default:
		reply.Err = fmt.Errorf("unknown message %d", packet.Msg)
	}
	packet.Answer(reply)
}

// Read register without side effects.
func (core *Core) examine(addr uint8) (uint8, error) {
	if core.rtc == nil {
		return 0, errors.New("no RTC attached")
	}
	if addr > core.rtc.Mask() {
		return 0, fmt.Errorf("register %02x out of range %02x", addr, core.rtc.Mask())
	}
	return core.rtc.Peek(addr), nil
}

// Write register the same way the guest would. This moves the latch.
func (core *Core) deposit(addr, value uint8) error {
	if core.rtc == nil {
		return errors.New("no RTC attached")
	}
	if addr > core.rtc.Mask() {
		return fmt.Errorf("register %02x out of range %02x", addr, core.rtc.Mask())
	}
	core.bus.Out(core.port, addr)
	core.bus.Out(core.port+1, value)
	return nil
}

// Switch to a new machine. The old image is saved under its own key.
func (core *Core) selectModel(name string) error {
	model, err := models.Lookup(name)
	if err != nil {
		return err
	}
	if err := core.detach(); err != nil {
		slog.Error(err.Error())
	}
	return core.attach(model)
}

func (core *Core) setDebug(opt string) error {
	if core.rtc != nil {
		if err := core.rtc.Debug(opt); err != nil {
			return err
		}
	}
	core.debug = append(core.debug, strings.ToUpper(opt))
	return nil
}

func (core *Core) show() string {
	var str strings.Builder
	state := "stopped"
	if core.running.Load() {
		state = "running"
	}
	fmt.Fprintf(&str, "Machine: %s port=%04x %s\n", core.model.Name, core.port, state)
	fmt.Fprintf(&str, "Time: virtual=%dns clock=%s irq=%04x\n", core.events.Now(),
		core.clock.Now().Format(time.DateTime), core.pic.Pending())
	if core.rtc != nil {
		str.WriteString(core.rtc.Show())
	}
	return str.String()
}
