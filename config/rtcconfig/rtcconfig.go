/*
 * PCRTC - RTC configuration keywords.
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

package rtcconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	config "github.com/rcornwell/pcrtc/config/configparser"
	"github.com/rcornwell/pcrtc/emu/models"
)

// Settings collected from the configuration file.
type Settings struct {
	Machine string   // Host machine model.
	NVRDir  string   // Directory holding images.
	Sync    bool     // Follow host time.
	Port    uint16   // Base I/O port.
	Debug   []string // RTC debug options.
	Monitor string   // Address for remote monitor, empty for none.
}

var settings = Default()

// Return settings before any configuration.
func Default() Settings {
	return Settings{Machine: "ibmat", NVRDir: "nvr", Port: 0x70}
}

// Return current settings.
func Get() Settings {
	s := settings
	s.Debug = append([]string(nil), settings.Debug...)
	return s
}

// Restore defaults.
func Reset() {
	settings = Default()
}

// register keywords on initialize.
func init() {
	config.RegisterOption("MACHINE", setMachine)
	config.RegisterOption("NVRDIR", setDir)
	config.RegisterSwitch("SYNC", setSync)
	config.RegisterOption("PORT", setPort)
	config.RegisterOptions("DEBUG", setDebug)
	config.RegisterOption("MONITOR", setMonitor)
}

func setMachine(name string, _ []config.Option) error {
	model, err := models.Lookup(name)
	if err != nil {
		return err
	}
	settings.Machine = model.Name
	return nil
}

func setDir(dir string, _ []config.Option) error {
	settings.NVRDir = dir
	return nil
}

func setSync(_ string, _ []config.Option) error {
	settings.Sync = true
	return nil
}

// Port is given in hex and must be even.
func setPort(value string, _ []config.Option) error {
	port, err := strconv.ParseUint(value, 16, 16)
	if err != nil {
		return fmt.Errorf("port must be a hex number: %s", value)
	}
	if port&1 != 0 {
		return fmt.Errorf("port must be even: %s", value)
	}
	settings.Port = uint16(port)
	return nil
}

// Monitor takes a port number or host:port.
func setMonitor(address string, _ []config.Option) error {
	if !strings.Contains(address, ":") {
		if _, err := strconv.ParseUint(address, 10, 16); err != nil {
			return fmt.Errorf("monitor port must be a number: %s", address)
		}
		address = ":" + address
	}
	settings.Monitor = address
	return nil
}

func setDebug(device string, options []config.Option) error {
	if strings.ToUpper(device) != "RTC" {
		return errors.New("debug option invalid: " + device)
	}
	if len(options) == 0 {
		return errors.New("debug RTC requires options")
	}
	for _, opt := range options {
		if opt.EqualOpt != "" {
			return errors.New("debug option can't have equals: " + opt.Name)
		}
		settings.Debug = append(settings.Debug, strings.ToUpper(opt.Name))
		for _, value := range opt.Value {
			settings.Debug = append(settings.Debug, strings.ToUpper(value))
		}
	}
	return nil
}
