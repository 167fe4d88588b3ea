/*
 * PCRTC - Main program.
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

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/pcrtc/command/reader"
	config "github.com/rcornwell/pcrtc/config/configparser"
	"github.com/rcornwell/pcrtc/config/rtcconfig"
	core "github.com/rcornwell/pcrtc/emu/core"
	master "github.com/rcornwell/pcrtc/emu/master"
	"github.com/rcornwell/pcrtc/emu/nvstore"
	"github.com/rcornwell/pcrtc/emu/timer"
	"github.com/rcornwell/pcrtc/util/debug"
	"github.com/rcornwell/pcrtc/telnet"
	logger "github.com/rcornwell/pcrtc/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "pcrtc.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optMachine := getopt.StringLong("machine", 'm', "", "Host machine model")
	optSync := getopt.BoolLong("sync", 's', "Follow host time")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("Unable to create log file: " + err.Error())
			os.Exit(1)
		}
		defer file.Close()
		logFile = file
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	Logger.Info("PCRTC Started")

	// Missing default configuration just means defaults.
	err := config.LoadConfigFile(*optConfig)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || getopt.IsSet("config") {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		Logger.Info("No configuration file, using defaults", "file", *optConfig)
	}

	settings := rtcconfig.Get()
	if *optMachine != "" {
		settings.Machine = *optMachine
	}
	if *optSync {
		settings.Sync = true
	}

	masterChannel := make(chan master.Packet)
	rtcCore, err := core.NewCore(masterChannel, settings, nvstore.NewFileStore(settings.NVRDir))
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	// Start main emulator, virtual time follows real time.
	rtcCore.Start()
	ticker := timer.NewTimer(masterChannel)
	ticker.Start()
	rtcCore.SendStart()

	// Start remote monitor.
	var monitor *telnet.Server
	if settings.Monitor != "" {
		monitor, err = telnet.Start(settings.Monitor, rtcCore)
		if err != nil {
			Logger.Error(err.Error())
			ticker.Shutdown()
			rtcCore.Stop()
			os.Exit(1)
		}
	}

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(rtcCore)
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	if monitor != nil {
		monitor.Stop()
	}
	ticker.Shutdown()
	rtcCore.Stop()
	if err := debug.Close(); err != nil {
		Logger.Error(err.Error())
	}
	Logger.Info("PCRTC stopped.")
}
