// This file is part of IECserial.
//
// IECserial is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// IECserial is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with IECserial.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/hardware/gpiomem"
	"github.com/jetsetilly/iecserial/hardware/preferences"
	"github.com/jetsetilly/iecserial/hardware/simulation"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/logger"
	"github.com/jetsetilly/iecserial/modalflag"
	"github.com/jetsetilly/iecserial/paths"
	"github.com/jetsetilly/iecserial/prefs"
	"github.com/jetsetilly/iecserial/session"
	"github.com/jetsetilly/iecserial/statsview"
	"github.com/jetsetilly/iecserial/trace"
	"github.com/jetsetilly/iecserial/transport"
	"github.com/jetsetilly/iecserial/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// function to call if the program is interrupted. used to leave the bus
	// lines released when the user presses ctrl-c during a transfer.
	//
	// takes a func() argument. nil removes the function.
	reqOnInterrupt stateReq = "ONINTERRUPT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	var onInterrupt func()

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			if onInterrupt != nil {
				onInterrupt()
			}
			exitVal = 30
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqOnInterrupt:
				if state.args == nil {
					onInterrupt = nil
				} else if f, ok := state.args.(func()); ok {
					onInterrupt = f
				} else {
					panic(fmt.Sprintf("cannot convert %s arguments into func()", reqOnInterrupt))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("PRINT", "READ", "RESET", "SIM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "PRINT":
		err = printFile(md, sync)

	case "READ":
		err = readDevice(md, sync)

	case "RESET":
		err = resetBus(md, sync)

	case "SIM":
		err = simulate(md, sync)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to every mode that talks to a bus.
type common struct {
	backend   *string
	device    *int
	secondary *int
	log       *bool
	stats     *bool
	prefs     *string
	wav       *string
}

// the values of the -device and -secondary flags that mean the value should
// come from the preferences file.
const (
	deviceFromPrefs    = -1
	secondaryFromPrefs = -2
)

func addCommon(md *modalflag.Modes) *common {
	return &common{
		backend:   md.AddChoice("backend", "GPIOMEM", []string{"GPIOMEM", "SIM"}, "bus backend"),
		device:    md.AddIntRange("device", deviceFromPrefs, 0, iec.MaxPrimary, "primary address of device"),
		secondary: md.AddIntRange("secondary", secondaryFromPrefs, session.NoSecondary, iec.MaxSecondary, "secondary address of device (-1 for none)"),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
		stats:     md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address)),
		prefs:     md.AddString("prefs", "", "preferences for this run: \"key::value; ...\""),
		wav:       md.AddString("wav", "", fmt.Sprintf("write line activity to wav file (%s for a unique name)", autoName)),
	}
}

// connection is an open bus and everything needed to close it down.
type connection struct {
	bus    *iec.Bus
	target session.Target
	prefs  *preferences.Preferences

	// sim and dev are nil unless the backend is SIM
	sim *simulation.Bus
	dev *simulation.Device

	// rec is nil unless the backend is GPIOMEM and a wav file is requested
	rec *trace.Recorder

	// gpio is nil unless the backend is GPIOMEM. the lines are released
	// directly on interrupt, without waiting for the bus critical section
	gpio *gpiomem.GPIO

	wav string

	stats *statsview.Server
}

func connect(md *modalflag.Modes, c *common, sync *mainSync) (*connection, error) {
	if *c.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	var stats *statsview.Server
	if *c.stats {
		stats = statsview.Launch(os.Stdout)
	}

	if *c.prefs != "" {
		if err := prefs.PushCommandLineStack(*c.prefs); err != nil {
			prefs.PopCommandLineStack()
			return nil, err
		}
	}

	p, err := preferences.NewPreferences()

	if *c.prefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "iecserial", "unknown preferences: %s", unused)
		}
	}

	if err != nil {
		return nil, err
	}

	target := p.Target()
	if *c.device != deviceFromPrefs {
		target.Device = uint8(*c.device)
	}
	if *c.secondary != secondaryFromPrefs {
		target.Secondary = *c.secondary
	}

	conn := &connection{
		target: target,
		prefs:  p,
		wav:    outputName(*c.wav, md.Mode(), "wav"),
		stats:  stats,
	}

	switch *c.backend {
	case "GPIOMEM":
		// the bus timing relies on the goroutine not moving between threads
		// mid-transfer
		runtime.LockOSThread()

		conn.gpio, err = gpiomem.Open(p.GPIOMem.Get().(string), p.Pins())
		if err != nil {
			return nil, err
		}

		// ctrl-c must not leave a line asserted on the real bus. the bus
		// goroutine may be in the middle of an operation, possibly an
		// unbounded wait, so the lines are released without the bus critical
		// section. GPIO serialises its own register updates
		gpio := conn.gpio
		sync.state <- stateRequest{req: reqOnInterrupt, args: func() {
			gpio.Release(iec.AllLines)
		}}

		clk := iec.NewRealtime()
		if conn.wav != "" {
			conn.rec = trace.NewRecorder(conn.gpio, clk.Now)
			conn.bus = iec.NewBus(conn.rec, clk)
		} else {
			conn.bus = iec.NewBus(conn.gpio, clk)
		}

	case "SIM":
		conn.sim = simulation.NewBus()
		conn.dev = simulation.NewDevice(target.Device)
		conn.sim.Attach(conn.dev)
		conn.bus = iec.NewBus(conn.sim, conn.sim)
	}

	logger.Logf(logger.Allow, "iecserial", "%s backend. device %d", *c.backend, target.Device)

	return conn, nil
}

// close the connection, writing the wav file if one was requested. the
// first error encountered is returned.
func (conn *connection) close(sync *mainSync) error {
	conn.bus.Close()
	if conn.gpio != nil {
		sync.state <- stateRequest{req: reqOnInterrupt}
	}

	if conn.stats != nil {
		conn.stats.Stop()
	}

	var err error

	if conn.wav != "" {
		var l *trace.Log
		if conn.sim != nil {
			l = conn.sim.Log()
		} else if conn.rec != nil {
			l = conn.rec.Log()
		}
		if l != nil {
			err = writeWAV(conn.wav, l)
		}
	}

	if conn.gpio != nil {
		if cerr := conn.gpio.Close(); err == nil {
			err = cerr
		}
		runtime.UnlockOSThread()
	}

	return err
}

// the value of an output filename flag that asks for a unique filename.
const autoName = "AUTO"

// outputName returns the filename to use for the value of an output flag.
// The autoName value is replaced by a unique filename labelled with the
// mode.
func outputName(name string, mode string, ext string) string {
	if strings.ToUpper(strings.TrimSpace(name)) != autoName {
		return name
	}
	return paths.UniqueFilename(strings.ToLower(version.ApplicationName), strings.ToLower(mode), ext)
}

func writeWAV(filename string, l *trace.Log) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	return trace.WriteWAV(f, l, trace.DefaultSampleRate)
}

// open the input named on the command line. standard input is used if there
// is no argument.
func input(md *modalflag.Modes, baud int) (io.ReadCloser, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return transport.Open(transport.Stdin, baud)
	case 1:
		return transport.Open(md.GetArg(0), baud)
	}
	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

func printFile(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	baud := md.AddInt("baud", 0, "speed of serial input (0 for preference value)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	conn, err := connect(md, c, sync)
	if err != nil {
		return err
	}

	n, err := printInput(md, conn, *baud)
	if cerr := conn.close(sync); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d bytes sent to device %d\n", n, conn.target.Device)

	return nil
}

func printInput(md *modalflag.Modes, conn *connection, baud int) (int, error) {
	if baud == 0 {
		baud = conn.prefs.Baud.Get().(int)
	}

	src, err := input(md, baud)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	return session.Print(conn.bus, conn.target, src)
}

func readDevice(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	maxBytes := md.AddIntRange("max", 256, 0, 65536, "maximum number of bytes to read")
	reply := md.AddString("reply", "", "data queued by the simulated device (SIM backend only)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	conn, err := connect(md, c, sync)
	if err != nil {
		return err
	}

	if conn.dev != nil {
		conn.dev.Queue([]uint8(*reply))
	}

	s, err := session.Read(conn.bus, conn.target, *maxBytes)
	if cerr := conn.close(sync); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Println(strings.TrimRight(s, "\r"))

	return nil
}

func resetBus(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	conn, err := connect(md, c, sync)
	if err != nil {
		return err
	}

	conn.bus.Reset()

	return conn.close(sync)
}

func simulate(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	mv := md.AddString("memviz", "", fmt.Sprintf("write graphviz dot file of the simulated bus (%s for a unique name)", autoName))
	limit := md.AddDuration("limit", 10*time.Second, "limit on simulated time")
	verbose := md.AddBool("verbose", false, "log every byte seen by the simulated device (requires -log)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	*c.backend = "SIM"
	simulation.Verbose.Set(*verbose)

	conn, err := connect(md, c, sync)
	if err != nil {
		return err
	}

	conn.sim.SetLimit(*limit)

	n, err := simPrint(md, conn)
	if cerr := conn.close(sync); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d bytes sent to device %d\n", n, conn.target.Device)
	fmt.Printf("%s\n", conn.dev.Received)

	if *mv != "" {
		f, err := os.Create(outputName(*mv, md.Mode(), "dot"))
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, conn.sim)
	}

	return nil
}

// simPrint is printInput for the simulated bus. exceeding the time limit of
// the simulation is returned as an error.
func simPrint(md *modalflag.Modes, conn *connection) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && curated.Is(e, simulation.TimeLimitExceeded) {
				err = e
				return
			}
			panic(r)
		}
	}()
	return printInput(md, conn, transport.DefaultBaud)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Println(version.String())
	fmt.Println(version.Platform())

	return nil
}
