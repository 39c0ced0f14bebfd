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

package iec_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/hardware/simulation"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/test"
	"github.com/jetsetilly/iecserial/trace"
)

func newBus(devs ...*simulation.Device) (*iec.Bus, *simulation.Bus) {
	sim := simulation.NewBus()
	sim.SetLimit(2 * time.Second)
	for _, d := range devs {
		sim.Attach(d)
	}
	return iec.NewBus(sim, sim), sim
}

// dataFrames returns the decoded frames that were not sent under ATN.
func dataFrames(sim *simulation.Bus) []trace.Frame {
	var f []trace.Frame
	for _, d := range sim.Log().Decode() {
		if !d.ATN {
			f = append(f, d)
		}
	}
	return f
}

func TestListenSecondary(t *testing.T) {
	dev := simulation.NewDevice(8)
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.ListenSecondary(8, 2))
	test.ExpectSuccess(t, bus.IsOk())

	// both command bytes in one period of ATN
	test.DemandEquality(t, len(dev.Commands), 1)
	test.DemandEquality(t, len(dev.Commands[0]), 2)
	test.ExpectEquality(t, dev.Commands[0][0], uint8(0x28))
	test.ExpectEquality(t, dev.Commands[0][1], uint8(0x62))

	test.ExpectSuccess(t, dev.Listening)
	test.ExpectEquality(t, dev.Secondary, 2)

	test.ExpectEquality(t, len(sim.Log().Pulses(iec.ATN)), 1)
	test.ExpectEquality(t, sim.Controller()&iec.ATN, iec.NoLines)

	f := sim.Log().Decode()
	test.DemandEquality(t, len(f), 2)
	test.ExpectSuccess(t, f[0].ATN)
	test.ExpectSuccess(t, f[1].ATN)
	test.ExpectEquality(t, f[0].Data, uint8(0x28))
	test.ExpectEquality(t, f[1].Data, uint8(0x62))
}

func TestNoDevice(t *testing.T) {
	bus, sim := newBus()

	err := bus.Listen(4)
	test.ExpectSuccess(t, curated.Is(err, iec.NoDevice))
	test.ExpectEquality(t, bus.Status(), iec.StatusNoDevice)
	test.ExpectFailure(t, bus.IsOk())

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusNoDevice)

	// bus is left idle
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)
	test.ExpectEquality(t, sim.Controller(), iec.NoLines)

	// the controller waited for the full attention response time
	p := sim.Log().Pulses(iec.ATN)
	test.DemandEquality(t, len(p), 1)
	test.ExpectSuccess(t, p[0].Width >= iec.TimeAttentionResponse)
}

func TestTalkNoDevice(t *testing.T) {
	bus, _ := newBus()
	err := bus.TalkSecondary(8, 15)
	test.ExpectSuccess(t, curated.Is(err, iec.NoDevice))
	test.ExpectEquality(t, bus.Status(), iec.StatusNoDevice)
}

func TestSend(t *testing.T) {
	dev := simulation.NewDevice(4)
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))
	test.DemandSuccess(t, bus.SendString("HELLO", true))
	test.ExpectSuccess(t, bus.IsOk())
	test.DemandSuccess(t, bus.Unlisten())

	test.ExpectEquality(t, string(dev.Received), "HELLO")
	test.DemandEquality(t, len(dev.EOIAt), 1)
	test.ExpectEquality(t, dev.EOIAt[0], 4)
	test.ExpectFailure(t, dev.Listening)
}

func TestEOI(t *testing.T) {
	dev := simulation.NewDevice(4)
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))
	test.DemandSuccess(t, bus.Send(0x55, false))
	test.DemandSuccess(t, bus.Send(0x55, true))

	f := dataFrames(sim)
	test.DemandEquality(t, len(f), 2)

	// same bits but a longer wait before the first of them
	test.ExpectEquality(t, f[0].Data, f[1].Data)
	test.ExpectFailure(t, f[0].EOI)
	test.ExpectSuccess(t, f[1].EOI)
	test.ExpectSuccess(t, f[1].Setup > f[0].Setup)

	test.DemandEquality(t, len(dev.EOIAt), 1)
	test.ExpectEquality(t, dev.EOIAt[0], 1)
}

func TestEOITimeout(t *testing.T) {
	dev := simulation.NewDevice(4)
	dev.IgnoreEOI = true
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))

	err := bus.Send(0x41, true)
	test.ExpectSuccess(t, curated.Is(err, iec.Timeout))
	test.ExpectEquality(t, bus.Status(), iec.StatusTimeout)

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusTimeout)

	// the byte is still sent and acknowledged
	test.ExpectEquality(t, string(dev.Received), "A")
	test.DemandEquality(t, len(dev.EOIAt), 1)
	test.ExpectEquality(t, dev.EOIAt[0], 0)

	test.DemandSuccess(t, bus.Unlisten())
	test.ExpectSuccess(t, bus.IsOk())
}

func TestSendBytesEOIOnLastByte(t *testing.T) {
	dev := simulation.NewDevice(4)
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))
	test.DemandSuccess(t, bus.SendBytes([]uint8{0x01, 0x02, 0x03}, true))

	f := dataFrames(sim)
	test.DemandEquality(t, len(f), 3)
	test.ExpectFailure(t, f[0].EOI)
	test.ExpectFailure(t, f[1].EOI)
	test.ExpectSuccess(t, f[2].EOI)

	// no EOI at all
	sim.Log().Reset()
	test.DemandSuccess(t, bus.SendBytes([]uint8{0x04, 0x05}, false))
	for _, d := range dataFrames(sim) {
		test.ExpectFailure(t, d.EOI)
	}
	test.ExpectEquality(t, len(dev.EOIAt), 1)
}

func TestFramingError(t *testing.T) {
	dev := simulation.NewDevice(4)
	dev.WithholdAck = 1
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))

	err := bus.SendBytes([]uint8{0x01, 0x02, 0x03}, true)
	test.ExpectSuccess(t, curated.Is(err, iec.FramingError))
	test.ExpectEquality(t, bus.Status(), iec.StatusFramingError)

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusFramingError)

	// transfer stopped at the failing byte
	test.ExpectEquality(t, string(dev.Received), "\x01")
	f := dataFrames(sim)
	test.DemandEquality(t, len(f), 2)
	test.ExpectEquality(t, f[1].Data, uint8(0x02))
	test.ExpectFailure(t, f[1].EOI)

	// the next operation resets the status
	test.DemandSuccess(t, bus.Unlisten())
	test.ExpectSuccess(t, bus.IsOk())
}

func TestNotListening(t *testing.T) {
	// the device responds to attention but is not the one being addressed
	dev := simulation.NewDevice(8)
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Listen(9))
	test.ExpectFailure(t, dev.Listening)

	err := bus.Send(0x41, true)
	test.ExpectSuccess(t, curated.Is(err, iec.FramingError))
	test.ExpectEquality(t, bus.Status(), iec.StatusFramingError)
	test.ExpectEquality(t, len(dev.Received), 0)
}

func TestBitOrder(t *testing.T) {
	dev := simulation.NewDevice(4)
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))
	test.DemandSuccess(t, bus.Send(0b10110010, false))
	test.DemandEquality(t, len(dev.Received), 1)
	test.ExpectEquality(t, dev.Received[0], uint8(0b10110010))

	// every possible value
	data := make([]uint8, 256)
	for i := range data {
		data[i] = uint8(i)
	}
	sim.Log().Reset()
	test.DemandSuccess(t, bus.SendBytes(data, true))

	test.DemandEquality(t, len(dev.Received), 257)
	f := dataFrames(sim)
	test.DemandEquality(t, len(f), 256)
	for i := range data {
		test.ExpectEquality(t, dev.Received[i+1], data[i])
		test.ExpectEquality(t, f[i].Data, data[i])
	}
}

func TestBusyListener(t *testing.T) {
	dev := simulation.NewDevice(4)
	dev.Busy = 5 * time.Millisecond
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Listen(4))
	test.DemandSuccess(t, bus.SendString("AB", true))
	test.ExpectEquality(t, string(dev.Received), "AB")
}

func TestMultipleDevices(t *testing.T) {
	printer := simulation.NewDevice(4)
	drive := simulation.NewDevice(8)
	bus, _ := newBus(printer, drive)

	test.DemandSuccess(t, bus.Listen(8))
	test.ExpectFailure(t, printer.Listening)
	test.ExpectSuccess(t, drive.Listening)

	// both devices saw the command
	test.ExpectEquality(t, len(printer.Commands), 1)
	test.ExpectEquality(t, len(drive.Commands), 1)

	test.DemandSuccess(t, bus.SendString("X", true))
	test.ExpectEquality(t, string(drive.Received), "X")
	test.ExpectEquality(t, len(printer.Received), 0)
}

func TestTalk(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8("00, OK,00,00\r"))
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.TalkSecondary(8, 15))
	test.ExpectSuccess(t, dev.Talking)
	test.ExpectEquality(t, dev.Secondary, 15)

	s, err := bus.ReceiveString(64)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, "00, OK,00,00")

	test.DemandSuccess(t, bus.Untalk())
	test.ExpectFailure(t, dev.Talking)
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)
}

func TestReceive(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8{0xb2, 0x00, 0xff})
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))

	d, err := bus.Receive(16)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(d), 3)
	test.ExpectEquality(t, d[0], uint8(0xb2))
	test.ExpectEquality(t, d[1], uint8(0x00))
	test.ExpectEquality(t, d[2], uint8(0xff))

	test.DemandSuccess(t, bus.Untalk())
}

func TestReceiveByte(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8{0x41, 0x42})
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))

	d, eoi, err := bus.ReceiveByte()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0x41))
	test.ExpectFailure(t, eoi)

	d, eoi, err = bus.ReceiveByte()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0x42))
	test.ExpectSuccess(t, eoi)

	test.DemandSuccess(t, bus.Untalk())
}

func TestReceiveMax(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8("ABCDEF"))
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))

	d, err := bus.Receive(2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(d), "AB")

	// the device is interrupted mid-transfer
	test.DemandSuccess(t, bus.Untalk())
	test.ExpectFailure(t, dev.Talking)
}

func TestReceiveFraming(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8("AB"))
	dev.Stall = 8
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))

	// every bit arrives but the talker never ends the frame
	d, _, err := bus.ReceiveByte()
	test.ExpectSuccess(t, curated.Is(err, iec.ReceiveFraming))
	test.ExpectEquality(t, d, uint8(0x41))
	test.ExpectEquality(t, bus.Status(), iec.StatusFramingError)

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusFramingError)

	test.DemandSuccess(t, bus.Untalk())
	test.ExpectFailure(t, dev.Talking)
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)
}

func TestReceiveStall(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8("AB"))
	dev.Stall = 3
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))

	_, err := bus.Receive(4)
	test.ExpectSuccess(t, curated.Is(err, iec.Timeout))
	test.ExpectEquality(t, bus.Status(), iec.StatusTimeout)

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusTimeout)

	test.DemandSuccess(t, bus.Untalk())
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)
}

func TestReceiveInvalidLength(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.Queue([]uint8("AB"))
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Talk(8))
	edges := len(sim.Log().Edges)

	_, err := bus.Receive(-1)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidLength))
	_, err = bus.ReceiveString(-1)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidLength))

	_, ok := iec.StatusOf(err)
	test.ExpectFailure(t, ok)

	// rejected without touching the bus
	test.ExpectEquality(t, len(sim.Log().Edges), edges)

	test.DemandSuccess(t, bus.Untalk())
	test.ExpectFailure(t, dev.Talking)
}

func TestTurnaroundTimeout(t *testing.T) {
	dev := simulation.NewDevice(8)
	dev.IgnoreTurnaround = true
	bus, _ := newBus(dev)

	err := bus.Talk(8)
	test.ExpectSuccess(t, curated.Is(err, iec.TurnaroundTimeout))
	test.ExpectEquality(t, bus.Status(), iec.StatusTimeout)

	st, ok := iec.StatusOf(err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusTimeout)

	test.DemandSuccess(t, bus.Untalk())
}

func TestReset(t *testing.T) {
	dev := simulation.NewDevice(8)
	bus, sim := newBus(dev)

	bus.Reset()

	p := sim.Log().Pulses(iec.RST)
	test.DemandEquality(t, len(p), 1)
	test.ExpectSuccess(t, p[0].Width >= iec.TimeResetPulse)

	// every other line is released for the duration of the pulse
	test.ExpectEquality(t, sim.Log().LevelsAt(p[0].Start), iec.AllLines&^iec.RST)
	test.ExpectEquality(t, sim.Log().LevelsAt(p[0].Start+p[0].Width-time.Microsecond), iec.AllLines&^iec.RST)
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)
	test.ExpectEquality(t, dev.Resets, 1)

	// a listening device forgets that it was listening
	test.DemandSuccess(t, bus.Listen(8))
	test.ExpectSuccess(t, dev.Listening)
	bus.Reset()
	test.ExpectEquality(t, dev.Resets, 2)
	test.ExpectFailure(t, dev.Listening)
	test.ExpectEquality(t, sim.Levels(), iec.AllLines)

	// reset does not change the status
	test.ExpectSuccess(t, bus.IsOk())
}

func TestEmptyCommand(t *testing.T) {
	bus, sim := newBus(simulation.NewDevice(8))

	err := bus.Command()
	test.ExpectSuccess(t, curated.Is(err, iec.EmptyCommand))
	test.ExpectSuccess(t, bus.IsOk())
	test.ExpectEquality(t, len(sim.Log().Edges), 0)

	_, ok := iec.StatusOf(err)
	test.ExpectFailure(t, ok)
}

func TestCommand(t *testing.T) {
	dev := simulation.NewDevice(8)
	bus, _ := newBus(dev)

	test.DemandSuccess(t, bus.Command(iec.CmdListen|8, iec.CmdSecondary|1))
	test.ExpectSuccess(t, dev.Listening)
	test.ExpectEquality(t, dev.Secondary, 1)

	test.DemandSuccess(t, bus.Command(iec.CmdUnlisten))
	test.ExpectFailure(t, dev.Listening)
	test.ExpectEquality(t, len(dev.Commands), 2)
}

func TestInvalidAddress(t *testing.T) {
	bus, sim := newBus(simulation.NewDevice(8))

	err := bus.Listen(31)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidAddress))
	err = bus.ListenSecondary(8, 32)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidAddress))
	err = bus.Talk(40)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidAddress))
	err = bus.TalkSecondary(8, 0xff)
	test.ExpectSuccess(t, curated.Is(err, iec.InvalidAddress))

	_, ok := iec.StatusOf(err)
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, len(sim.Log().Edges), 0)
}

func TestClose(t *testing.T) {
	dev := simulation.NewDevice(8)
	bus, sim := newBus(dev)

	test.DemandSuccess(t, bus.Listen(8))
	test.ExpectInequality(t, sim.Controller(), iec.NoLines)

	bus.Close()
	test.ExpectEquality(t, sim.Controller(), iec.NoLines)
}

func TestStatusOf(t *testing.T) {
	st, ok := iec.StatusOf(nil)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusOk)

	st, ok = iec.StatusOf(curated.Errorf(iec.Timeout, "test"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusTimeout)

	// wrapped errors are found
	st, ok = iec.StatusOf(curated.Errorf("print: %v", curated.Errorf(iec.NoDevice)))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, st, iec.StatusNoDevice)
}

func TestStrings(t *testing.T) {
	test.ExpectEquality(t, iec.StatusFramingError.String(), "framing error")
	test.ExpectEquality(t, iec.Status(0x02).String(), "unknown status (0x02)")
	test.ExpectEquality(t, (iec.ATN | iec.DATA).String(), "ATN|DATA")
	test.ExpectEquality(t, iec.NoLines.String(), "none")
}
