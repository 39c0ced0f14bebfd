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

package simulation

import (
	"time"

	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/logger"
	"github.com/jetsetilly/iecserial/trace"
)

// Device timing. These are typical values for a real device and are all
// comfortably inside the limits the controller allows.
const (
	// how long a listener waits for the first bit before deciding that the
	// talker is signalling EOI. also how long the listener holds DATA to
	// acknowledge it
	deviceEOIDetect = 200 * time.Microsecond
	deviceEOIAck    = 60 * time.Microsecond

	// talker timing
	deviceTalkerPrepare  = 60 * time.Microsecond
	deviceNonEOIResponse = 40 * time.Microsecond
	deviceEOIResponse    = 30 * time.Microsecond
	deviceBitSetup       = 35 * time.Microsecond
	deviceBitValid       = 60 * time.Microsecond
	deviceBetweenBytes   = 100 * time.Microsecond
	deviceFrameHandshake = 1000 * time.Microsecond
)

type deviceState int

const (
	deviceIdle deviceState = iota

	// listener states
	deviceWaitTalkerReady
	deviceNotReady
	deviceWaitBitStart
	deviceEOIAcknowledge
	deviceReceiveBits
	deviceWaitFrameEnd

	// talker states
	deviceTurnaround
	deviceTalkerHold
	deviceWaitListenerReady
	deviceWaitEOIAck
	deviceWaitEOIAckEnd
	deviceTalkerResponse
	deviceSendBits
	deviceWaitFrameAck
	deviceTalkDone
)

func (s deviceState) String() string {
	switch s {
	case deviceIdle:
		return "idle"
	case deviceWaitTalkerReady:
		return "waiting for talker"
	case deviceNotReady:
		return "not ready"
	case deviceWaitBitStart:
		return "waiting for first bit"
	case deviceEOIAcknowledge:
		return "acknowledging EOI"
	case deviceReceiveBits:
		return "receiving bits"
	case deviceWaitFrameEnd:
		return "waiting for end of frame"
	case deviceTurnaround:
		return "turnaround"
	case deviceTalkerHold:
		return "holding CLK"
	case deviceWaitListenerReady:
		return "waiting for listener"
	case deviceWaitEOIAck:
		return "waiting for EOI acknowledgement"
	case deviceWaitEOIAckEnd:
		return "waiting for end of EOI acknowledgement"
	case deviceTalkerResponse:
		return "talker response"
	case deviceSendBits:
		return "sending bits"
	case deviceWaitFrameAck:
		return "waiting for frame acknowledgement"
	case deviceTalkDone:
		return "talk done"
	}
	return "unknown"
}

// Verbose logging of every command and data byte seen by a simulated
// device. Off by default.
var Verbose logger.Toggle

// NoSecondary is the value of Device.Secondary when the most recent command
// to the device did not include a secondary address.
const NoSecondary = -1

// Device is a simulated IEC peripheral.
//
// Device implements the Peripheral interface.
type Device struct {
	port *Port

	// primary address of the device
	Primary uint8

	Listening bool
	Talking   bool
	Secondary int

	// each slice is the sequence of command bytes received during one
	// period of ATN. includes commands that were not addressed to the
	// device
	Commands [][]uint8

	// data bytes received while listening
	Received []uint8

	// indexes into Received of the bytes that came with EOI
	EOIAt []int

	// number of times the RST line has been asserted
	Resets int

	// the device will not acknowledge the frame of the data byte at this
	// index. the byte is not added to Received. a negative value means that
	// every frame is acknowledged
	WithholdAck int

	// the device never takes the CLK line after a talk command
	IgnoreTurnaround bool

	// the device notices EOI but never acknowledges it
	IgnoreEOI bool

	// when talking, the device stops after sending this many bits of a byte
	// and leaves CLK released. a negative value means the device never stops
	Stall int

	// how long the device takes to become ready for data after the talker
	// is ready to send
	Busy time.Duration

	// the data sent when the device is commanded to talk
	payload []uint8
	sent    int

	state    deviceState
	deadline time.Duration

	atn  trace.Trace
	clk  trace.Trace
	data trace.Trace
	rst  trace.Trace

	// true if the most recent primary address was for this device
	addressed bool

	// commands in the current period of ATN
	transaction []uint8

	underATN bool
	eoi      bool
	eoiAcked bool
	bits     uint8
	bitCt    int
	bitPhase int

	// count of data bytes seen while listening
	frames int
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(primary uint8) *Device {
	return &Device{
		Primary:     primary,
		Secondary:   NoSecondary,
		WithholdAck: -1,
		Stall:       -1,
		atn:         trace.NewTrace("ATN"),
		clk:         trace.NewTrace("CLK"),
		data:        trace.NewTrace("DATA"),
		rst:         trace.NewTrace("RST"),
	}
}

// Plumb implements the Peripheral interface.
func (dev *Device) Plumb(p *Port) {
	dev.port = p
}

// Queue data to be sent the next time the device talks. The final byte is
// sent with EOI.
func (dev *Device) Queue(data []uint8) {
	dev.payload = append(dev.payload[:0], data...)
	dev.sent = 0
}

// State returns a description of what the device is doing.
func (dev *Device) State() string {
	return dev.state.String()
}

// Step implements the Peripheral interface.
func (dev *Device) Step() {
	dev.atn.Tick(dev.port.Released(iec.ATN))
	dev.clk.Tick(dev.port.Released(iec.CLK))
	dev.data.Tick(dev.port.Released(iec.DATA))
	dev.rst.Tick(dev.port.Released(iec.RST))

	if dev.rst.Falling() {
		dev.reset()
		return
	}

	if dev.atn.Falling() {
		dev.attention()
		return
	}

	if dev.atn.Rising() {
		dev.endAttention()
		return
	}

	if dev.state < deviceTurnaround {
		dev.listen()
	} else {
		dev.talk()
	}
}

func (dev *Device) reset() {
	dev.port.Release(iec.AllLines)
	dev.Listening = false
	dev.Talking = false
	dev.Secondary = NoSecondary
	dev.addressed = false
	dev.underATN = false
	dev.state = deviceIdle
	dev.Resets++
	logger.Logf(logger.Allow, "simulation", "device %d: reset", dev.Primary)
}

// every device on the bus responds to ATN whatever it is doing.
func (dev *Device) attention() {
	dev.port.Release(iec.CLK)
	dev.port.Assert(iec.DATA)
	dev.underATN = true
	dev.transaction = nil
	dev.state = deviceWaitTalkerReady
}

func (dev *Device) endAttention() {
	dev.underATN = false
	if len(dev.transaction) > 0 {
		dev.Commands = append(dev.Commands, dev.transaction)
		dev.transaction = nil
	}

	switch {
	case dev.Talking:
		dev.state = deviceTurnaround
	case dev.Listening:
		dev.port.Assert(iec.DATA)
		dev.state = deviceWaitTalkerReady
	default:
		dev.port.Release(iec.CLK | iec.DATA)
		dev.state = deviceIdle
	}
}

func (dev *Device) readyForData() {
	dev.port.Release(iec.DATA)
	dev.deadline = dev.port.Now() + deviceEOIDetect
	dev.eoi = false
	dev.eoiAcked = false
	dev.state = deviceWaitBitStart
}

func (dev *Device) listen() {
	now := dev.port.Now()

	switch dev.state {
	case deviceIdle:

	case deviceWaitTalkerReady:
		if dev.clk.Hi() {
			if dev.Busy > 0 {
				dev.deadline = now + dev.Busy
				dev.state = deviceNotReady
			} else {
				dev.readyForData()
			}
		}

	case deviceNotReady:
		if now >= dev.deadline {
			dev.readyForData()
		}

	case deviceWaitBitStart:
		if dev.clk.Lo() {
			dev.bits = 0
			dev.bitCt = 0
			dev.state = deviceReceiveBits
		} else if !dev.eoiAcked && now >= dev.deadline {
			dev.eoi = true
			if dev.IgnoreEOI {
				dev.eoiAcked = true
				logger.Logf(logger.Allow, "simulation", "device %d: ignoring EOI", dev.Primary)
				return
			}
			dev.port.Assert(iec.DATA)
			dev.deadline = now + deviceEOIAck
			dev.state = deviceEOIAcknowledge
		}

	case deviceEOIAcknowledge:
		if now >= dev.deadline {
			dev.port.Release(iec.DATA)
			dev.eoiAcked = true
			dev.state = deviceWaitBitStart
		}

	case deviceReceiveBits:
		if dev.clk.Rising() {
			if dev.data.Hi() {
				dev.bits |= 0x01 << dev.bitCt
			}
			dev.bitCt++
			if dev.bitCt == 8 {
				dev.state = deviceWaitFrameEnd
			}
		}

	case deviceWaitFrameEnd:
		if dev.clk.Lo() {
			dev.frame(dev.bits)
			dev.state = deviceWaitTalkerReady
		}
	}
}

// frame is called at the end of every byte received.
func (dev *Device) frame(d uint8) {
	if dev.underATN {
		dev.port.Assert(iec.DATA)
		dev.transaction = append(dev.transaction, d)
		dev.command(d)
		return
	}

	if !dev.Listening {
		return
	}

	if dev.frames == dev.WithholdAck {
		dev.frames++
		logger.Logf(logger.Allow, "simulation", "device %d: withholding acknowledgement of 0x%02x", dev.Primary, d)
		return
	}
	dev.frames++

	dev.port.Assert(iec.DATA)
	if dev.eoi {
		dev.EOIAt = append(dev.EOIAt, len(dev.Received))
	}
	dev.Received = append(dev.Received, d)
	logger.Logf(&Verbose, "simulation", "device %d: received 0x%02x (eoi %v)", dev.Primary, d, dev.eoi)
}

func (dev *Device) command(d uint8) {
	logger.Logf(&Verbose, "simulation", "device %d: command 0x%02x", dev.Primary, d)

	switch {
	case d == iec.CmdUnlisten:
		dev.Listening = false
		dev.addressed = false
	case d == iec.CmdUntalk:
		dev.Talking = false
		dev.addressed = false
	case d&0xe0 == iec.CmdListen:
		dev.addressed = d&0x1f == dev.Primary
		if dev.addressed {
			dev.Listening = true
			dev.Secondary = NoSecondary
		}
	case d&0xe0 == iec.CmdTalk:
		dev.addressed = d&0x1f == dev.Primary
		dev.Talking = dev.addressed
		if dev.addressed {
			dev.Secondary = NoSecondary
			dev.sent = 0
		}
	case d&0xe0 == iec.CmdSecondary:
		if dev.addressed {
			dev.Secondary = int(d & 0x1f)
		}
	}
}

func (dev *Device) talk() {
	now := dev.port.Now()

	switch dev.state {
	case deviceTurnaround:
		if dev.IgnoreTurnaround {
			return
		}
		if dev.clk.Hi() {
			dev.port.Release(iec.DATA)
			dev.port.Assert(iec.CLK)
			dev.deadline = now + deviceTalkerPrepare
			dev.state = deviceTalkerHold
		}

	case deviceTalkerHold:
		if now >= dev.deadline {
			if dev.sent < len(dev.payload) {
				dev.port.Release(iec.CLK)
				dev.state = deviceWaitListenerReady
			} else {
				dev.state = deviceTalkDone
			}
		}

	case deviceWaitListenerReady:
		if dev.data.Hi() {
			if dev.sent == len(dev.payload)-1 {
				dev.state = deviceWaitEOIAck
			} else {
				dev.deadline = now + deviceNonEOIResponse
				dev.state = deviceTalkerResponse
			}
		}

	case deviceWaitEOIAck:
		if dev.data.Lo() {
			dev.state = deviceWaitEOIAckEnd
		}

	case deviceWaitEOIAckEnd:
		if dev.data.Hi() {
			dev.deadline = now + deviceEOIResponse
			dev.state = deviceTalkerResponse
		}

	case deviceTalkerResponse:
		if now >= dev.deadline {
			dev.bits = dev.payload[dev.sent]
			dev.bitCt = 0
			dev.bitPhase = 0
			dev.state = deviceSendBits
		}

	case deviceSendBits:
		if now < dev.deadline {
			return
		}
		switch dev.bitPhase {
		case 0:
			dev.port.Assert(iec.CLK)
			dev.deadline = now + deviceBitSetup
			dev.bitPhase = 1
		case 1:
			if dev.bits&0x01 == 0x01 {
				dev.port.Release(iec.DATA)
			} else {
				dev.port.Assert(iec.DATA)
			}
			dev.bits >>= 1
			dev.deadline = now + deviceBitSetup
			dev.bitPhase = 2
		case 2:
			dev.port.Release(iec.CLK)
			dev.deadline = now + deviceBitValid
			dev.bitPhase = 3
		case 3:
			dev.bitCt++
			if dev.bitCt == dev.Stall {
				logger.Logf(logger.Allow, "simulation", "device %d: stalled after %d bits", dev.Primary, dev.bitCt)
				dev.state = deviceTalkDone
				return
			}
			if dev.bitCt < 8 {
				dev.port.Assert(iec.CLK)
				dev.deadline = now + deviceBitSetup
				dev.bitPhase = 1
				return
			}
			dev.port.Release(iec.DATA)
			dev.port.Assert(iec.CLK)
			dev.deadline = now + deviceFrameHandshake
			dev.state = deviceWaitFrameAck
		}

	case deviceWaitFrameAck:
		if dev.data.Lo() {
			dev.sent++
			if dev.sent >= len(dev.payload) {
				dev.state = deviceTalkDone
			} else {
				dev.deadline = now + deviceBetweenBytes
				dev.state = deviceTalkerHold
			}
		} else if now >= dev.deadline {
			logger.Logf(logger.Allow, "simulation", "device %d: frame not acknowledged by listener", dev.Primary)
			dev.state = deviceTalkDone
		}

	case deviceTalkDone:
	}
}
