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

package trace

import (
	"fmt"
	"time"

	"github.com/jetsetilly/iecserial/iec"
)

// Frame is a byte recovered from the record.
type Frame struct {
	Data uint8

	// the byte was sent with the end-or-identify signal
	EOI bool

	// the byte was sent under ATN and is therefore a command
	ATN bool

	// time of the start of the first bit
	At time.Duration

	// time between the talker being ready to send and the start of the
	// first bit. this includes the EOI handshake if there is one
	Setup time.Duration
}

func (f Frame) String() string {
	s := fmt.Sprintf("0x%02x", f.Data)
	if f.ATN {
		s = fmt.Sprintf("%s ATN", s)
	}
	if f.EOI {
		s = fmt.Sprintf("%s EOI", s)
	}
	return s
}

type decodeState int

const (
	decodeIdle decodeState = iota
	decodeTalkerReady
	decodeListenerReady
	decodeEOI
	decodeBits
	decodeFrameEnd
)

// Decode the record into the bytes that were transferred. Bits are sampled on
// the DATA line each time CLK is released, after the talker and listener
// have both signalled that they are ready.
func (l *Log) Decode() []Frame {
	var frames []Frame

	state := decodeIdle
	prev := iec.AllLines

	var f Frame
	var readyAt time.Duration
	var bit int

	for _, e := range l.Edges {
		cur := e.Released

		clkRising := prev&iec.CLK == iec.NoLines && cur&iec.CLK == iec.CLK
		clkFalling := prev&iec.CLK == iec.CLK && cur&iec.CLK == iec.NoLines
		dataHi := cur&iec.DATA == iec.DATA

		switch state {
		case decodeIdle:
			if clkRising {
				readyAt = e.At
				f = Frame{}
				if dataHi {
					state = decodeListenerReady
				} else {
					state = decodeTalkerReady
				}
			}

		case decodeTalkerReady:
			if clkFalling {
				// not a byte transfer. most likely the turnaround
				state = decodeIdle
			} else if dataHi {
				state = decodeListenerReady
			}

		case decodeListenerReady:
			if clkFalling {
				f.At = e.At
				f.Setup = e.At - readyAt
				bit = 0
				state = decodeBits
			} else if !dataHi {
				state = decodeEOI
			}

		case decodeEOI:
			if dataHi {
				f.EOI = true
				state = decodeListenerReady
			}

		case decodeBits:
			if clkRising {
				if dataHi {
					f.Data |= 0x01 << bit
				}
				bit++
				if bit == 8 {
					f.ATN = cur&iec.ATN == iec.NoLines
					frames = append(frames, f)
					state = decodeFrameEnd
				}
			}

		case decodeFrameEnd:
			if clkFalling {
				state = decodeIdle
			}
		}

		prev = cur
	}

	return frames
}
