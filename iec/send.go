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

package iec

import (
	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/logger"
)

// Send transfers one byte to the current listeners. If eoi is true the byte
// is sent with the end-or-identify signal, marking it as the last byte of the
// transfer.
//
// A listener that does not acknowledge the frame results in a FramingError.
// A listener that does not take part in the EOI handshake results in a
// Timeout but the byte is still sent.
func (b *Bus) Send(data uint8, eoi bool) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	err := b.send(data, eoi)
	if err != nil {
		logger.Log(logger.Allow, "iec", err)
	}
	return err
}

// SendBytes transfers the data to the current listeners. If eoi is true the
// final byte is sent with the end-or-identify signal. The transfer stops at
// the first byte that fails.
func (b *Bus) SendBytes(data []uint8, eoi bool) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	err := b.sendBytes(data, eoi)
	if err != nil {
		logger.Log(logger.Allow, "iec", err)
	}
	return err
}

// SendString is the same as SendBytes but for strings.
func (b *Bus) SendString(s string, eoi bool) error {
	return b.SendBytes([]uint8(s), eoi)
}

func (b *Bus) sendBytes(data []uint8, eoi bool) error {
	b.status = StatusOk
	for i, d := range data {
		if err := b.send(d, eoi && i == len(data)-1); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) send(data uint8, eoi bool) error {
	b.status = StatusOk

	// talker is ready to send
	b.lines.Release(CLK)

	// listener is ready for data. there is no limit to how long the listener
	// can take
	b.waitRelease(DATA)

	if eoi {
		// listener acknowledges the end of the transfer by pulsing DATA.
		// a missing acknowledgement is a timeout but the byte is still sent
		b.waitAssertionOrTimeout(DATA, TimeEOIResponse)
		b.waitReleaseOrTimeout(DATA, TimeEOIHold)
		b.clk.Delay(TimeTalkerResponse)
	} else {
		b.clk.Delay(TimeNonEOIResponse)
	}

	b.sendBits(data)

	// end of frame
	b.lines.Release(DATA)
	b.lines.Assert(CLK)

	if b.waitAssertionOrTimeout(DATA, TimeFrameHandshake) {
		b.status = StatusFramingError
	}

	b.clk.Delay(TimeBetweenBytes)

	switch b.status {
	case StatusFramingError:
		return curated.Errorf(FramingError, data)
	case StatusTimeout:
		return curated.Errorf(Timeout, "end-or-identify handshake")
	}
	return nil
}

// sendBits sends the byte least significant bit first. Each bit is valid when
// CLK is released.
func (b *Bus) sendBits(data uint8) {
	for i := 0; i < 8; i++ {
		b.lines.Assert(CLK)
		b.clk.Delay(TimeBitSetup / 2)

		if data&0x01 == 0x01 {
			b.lines.Release(DATA)
		} else {
			b.lines.Assert(DATA)
		}
		data >>= 1

		b.clk.Delay(TimeBitSetup / 2)
		b.lines.Release(CLK)
		b.clk.Delay(TimeDataValid)
	}
}
