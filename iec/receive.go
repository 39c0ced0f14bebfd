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

// CarriageReturn terminates the strings sent by most devices.
const CarriageReturn = 0x0d

// ReceiveByte receives one byte from the current talker. The bus must have
// been turned around with Talk() or TalkSecondary() first. The eoi return
// value is true if the talker marked the byte as the last of the transfer.
func (b *Bus) ReceiveByte() (uint8, bool, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	d, eoi, err := b.receive()
	if err != nil {
		logger.Log(logger.Allow, "iec", err)
	}
	return d, eoi, err
}

// Receive collects bytes from the current talker until a byte is marked
// with EOI or until max bytes have been received. A negative max is rejected
// without touching the bus.
func (b *Bus) Receive(max int) ([]uint8, error) {
	if max < 0 {
		return nil, curated.Errorf(InvalidLength, max)
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	data := make([]uint8, 0, max)
	for len(data) < max {
		d, eoi, err := b.receive()
		if err != nil {
			logger.Log(logger.Allow, "iec", err)
			return data, err
		}
		data = append(data, d)
		if eoi {
			break
		}
	}
	return data, nil
}

// ReceiveString is the same as Receive except that it also stops after a
// carriage return. The carriage return is not included in the returned
// string.
func (b *Bus) ReceiveString(max int) (string, error) {
	if max < 0 {
		return "", curated.Errorf(InvalidLength, max)
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	data := make([]uint8, 0, max)
	for len(data) < max {
		d, eoi, err := b.receive()
		if err != nil {
			logger.Log(logger.Allow, "iec", err)
			return string(data), err
		}
		if d == CarriageReturn {
			break
		}
		data = append(data, d)
		if eoi {
			break
		}
	}
	return string(data), nil
}

func (b *Bus) receive() (uint8, bool, error) {
	b.status = StatusOk

	// talker is ready to send
	b.waitRelease(CLK)

	// listener is ready for data
	b.lines.Release(DATA)

	// a talker that doesn't start sending within the detection window is
	// signalling the end of the transfer
	var eoi bool
	if b.waitAssertionOrTimeout(CLK, TimeEOIDetect) {
		b.status = StatusOk
		eoi = true

		b.lines.Assert(DATA)
		b.clk.Delay(TimeEOIAck)
		b.lines.Release(DATA)

		if b.waitAssertionOrTimeout(CLK, TimeFrameHandshake) {
			return 0, eoi, curated.Errorf(Timeout, "talker did not start after end-or-identify")
		}
	}

	d, err := b.receiveBits()
	if err != nil {
		return 0, eoi, err
	}

	// end of frame
	if b.waitAssertionOrTimeout(CLK, TimeFrameHandshake) {
		b.status = StatusFramingError
		return d, eoi, curated.Errorf(ReceiveFraming)
	}

	// frame accepted
	b.lines.Assert(DATA)

	return d, eoi, nil
}

// receiveBits samples DATA each time the talker releases CLK. A released
// DATA line is a one bit. Least significant bit first.
func (b *Bus) receiveBits() (uint8, error) {
	var d uint8
	for i := 0; i < 8; i++ {
		if b.waitAssertionOrTimeout(CLK, TimeFrameHandshake) {
			return d, curated.Errorf(Timeout, "bit not started by talker")
		}
		if b.waitReleaseOrTimeout(CLK, TimeFrameHandshake) {
			return d, curated.Errorf(Timeout, "bit not completed by talker")
		}
		if b.isReleased(DATA) {
			d |= 0x01 << i
		}
	}
	return d, nil
}
