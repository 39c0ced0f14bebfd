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

// Package session runs complete exchanges with a device: addressing the
// device, transferring the data and releasing the device afterwards.
package session

import (
	"io"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/logger"
)

// NoSecondary is the value of Target.Secondary when no secondary address is
// to be sent.
const NoSecondary = -1

// Target is the address of a device.
type Target struct {
	Device    uint8
	Secondary int
}

// Sentinel error patterns.
const (
	SessionError = "session: %v"
	ReadError    = "session: reading input: %v"
)

// the amount of input sent in one call to SendBytes().
const chunkSize = 256

func (t Target) listen(bus *iec.Bus) error {
	if t.Secondary == NoSecondary {
		return bus.Listen(t.Device)
	}
	return bus.ListenSecondary(t.Device, uint8(t.Secondary))
}

func (t Target) talk(bus *iec.Bus) error {
	if t.Secondary == NoSecondary {
		return bus.Talk(t.Device)
	}
	return bus.TalkSecondary(t.Device, uint8(t.Secondary))
}

// Print sends everything from src to the target device. The final byte is
// sent with EOI. The device is unlistened afterwards even if the transfer
// failed.
//
// Returns the number of bytes that were acknowledged by the device. When
// the transfer fails the count is correct to the nearest chunk of input.
func Print(bus *iec.Bus, target Target, src io.Reader) (int, error) {
	if err := target.listen(bus); err != nil {
		return 0, curated.Errorf(SessionError, err)
	}

	n, err := stream(bus, src)

	if uerr := bus.Unlisten(); err == nil && uerr != nil {
		err = uerr
	}
	if err != nil {
		return n, curated.Errorf(SessionError, err)
	}

	logger.Logf(logger.Allow, "session", "printed %d bytes to device %d", n, target.Device)
	return n, nil
}

// stream holds back the most recent byte read from src so that it can be
// sent with EOI when src is exhausted.
func stream(bus *iec.Bus, src io.Reader) (int, error) {
	buf := make([]uint8, chunkSize+1)
	held := 0
	sent := 0

	for {
		n, err := src.Read(buf[held:])
		n += held

		if n > 1 {
			if serr := bus.SendBytes(buf[:n-1], false); serr != nil {
				return sent, serr
			}
			sent += n - 1
			buf[0] = buf[n-1]
			held = 1
		} else {
			held = n
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return sent, curated.Errorf(ReadError, err)
		}
	}

	if held == 1 {
		if err := bus.Send(buf[0], true); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// Read a string from the target device. Reading stops at the end of the
// transfer, at a carriage return or after max bytes. The device is untalked
// afterwards even if the transfer failed.
func Read(bus *iec.Bus, target Target, max int) (string, error) {
	if err := target.talk(bus); err != nil {
		bus.Untalk()
		return "", curated.Errorf(SessionError, err)
	}

	s, err := bus.ReceiveString(max)

	if uerr := bus.Untalk(); err == nil && uerr != nil {
		err = uerr
	}
	if err != nil {
		return s, curated.Errorf(SessionError, err)
	}

	logger.Logf(logger.Allow, "session", "read %d bytes from device %d", len(s), target.Device)
	return s, nil
}
