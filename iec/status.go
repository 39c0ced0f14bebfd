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
	"fmt"

	"github.com/jetsetilly/iecserial/curated"
)

// Status is the outcome of the most recent bus operation. The values are the
// status bits used by the KERNAL on the host computer.
type Status uint8

// List of valid Status values.
const (
	StatusOk           Status = 0b00000000
	StatusTimeout      Status = 0b00000001
	StatusFramingError Status = 0b00000100
	StatusNoDevice     Status = 0b10000000
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusTimeout:
		return "timeout"
	case StatusFramingError:
		return "framing error"
	case StatusNoDevice:
		return "no device"
	}
	return fmt.Sprintf("unknown status (0x%02x)", uint8(s))
}

// Sentinel error patterns.
const (
	NoDevice          = "iec: no device responded to attention"
	Timeout           = "iec: timeout: %s"
	FramingError      = "iec: framing error: byte 0x%02x not acknowledged"
	ReceiveFraming    = "iec: framing error: talker did not end frame"
	TurnaroundTimeout = "iec: device did not take the bus after talk"
	EmptyCommand      = "iec: empty command"
	InvalidAddress    = "iec: invalid %s address (%d)"
	InvalidLength     = "iec: invalid receive length (%d)"
)

// StatusOf returns the Status carried by an error returned from one of the
// Bus functions. The boolean return value is false if the error does not
// represent a bus condition, for example an invalid address, which is
// rejected before the bus is touched.
func StatusOf(err error) (Status, bool) {
	switch {
	case err == nil:
		return StatusOk, true
	case curated.Has(err, NoDevice):
		return StatusNoDevice, true
	case curated.Has(err, FramingError), curated.Has(err, ReceiveFraming):
		return StatusFramingError, true
	case curated.Has(err, Timeout), curated.Has(err, TurnaroundTimeout):
		return StatusTimeout, true
	}
	return StatusOk, false
}
