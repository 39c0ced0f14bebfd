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

// Package transport opens the byte stream that is sent to a device on the
// bus. The stream can be standard input, an ordinary file or a serial port.
// A serial port is put into raw mode so that the bytes arrive unaltered.
package transport

import (
	"io"
	"os"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/logger"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// DefaultBaud is the speed used for serial ports when no other speed is
// specified.
const DefaultBaud = 9600

// Sentinel error patterns.
const (
	OpenError = "transport: %s: %v"
)

// Open the named stream. Character devices are opened as serial ports at the
// given speed. Other files are opened for reading. The Stdin name selects
// standard input, which is never closed by the returned ReadCloser.
func Open(name string, baud int) (io.ReadCloser, error) {
	if name == Stdin || name == "" {
		return io.NopCloser(os.Stdin), nil
	}

	fi, err := os.Stat(name)
	if err != nil {
		return nil, curated.Errorf(OpenError, name, err)
	}

	if fi.Mode()&os.ModeCharDevice == os.ModeCharDevice {
		if baud <= 0 {
			baud = DefaultBaud
		}
		s, err := openSerial(name, baud)
		if err != nil {
			return nil, curated.Errorf(OpenError, name, err)
		}
		logger.Logf(logger.Allow, "transport", "serial port %s at %d baud", name, baud)
		return s, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, curated.Errorf(OpenError, name, err)
	}
	logger.Logf(logger.Allow, "transport", "file %s (%d bytes)", name, fi.Size())
	return f, nil
}
