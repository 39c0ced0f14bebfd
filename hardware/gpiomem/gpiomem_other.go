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

//go:build !linux

package gpiomem

import (
	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
)

// Unsupported is the pattern of the error returned by Open() on platforms
// without the GPIO memory device.
const Unsupported = "gpiomem: not supported on this platform"

// GPIO is not available on this platform.
type GPIO struct{}

// Open always fails on this platform.
func Open(path string, pins Pins) (*GPIO, error) {
	return nil, curated.Errorf(Unsupported)
}

// Close does nothing on this platform.
func (g *GPIO) Close() error {
	return nil
}

// Assert implements the iec.Lines interface.
func (g *GPIO) Assert(s iec.LineSet) {}

// Release implements the iec.Lines interface.
func (g *GPIO) Release(s iec.LineSet) {}

// Sense implements the iec.Lines interface.
func (g *GPIO) Sense(s iec.LineSet) iec.LineSet {
	return s
}
