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
	"sync"

	"github.com/jetsetilly/iecserial/logger"
)

// Bus is the controller of the serial bus. All functions are safe to call
// from more than one goroutine but only one operation runs at a time.
type Bus struct {
	// crit is held for the duration of every exported operation
	crit sync.Mutex

	lines Lines
	clk   Clock

	// outcome of the most recent operation
	status Status
}

// NewBus is the preferred method of initialisation for the Bus type. Every
// line is released.
func NewBus(lines Lines, clk Clock) *Bus {
	b := &Bus{
		lines: lines,
		clk:   clk,
	}
	b.releaseAll()
	return b
}

// Close releases every line and leaves the bus idle. The underlying Lines
// implementation is not closed.
func (b *Bus) Close() {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.releaseAll()
}

// Status returns the outcome of the most recent operation.
func (b *Bus) Status() Status {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.status
}

// IsOk returns true if the most recent operation succeeded.
func (b *Bus) IsOk() bool {
	return b.Status() == StatusOk
}

// Reset pulses the RST line with every other line released. Devices that are
// not wired to RST are unaffected. The status is not changed.
func (b *Bus) Reset() {
	b.crit.Lock()
	defer b.crit.Unlock()

	b.releaseAll()
	b.lines.Assert(RST)
	b.clk.Delay(TimeResetPulse)
	b.lines.Release(RST)

	logger.Log(logger.Allow, "iec", "reset")
}
