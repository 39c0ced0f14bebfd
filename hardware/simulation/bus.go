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

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/trace"
)

// Peripheral is implemented by anything that can be attached to the bus.
type Peripheral interface {
	// Plumb is called once when the peripheral is attached and gives the
	// peripheral its port.
	Plumb(*Port)

	// Step is called once for every microsecond of virtual time.
	Step()
}

// TimeLimitExceeded is the pattern of the value the bus panics with when the
// time limit is exceeded.
const TimeLimitExceeded = "simulation: time limit exceeded (%v)"

// Bus is a simulated serial bus. The controller side of the bus is reached
// through the iec.Lines and iec.Clock implementations.
type Bus struct {
	now time.Duration

	// the port used by the iec.Lines implementation
	controller *Port

	ports       []*Port
	peripherals []Peripheral

	// the level of the lines as of the last change
	levels iec.LineSet

	log *trace.Log

	// if limit is not zero the bus panics when virtual time exceeds it. a
	// controller waiting for a device that never responds would otherwise
	// wait forever
	limit time.Duration
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	b := &Bus{
		levels: iec.AllLines,
		log:    trace.NewLog(),
	}
	b.controller = b.newPort()
	return b
}

func (b *Bus) newPort() *Port {
	p := &Port{bus: b}
	b.ports = append(b.ports, p)
	return p
}

// Attach a peripheral to the bus.
func (b *Bus) Attach(p Peripheral) {
	p.Plumb(b.newPort())
	b.peripherals = append(b.peripherals, p)
}

// SetLimit sets the maximum amount of virtual time. A value of zero means no
// limit.
func (b *Bus) SetLimit(limit time.Duration) {
	b.limit = limit
}

// Log returns the record of activity on the bus.
func (b *Bus) Log() *trace.Log {
	return b.log
}

// Levels returns the lines that are released by every port.
func (b *Bus) Levels() iec.LineSet {
	return b.levels
}

// Controller returns the lines asserted by the controller.
func (b *Bus) Controller() iec.LineSet {
	return b.controller.driven
}

func (b *Bus) record() {
	var lo iec.LineSet
	for _, p := range b.ports {
		lo |= p.driven
	}
	b.levels = iec.AllLines &^ lo
	b.log.Record(b.now, b.levels)
}

// step virtual time by one microsecond.
func (b *Bus) step() {
	b.now += time.Microsecond
	if b.limit > 0 && b.now > b.limit {
		panic(curated.Errorf(TimeLimitExceeded, b.limit))
	}
	for _, p := range b.peripherals {
		p.Step()
	}
}

// Assert implements the iec.Lines interface.
func (b *Bus) Assert(s iec.LineSet) {
	b.controller.Assert(s)
}

// Release implements the iec.Lines interface.
func (b *Bus) Release(s iec.LineSet) {
	b.controller.Release(s)
}

// Sense implements the iec.Lines interface.
func (b *Bus) Sense(s iec.LineSet) iec.LineSet {
	return b.controller.Sense(s)
}

// Now implements the iec.Clock interface. Virtual time advances by one
// microsecond on every call.
func (b *Bus) Now() time.Duration {
	b.step()
	return b.now
}

// Delay implements the iec.Clock interface.
func (b *Bus) Delay(d time.Duration) {
	for i := time.Duration(0); i < d; i += time.Microsecond {
		b.step()
	}
}

// Run advances virtual time without the involvement of the controller.
func (b *Bus) Run(d time.Duration) {
	b.Delay(d)
}
