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
)

// Port is a connection to the bus. Each participant on the bus has its own
// port and the level of a line is the combination of what each port is doing
// to it: if any port asserts a line it reads low.
type Port struct {
	bus *Bus

	// lines asserted by this port
	driven iec.LineSet
}

// Assert drives every line in the set low.
func (p *Port) Assert(s iec.LineSet) {
	p.driven |= s
	p.bus.record()
}

// Release stops driving every line in the set.
func (p *Port) Release(s iec.LineSet) {
	p.driven &^= s
	p.bus.record()
}

// Sense returns the subset of lines that read high.
func (p *Port) Sense(s iec.LineSet) iec.LineSet {
	return s & p.bus.Levels()
}

// Released returns true if the line reads high.
func (p *Port) Released(s iec.LineSet) bool {
	return p.bus.Levels()&s == s
}

// Driven returns the lines asserted by this port.
func (p *Port) Driven() iec.LineSet {
	return p.driven
}

// Now returns the current virtual time. Unlike the Bus.Now() function time
// does not advance.
func (p *Port) Now() time.Duration {
	return p.bus.now
}
