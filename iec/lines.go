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

import "strings"

// LineSet is a set of bus lines.
type LineSet uint8

// List of bus lines.
const (
	ATN LineSet = 1 << iota
	CLK
	DATA
	SRQ
	RST

	NoLines  LineSet = 0
	AllLines         = ATN | CLK | DATA | SRQ | RST
)

// String implements the fmt.Stringer interface.
func (s LineSet) String() string {
	if s == NoLines {
		return "none"
	}

	var l []string
	if s&ATN == ATN {
		l = append(l, "ATN")
	}
	if s&CLK == CLK {
		l = append(l, "CLK")
	}
	if s&DATA == DATA {
		l = append(l, "DATA")
	}
	if s&SRQ == SRQ {
		l = append(l, "SRQ")
	}
	if s&RST == RST {
		l = append(l, "RST")
	}
	return strings.Join(l, "|")
}

// Lines is the electrical interface to the bus. Implementations must not
// block.
type Lines interface {
	// Assert drives every line in the set low.
	Assert(LineSet)

	// Release stops driving every line in the set. A released line reads
	// high unless another participant is asserting it.
	Release(LineSet)

	// Sense returns the subset of the lines that currently read high.
	Sense(LineSet) LineSet
}

// isAsserted returns true if every line in the set reads low.
func (b *Bus) isAsserted(s LineSet) bool {
	return b.lines.Sense(s) == NoLines
}

// isReleased returns true if any line in the set reads high.
func (b *Bus) isReleased(s LineSet) bool {
	return b.lines.Sense(s) != NoLines
}

func (b *Bus) releaseAll() {
	b.lines.Release(AllLines)
}
