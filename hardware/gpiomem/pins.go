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

package gpiomem

import (
	"fmt"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
)

// DefaultPath of the GPIO memory device.
const DefaultPath = "/dev/gpiomem"

// MaxPin is the highest numbered pin in the GPIO block.
const MaxPin = 53

// Register offsets in 32 bit words from the start of the GPIO block.
const (
	regFunctionSelect = 0
	regClear          = 10
	regLevel          = 13

	// size of the memory map. covers every register used
	blockSize = 4096
)

// Function select values.
const (
	fsInput  = 0b000
	fsOutput = 0b001
	fsMask   = 0b111
)

// Pins maps each bus line to a BCM pin number. A negative value means that
// the line is not connected.
type Pins struct {
	ATN  int
	CLK  int
	DATA int
	SRQ  int
	RST  int
}

// DefaultPins is the wiring used by most adapters.
var DefaultPins = Pins{
	ATN:  17,
	CLK:  27,
	DATA: 22,
	SRQ:  23,
	RST:  24,
}

// Sentinel error patterns.
const (
	InvalidPin   = "gpiomem: invalid pin for %v (%d)"
	DuplicatePin = "gpiomem: pin %d used for %v and %v"
	MissingPin   = "gpiomem: %v must be connected"
)

// Pin returns the pin number for a single line.
func (p Pins) Pin(l iec.LineSet) int {
	switch l {
	case iec.ATN:
		return p.ATN
	case iec.CLK:
		return p.CLK
	case iec.DATA:
		return p.DATA
	case iec.SRQ:
		return p.SRQ
	case iec.RST:
		return p.RST
	}
	return -1
}

var lineOrder = []iec.LineSet{iec.ATN, iec.CLK, iec.DATA, iec.SRQ, iec.RST}

// Validate returns an error if any pin is out of range or if any pin is used
// for more than one line. ATN, CLK and DATA must be connected.
func (p Pins) Validate() error {
	used := make(map[int]iec.LineSet)
	for _, l := range lineOrder {
		n := p.Pin(l)
		if n < 0 {
			if l == iec.ATN || l == iec.CLK || l == iec.DATA {
				return curated.Errorf(MissingPin, l)
			}
			continue
		}
		if n > MaxPin {
			return curated.Errorf(InvalidPin, l, n)
		}
		if o, ok := used[n]; ok {
			return curated.Errorf(DuplicatePin, n, o, l)
		}
		used[n] = l
	}
	return nil
}

func (p Pins) String() string {
	return fmt.Sprintf("ATN=%d CLK=%d DATA=%d SRQ=%d RST=%d", p.ATN, p.CLK, p.DATA, p.SRQ, p.RST)
}

// pinMasks is the bit in the set, clear and level registers for every line.
// only pins 0 to 31 are reachable through the first bank of those registers
// and that is where every usable header pin is.
type pinMasks [5]uint32

func (p Pins) masks() (pinMasks, error) {
	var m pinMasks
	for i, l := range lineOrder {
		n := p.Pin(l)
		if n < 0 {
			continue
		}
		if n > 31 {
			return m, curated.Errorf(InvalidPin, l, n)
		}
		m[i] = 0x01 << n
	}
	return m, nil
}

// combined returns the mask for every line in the set.
func (m pinMasks) combined(s iec.LineSet) uint32 {
	var v uint32
	for i, l := range lineOrder {
		if s&l == l {
			v |= m[i]
		}
	}
	return v
}

// released converts the value of the level register into a set of released
// lines. unconnected lines always read as released.
func (m pinMasks) released(level uint32, s iec.LineSet) iec.LineSet {
	var r iec.LineSet
	for i, l := range lineOrder {
		if s&l != l {
			continue
		}
		if m[i] == 0 || level&m[i] != 0 {
			r |= l
		}
	}
	return r
}

// functionSelect returns the register index, shift and mask for the function
// select bits of the pin.
func functionSelect(pin int) (int, uint, uint32) {
	reg := regFunctionSelect + pin/10
	shift := uint(pin%10) * 3
	return reg, shift, fsMask << shift
}
