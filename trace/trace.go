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

package trace

// Trace records the state of a single line, whether it is high or low, and
// also whether the immediately previous state is also high or low.
//
// Moving from one state to the other is done with Tick(bool) where a value of
// true indicates that the line is released (high).
//
// Deriving conditions from two traces is convenient. For example, given
// traces for ATN and CLK, a condition for event E might be:
//
//	if atn.Lo() && clk.Rising() {
//		E()
//	}
type Trace struct {
	Label string

	// new values are added to the end of the array
	Activity []bool

	from bool
	to   bool
}

const activityLength = 64

// NewTrace is the preferred method of initialisation for the Trace type. The
// line starts released.
func NewTrace(label string) Trace {
	tr := Trace{
		Label:    label,
		Activity: make([]bool, activityLength),
		from:     true,
		to:       true,
	}
	for i := range tr.Activity {
		tr.Activity[i] = true
	}
	return tr
}

// Changed returns true if the most recent tick changed the state of the line.
func (tr *Trace) Changed() bool {
	return tr.from != tr.to
}

// Falling returns true if the line has just been asserted.
func (tr *Trace) Falling() bool {
	return tr.from && !tr.to
}

// Rising returns true if the line has just been released.
func (tr *Trace) Rising() bool {
	return !tr.from && tr.to
}

// Hi returns true if the line is released.
func (tr *Trace) Hi() bool {
	return tr.to
}

// Lo returns true if the line is asserted.
func (tr *Trace) Lo() bool {
	return !tr.to
}

// Tick records the current state of the line.
func (tr *Trace) Tick(v bool) {
	tr.from = tr.to
	tr.to = v
	copy(tr.Activity, tr.Activity[1:])
	tr.Activity[len(tr.Activity)-1] = v
}

// String returns the recent activity of the line, oldest first.
func (tr *Trace) String() string {
	b := make([]byte, len(tr.Activity))
	for i, v := range tr.Activity {
		if v {
			b[i] = '-'
		} else {
			b[i] = '_'
		}
	}
	return tr.Label + " " + string(b)
}
