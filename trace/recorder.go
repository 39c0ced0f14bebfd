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

import (
	"time"

	"github.com/jetsetilly/iecserial/iec"
)

// Recorder wraps an implementation of iec.Lines and records the levels of
// the lines every time the lines are changed or sensed. Device activity is
// therefore recorded at the resolution of the controller's polling.
//
// Recorder implements the iec.Lines interface.
type Recorder struct {
	lines iec.Lines
	now   func() time.Duration
	log   *Log
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The now function is the time source for the record.
func NewRecorder(lines iec.Lines, now func() time.Duration) *Recorder {
	return &Recorder{
		lines: lines,
		now:   now,
		log:   NewLog(),
	}
}

// Log returns the record.
func (r *Recorder) Log() *Log {
	return r.log
}

func (r *Recorder) record() iec.LineSet {
	lv := r.lines.Sense(iec.AllLines)
	r.log.Record(r.now(), lv)
	return lv
}

// Assert implements the iec.Lines interface.
func (r *Recorder) Assert(s iec.LineSet) {
	r.lines.Assert(s)
	r.record()
}

// Release implements the iec.Lines interface.
func (r *Recorder) Release(s iec.LineSet) {
	r.lines.Release(s)
	r.record()
}

// Sense implements the iec.Lines interface.
func (r *Recorder) Sense(s iec.LineSet) iec.LineSet {
	return r.record() & s
}
