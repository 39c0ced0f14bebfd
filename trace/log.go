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
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/iecserial/iec"
)

// Edge is a change in the level of one or more lines.
type Edge struct {
	At time.Duration

	// the lines reading high after the change
	Released iec.LineSet
}

func (e Edge) String() string {
	return fmt.Sprintf("%v released: %v", e.At, e.Released)
}

// Log is a record of the level changes on the bus. The record begins with
// every line released.
type Log struct {
	Edges []Edge
}

// NewLog is the preferred method of initialisation for the Log type.
func NewLog() *Log {
	return &Log{
		Edges: make([]Edge, 0, 4096),
	}
}

// Reset clears the record.
func (l *Log) Reset() {
	l.Edges = l.Edges[:0]
}

// Record the lines that are released at the given time. Nothing is recorded
// if the levels have not changed since the last entry.
func (l *Log) Record(at time.Duration, released iec.LineSet) {
	released &= iec.AllLines
	if released == l.Levels() {
		return
	}
	l.Edges = append(l.Edges, Edge{At: at, Released: released})
}

// Levels returns the most recently recorded levels.
func (l *Log) Levels() iec.LineSet {
	if len(l.Edges) == 0 {
		return iec.AllLines
	}
	return l.Edges[len(l.Edges)-1].Released
}

// LevelsAt returns the levels at the given time.
func (l *Log) LevelsAt(at time.Duration) iec.LineSet {
	lv := iec.AllLines
	for _, e := range l.Edges {
		if e.At > at {
			break
		}
		lv = e.Released
	}
	return lv
}

// End returns the time of the last recorded change.
func (l *Log) End() time.Duration {
	if len(l.Edges) == 0 {
		return 0
	}
	return l.Edges[len(l.Edges)-1].At
}

// Pulse is a period of time during which a line was asserted.
type Pulse struct {
	Start time.Duration
	Width time.Duration
}

// Pulses returns every period during which the line was asserted. A line that
// is still asserted at the end of the record has a pulse ending at End().
func (l *Log) Pulses(line iec.LineSet) []Pulse {
	var p []Pulse

	asserted := false
	var start time.Duration

	for _, e := range l.Edges {
		lo := e.Released&line == iec.NoLines
		if lo && !asserted {
			start = e.At
			asserted = true
		} else if !lo && asserted {
			p = append(p, Pulse{Start: start, Width: e.At - start})
			asserted = false
		}
	}

	if asserted {
		p = append(p, Pulse{Start: start, Width: l.End() - start})
	}

	return p
}

// String returns a line per edge.
func (l *Log) String() string {
	s := strings.Builder{}
	for _, e := range l.Edges {
		s.WriteString(e.String())
		s.WriteRune('\n')
	}
	return s.String()
}
