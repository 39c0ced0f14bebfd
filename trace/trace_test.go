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

package trace_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"

	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/test"
	"github.com/jetsetilly/iecserial/trace"
)

const us = time.Microsecond

// wire builds a record one level change at a time.
type wire struct {
	log *trace.Log
	at  time.Duration
	lo  iec.LineSet
}

func newWire() *wire {
	return &wire{log: trace.NewLog()}
}

func (w *wire) assert(s iec.LineSet, after time.Duration) {
	w.at += after
	w.lo |= s
	w.log.Record(w.at, iec.AllLines&^w.lo)
}

func (w *wire) release(s iec.LineSet, after time.Duration) {
	w.at += after
	w.lo &^= s
	w.log.Record(w.at, iec.AllLines&^w.lo)
}

// frame draws a byte transfer. the wire starts with the talker holding CLK
// and the listener holding DATA.
func (w *wire) frame(d uint8, eoi bool) {
	w.release(iec.CLK, 10*us)
	w.release(iec.DATA, 10*us)
	if eoi {
		w.assert(iec.DATA, 200*us)
		w.release(iec.DATA, 60*us)
	}
	for i := 0; i < 8; i++ {
		w.assert(iec.CLK, 40*us)
		if d&(0x01<<i) == 0 {
			w.assert(iec.DATA, 35*us)
		} else {
			w.release(iec.DATA, 35*us)
		}
		w.release(iec.CLK, 35*us)
	}
	w.release(iec.DATA, 20*us)
	w.assert(iec.CLK, 0)
	w.assert(iec.DATA, 15*us)
}

func TestRecord(t *testing.T) {
	l := trace.NewLog()
	test.ExpectEquality(t, l.Levels(), iec.AllLines)

	// no change is not recorded
	l.Record(10*us, iec.AllLines)
	test.ExpectEquality(t, len(l.Edges), 0)

	l.Record(20*us, iec.AllLines&^iec.ATN)
	l.Record(25*us, iec.AllLines&^iec.ATN)
	l.Record(30*us, iec.AllLines&^(iec.ATN|iec.CLK))
	l.Record(50*us, iec.AllLines)
	test.ExpectEquality(t, len(l.Edges), 3)
	test.ExpectEquality(t, l.End(), 50*us)

	test.ExpectEquality(t, l.LevelsAt(0), iec.AllLines)
	test.ExpectEquality(t, l.LevelsAt(20*us), iec.AllLines&^iec.ATN)
	test.ExpectEquality(t, l.LevelsAt(35*us), iec.AllLines&^(iec.ATN|iec.CLK))
	test.ExpectEquality(t, l.LevelsAt(100*us), iec.AllLines)

	l.Reset()
	test.ExpectEquality(t, len(l.Edges), 0)
	test.ExpectEquality(t, l.Levels(), iec.AllLines)
}

func TestPulses(t *testing.T) {
	w := newWire()
	w.assert(iec.RST, 100*us)
	w.release(iec.RST, 1000*us)
	w.assert(iec.ATN, 50*us)
	w.assert(iec.RST, 50*us)

	p := w.log.Pulses(iec.RST)
	test.DemandEquality(t, len(p), 2)
	test.ExpectEquality(t, p[0], trace.Pulse{Start: 100 * us, Width: 1000 * us})

	// still asserted at the end of the record
	test.ExpectEquality(t, p[1], trace.Pulse{Start: 1200 * us, Width: 0})

	p = w.log.Pulses(iec.ATN)
	test.DemandEquality(t, len(p), 1)
	test.ExpectEquality(t, p[0].Start, 1150*us)
}

func TestDecode(t *testing.T) {
	w := newWire()

	// command under ATN
	w.assert(iec.ATN, 0)
	w.assert(iec.CLK, 0)
	w.assert(iec.DATA, 100*us)
	w.frame(0x24, false)
	w.release(iec.ATN, 20*us)

	w.frame(0b10110010, false)
	w.frame(0xff, false)
	w.frame(0x00, true)

	f := w.log.Decode()
	test.DemandEquality(t, len(f), 4)

	test.ExpectEquality(t, f[0].Data, uint8(0x24))
	test.ExpectSuccess(t, f[0].ATN)
	test.ExpectFailure(t, f[0].EOI)

	test.ExpectEquality(t, f[1].Data, uint8(0b10110010))
	test.ExpectFailure(t, f[1].ATN)

	test.ExpectEquality(t, f[2].Data, uint8(0xff))
	test.ExpectEquality(t, f[3].Data, uint8(0x00))
	test.ExpectSuccess(t, f[3].EOI)

	// the EOI handshake lengthens the setup time of the frame
	test.ExpectSuccess(t, f[3].Setup > f[2].Setup)

	test.ExpectEquality(t, f[3].String(), "0x00 EOI")
	test.ExpectEquality(t, f[0].String(), "0x24 ATN")
}

func TestDecodeTurnaround(t *testing.T) {
	w := newWire()

	// controller releases CLK with DATA held and the device takes CLK. this
	// is not a byte
	w.assert(iec.DATA, 0)
	w.assert(iec.CLK, 0)
	w.release(iec.CLK, 30*us)
	w.assert(iec.CLK, 30*us)

	w.frame(0x41, false)

	f := w.log.Decode()
	test.DemandEquality(t, len(f), 1)
	test.ExpectEquality(t, f[0].Data, uint8(0x41))
}

func TestTrace(t *testing.T) {
	tr := trace.NewTrace("CLK")
	test.ExpectSuccess(t, tr.Hi())
	test.ExpectFailure(t, tr.Changed())

	tr.Tick(false)
	test.ExpectSuccess(t, tr.Falling())
	test.ExpectSuccess(t, tr.Lo())

	tr.Tick(false)
	test.ExpectFailure(t, tr.Changed())

	tr.Tick(true)
	test.ExpectSuccess(t, tr.Rising())
	test.ExpectFailure(t, tr.Falling())

	test.ExpectEquality(t, tr.Activity[len(tr.Activity)-1], true)
	test.ExpectEquality(t, tr.Activity[len(tr.Activity)-2], false)
	test.ExpectEquality(t, tr.Activity[len(tr.Activity)-3], false)
	test.ExpectEquality(t, tr.Activity[len(tr.Activity)-4], true)
}

type levelSource struct {
	lo iec.LineSet
}

func (s *levelSource) Assert(l iec.LineSet) {
	s.lo |= l
}

func (s *levelSource) Release(l iec.LineSet) {
	s.lo &^= l
}

func (s *levelSource) Sense(l iec.LineSet) iec.LineSet {
	return l &^ s.lo
}

func TestRecorder(t *testing.T) {
	var now time.Duration
	src := &levelSource{}
	r := trace.NewRecorder(src, func() time.Duration {
		now += us
		return now
	})

	r.Assert(iec.ATN | iec.CLK)
	test.ExpectEquality(t, r.Sense(iec.CLK|iec.DATA), iec.DATA)

	// change made by another participant is recorded when sensed
	src.Assert(iec.DATA)
	test.ExpectEquality(t, r.Sense(iec.DATA), iec.NoLines)

	r.Release(iec.AllLines)

	l := r.Log()
	test.DemandEquality(t, len(l.Edges), 3)
	test.ExpectEquality(t, l.Edges[0].Released, iec.DATA|iec.SRQ|iec.RST)
	test.ExpectEquality(t, l.Edges[1].Released, iec.SRQ|iec.RST)
	test.ExpectEquality(t, l.Edges[2].Released, iec.AllLines)
}

func TestWAV(t *testing.T) {
	w := newWire()
	w.assert(iec.ATN, 10*us)
	w.assert(iec.CLK, 10*us)
	w.release(iec.AllLines, 10*us)

	fn := filepath.Join(t.TempDir(), "trace.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, trace.WriteWAV(f, w.log, trace.DefaultSampleRate))
	test.DemandSuccess(t, f.Close())

	f, err = os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, int(dec.NumChans), len(trace.Channels))
	test.ExpectEquality(t, int(dec.SampleRate), trace.DefaultSampleRate)
	test.ExpectEquality(t, int(dec.BitDepth), 16)

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)

	// one sample per microsecond for the length of the record and the tail
	n := len(buf.Data) / len(trace.Channels)
	test.ExpectEquality(t, n, 30+100+1)

	sample := func(at int, c int) int {
		return buf.Data[at*len(trace.Channels)+c]
	}

	// ATN and CLK are channels zero and one
	test.ExpectSuccess(t, sample(5, 0) > 0)
	test.ExpectSuccess(t, sample(15, 0) < 0)
	test.ExpectSuccess(t, sample(15, 1) > 0)
	test.ExpectSuccess(t, sample(25, 1) < 0)
	test.ExpectSuccess(t, sample(25, 2) > 0)
	test.ExpectSuccess(t, sample(35, 0) > 0)
}

func TestWAVInvalidRate(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "trace.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	test.ExpectFailure(t, trace.WriteWAV(f, trace.NewLog(), 0))
}
