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
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/logger"
)

// DefaultSampleRate gives one sample per microsecond.
const DefaultSampleRate = 1000000

// Channels in the WAV file, in order.
var Channels = []iec.LineSet{iec.ATN, iec.CLK, iec.DATA, iec.SRQ, iec.RST}

const (
	bitDepth = 16

	// sample values for a released and an asserted line
	levelHi = 0x7000
	levelLo = -0x7000

	// silence at the end of the recording so that the last edge is visible
	tail = 100 * time.Microsecond
)

// WriteWAV renders the record as an uncompressed WAV file with one channel
// per bus line. A released line is a high sample value and an asserted line
// is a low sample value.
func WriteWAV(w io.WriteSeeker, l *Log, sampleRate int) error {
	if sampleRate <= 0 {
		return curated.Errorf("trace: wav: invalid sample rate (%d)", sampleRate)
	}

	period := time.Second / time.Duration(sampleRate)
	if period == 0 {
		return curated.Errorf("trace: wav: sample rate too high (%d)", sampleRate)
	}

	numSamples := int((l.End()+tail)/period) + 1

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(Channels),
			SampleRate:  sampleRate,
		},
		Data:           make([]int, 0, numSamples*len(Channels)),
		SourceBitDepth: bitDepth,
	}

	lv := iec.AllLines
	e := 0
	for i := 0; i < numSamples; i++ {
		t := time.Duration(i) * period
		for e < len(l.Edges) && l.Edges[e].At <= t {
			lv = l.Edges[e].Released
			e++
		}
		for _, c := range Channels {
			if lv&c == c {
				buf.Data = append(buf.Data, levelHi)
			} else {
				buf.Data = append(buf.Data, levelLo)
			}
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, len(Channels), 1)
	if err := enc.Write(buf); err != nil {
		return curated.Errorf("trace: wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("trace: wav: %v", err)
	}

	logger.Logf(logger.Allow, "trace", "wav: %d samples at %dHz", numSamples, sampleRate)

	return nil
}
