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

// Package trace records the activity on the bus lines. The record can be
// queried for timing, decoded back into the bytes that were transferred and
// exported as a multi-channel WAV file for viewing in an audio editor or a
// logic analyser program that accepts WAV input.
//
// The Log type holds the record. A simulated bus writes to a Log directly. A
// hardware bus can be recorded by wrapping the iec.Lines implementation with
// a Recorder.
//
// The Trace type is a different thing. It follows a single line from one
// moment to the next and reports edges, which is what a simulated device
// needs to react to the bus.
package trace
