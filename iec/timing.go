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

import "time"

// Bus timing. The names follow the published timing chart for the serial bus.
const (
	// ATN response. Maximum time for a device to assert DATA after ATN has
	// been asserted.
	TimeAttentionResponse = 1000 * time.Microsecond // Tat

	// Non-EOI response to ready for data.
	TimeNonEOIResponse = 40 * time.Microsecond // Tne

	// Bit setup time. Split evenly either side of setting the DATA line.
	TimeBitSetup = 70 * time.Microsecond // Ts

	// Data valid time.
	TimeDataValid = 20 * time.Microsecond // Tv

	// Maximum time for the listener to acknowledge a frame.
	TimeFrameHandshake = 1000 * time.Microsecond // Tf

	// Frame to release of ATN.
	TimeReleaseATN = 20 * time.Microsecond // Tr

	// Between bytes.
	TimeBetweenBytes = 100 * time.Microsecond // Tbb

	// Maximum time for the listener to start acknowledging EOI.
	TimeEOIResponse = 250 * time.Microsecond // Tye

	// Maximum time for the listener to hold the EOI acknowledgement.
	TimeEOIHold = 500 * time.Microsecond // Tei

	// Talker response to the EOI acknowledgement.
	TimeTalkerResponse = 30 * time.Microsecond // Try

	// Talk-attention release.
	TimeTalkRelease = 30 * time.Microsecond // Ttk

	// Talk-attention acknowledge.
	TimeTalkAcknowledge = 30 * time.Microsecond // Tdc

	// Talk-attention acknowledge hold.
	TimeTalkAcknowledgeHold = 100 * time.Microsecond // Tda

	// Maximum time for the device to take the CLK line after a talk
	// command.
	TimeTurnaround = 1000 * time.Microsecond

	// Length of the pulse on the RST line.
	TimeResetPulse = 1000 * time.Microsecond
)

// Timing for the receive path, where the controller is the listener.
const (
	// A talker that has not started the first bit by this time after the
	// listener is ready for data is signalling EOI.
	TimeEOIDetect = 200 * time.Microsecond

	// How long the listener holds DATA to acknowledge EOI.
	TimeEOIAck = 60 * time.Microsecond
)
