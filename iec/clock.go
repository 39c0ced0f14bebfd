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

// Clock is the time source for the bus protocol.
type Clock interface {
	// Now returns a monotonic time. The zero point is not important.
	Now() time.Duration

	// Delay holds for at least the given duration.
	Delay(time.Duration)
}

// Realtime is an implementation of Clock using the wall clock. Delays are
// busy-waits. Sleeping hands the thread back to the scheduler and the wake up
// latency is far greater than the bus timing allows.
type Realtime struct {
	epoch time.Time
}

// NewRealtime is the preferred method of initialisation for the Realtime type.
func NewRealtime() *Realtime {
	return &Realtime{
		epoch: time.Now(),
	}
}

// Now implements the Clock interface.
func (rt *Realtime) Now() time.Duration {
	return time.Since(rt.epoch)
}

// Delay implements the Clock interface.
func (rt *Realtime) Delay(d time.Duration) {
	end := rt.Now() + d
	for rt.Now() < end {
	}
}
