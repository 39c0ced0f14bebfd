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

// waitAssertionOrTimeout waits for every line in the set to read low. Returns
// true if the timeout expired first, in which case the status is set to
// StatusTimeout.
func (b *Bus) waitAssertionOrTimeout(s LineSet, timeout time.Duration) bool {
	start := b.clk.Now()
	for !b.isAsserted(s) {
		if b.clk.Now()-start > timeout {
			b.status = StatusTimeout
			return true
		}
	}
	return false
}

// waitReleaseOrTimeout waits for any line in the set to read high. Returns
// true if the timeout expired first, in which case the status is set to
// StatusTimeout.
func (b *Bus) waitReleaseOrTimeout(s LineSet, timeout time.Duration) bool {
	start := b.clk.Now()
	for !b.isReleased(s) {
		if b.clk.Now()-start > timeout {
			b.status = StatusTimeout
			return true
		}
	}
	return false
}

// waitAssertion has no timeout. The clock is polled so that a simulated bus
// keeps running while the engine waits.
func (b *Bus) waitAssertion(s LineSet) {
	for !b.isAsserted(s) {
		b.clk.Now()
	}
}

// waitRelease has no timeout.
func (b *Bus) waitRelease(s LineSet) {
	for !b.isReleased(s) {
		b.clk.Now()
	}
}
