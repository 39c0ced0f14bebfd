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

import (
	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/logger"
)

// turnaround swaps the roles of the controller and the device after a
// talk command. The controller becomes the listener and holds DATA; the
// device becomes the talker and takes CLK.
//
// The device also releases DATA as part of the turnaround but that can't be
// seen because the controller is holding DATA at the same time. Only the CLK
// line is checked.
func (b *Bus) turnaround() error {
	b.clk.Delay(TimeTalkRelease)
	b.lines.Assert(DATA)
	b.lines.Release(CLK)
	b.clk.Delay(TimeTalkAcknowledge)

	if b.waitAssertionOrTimeout(CLK, TimeTurnaround) {
		logger.Log(logger.Allow, "iec", "device did not take CLK after talk")
		return curated.Errorf(TurnaroundTimeout)
	}

	b.clk.Delay(TimeTalkAcknowledgeHold)
	return nil
}
