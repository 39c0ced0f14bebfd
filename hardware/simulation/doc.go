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

// Package simulation is a software model of the serial bus. The Bus type
// implements both iec.Lines and iec.Clock and so can be handed to
// iec.NewBus() in place of real hardware.
//
// Time on the simulated bus is virtual. It only moves when the controller
// polls the clock or asks for a delay, and peripherals attached to the bus
// are stepped once for every microsecond that passes. This makes the
// simulation deterministic. Because the controller never sees the bus except
// by polling, it cannot tell the difference.
//
// The Device type is a simulated IEC peripheral. It responds to attention,
// decodes commands, listens and talks, and it can be told to misbehave in
// ways that exercise the error handling of the controller.
//
// Every change of the level of the lines is recorded to a trace.Log.
package simulation
