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

// Package iec is the controller side of the Commodore IEC serial bus. It
// drives the ATN, CLK and DATA lines (plus the RST line on adapters that wire
// it) to address devices, transfer bytes in both directions and reset the
// bus.
//
// The lines themselves are reached through the Lines interface. Lines are
// open-collector: asserting a line drives it low and releasing a line lets it
// float high, so any participant can hold a line low and a line reads high
// only when nobody asserts it. Timing is measured against a Clock, which is
// either the wall clock returned by NewRealtime() or the virtual clock of a
// simulated bus.
//
// A typical print session:
//
//	bus := iec.NewBus(lines, iec.NewRealtime())
//	defer bus.Close()
//
//	if err := bus.Listen(4); err != nil {
//		return err
//	}
//	err := bus.SendString("HELLO\r", true)
//	bus.Unlisten()
//
// Every operation returns an error. The errors are curated errors and the
// kind of failure can be identified with curated.Is() and the pattern
// constants in this package, or converted to a Status value with StatusOf().
// The Status of the most recent operation is also available with the
// Status() and IsOk() functions.
package iec
