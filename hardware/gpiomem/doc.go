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

// Package gpiomem drives the bus lines through the GPIO block of a BCM283x
// (Raspberry Pi) by way of the /dev/gpiomem device. The register block is
// memory mapped and the pins are switched between input and output directly,
// which is the only way to meet the timing of the bus from user space.
//
// Each line must be wired through an open-collector buffer or a transistor so
// that the GPIO pin never drives the bus high. A pin that is set to output is
// always driven low: asserting a line sets the pin to output and releasing a
// line sets the pin to input.
//
// Open() is only available on Linux.
package gpiomem
