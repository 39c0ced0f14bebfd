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

// Package hardware is the base package for the physical side of the serial
// bus. The sub-packages provide implementations of the iec.Lines interface.
//
// The gpiomem package drives the lines through the memory mapped GPIO
// registers of a Raspberry Pi. The simulation package provides a virtual bus
// with simulated devices and a virtual clock, suitable for testing and for
// the SIM mode of the application.
//
// The preferences package holds the settings for the hardware: the GPIO pin
// assignments, the default device address and the speed of serial input.
package hardware
