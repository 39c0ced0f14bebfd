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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with a
// pattern and a list of values, in the same way as fmt.Errorf(). The pattern
// identifies the error and can be tested for with the Is() and Has()
// functions, without resorting to string comparison of the formatted message.
//
// Patterns should be declared as exported string constants by the package
// that creates the error. For example, the iec package declares:
//
//	const NoDevice = "iec: no device responded to attention"
//
// and callers can check for it with:
//
//	if curated.Is(err, iec.NoDevice) {
//		...
//	}
//
// The Has() function searches the values of the error recursively, so that a
// curated error wrapped by another curated error can still be found.
package curated
