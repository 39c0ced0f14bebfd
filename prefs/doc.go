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

// Package prefs facilitates the storage of preferential values. Values are
// stored in the Bool, String and Int types, each of which can be added to a
// Disk instance under a key. The Disk saves and loads the values as lines of
// the form:
//
//	key :: value
//
// Values can be overridden from the command line by pushing a string of the
// form "key::value; key::value" with PushCommandLineStack() before the Disk
// is loaded. Overridden values are used for the current session but they are
// written to disk if the Disk is saved.
package prefs
