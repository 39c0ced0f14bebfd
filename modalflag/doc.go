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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Whereas, with the flag package you call the Parse()
// function after specifying the flags, with modalflag you call the NewArgs()
// function with the command line arguments, then specify the flags and
// finally call Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	device := md.AddInt("device", 4, "device address")
//	p, err := md.Parse()
//
// Modes are added with AddSubModes(). The first mode in the list is the
// default mode and is selected if the first argument after the flags is not
// the name of a mode. Mode names are case insensitive:
//
//	md.NewMode()
//	md.AddSubModes("PRINT", "READ", "RESET")
//	p, err := md.Parse()
//
//	switch md.Mode() {
//	case "PRINT":
//		...
//	}
//
// After a mode has been selected, NewMode() prepares the Modes instance for
// the flags of that mode. The Path() function returns the modes that have been
// encountered so far, separated by a slash.
//
// Help is handled automatically. If the -help flag is given then a help
// message is printed to Output and Parse() returns ParseHelp.
package modalflag
