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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions compare two values of
// the same comparable type. The ExpectSuccess() and ExpectFailure() functions
// test a value for a 'success' or 'failure' condition suitable for its type.
//
// The Demand*() variants behave in the same way but treat a failed test as
// fatal. They are useful when subsequent tests depend on the value being
// correct, for example when checking the length of a slice before indexing it.
//
// The optional tags argument of each function is prepended to the failure
// message and is useful for identifying the iteration of a test loop.
//
// The CompareWriter and RingWriter types implement io.Writer and are useful
// for capturing output for later comparison.
package test
