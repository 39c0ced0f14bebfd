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

package logger

import "sync/atomic"

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should always be allowed.
var Allow Permission = allow{}

// Toggle is a Permission that can be switched on and off while the program
// is running. Useful for verbose logging that is normally unwanted. The zero
// value denies logging.
type Toggle struct {
	on atomic.Bool
}

// Set whether logging is allowed.
func (t *Toggle) Set(on bool) {
	t.on.Store(on)
}

// AllowLogging implements the Permission interface.
func (t *Toggle) AllowLogging() bool {
	return t.on.Load()
}
