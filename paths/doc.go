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

// Package paths contains functions to prepare paths for IECserial resources.
//
// The ResourcePath() function returns the path to a resource. Resources are
// kept in the ".iecserial" directory of the current working directory if it
// exists. Otherwise they are kept in the "iecserial" directory of the user's
// configuration directory (see os.UserConfigDir()).
//
// UniqueFilename() creates filenames for files that are created by the
// program, such as trace exports.
package paths
