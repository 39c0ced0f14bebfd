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

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "IECserial"

// number is set by the linker for release builds:
//
//	go build -ldflags "-X github.com/jetsetilly/iecserial/version.number=v0.1.0"
var number string

// filled in by init() from number and the build information.
var version, revision string

// the values of version when number has not been set.
const (
	unreleased = "unreleased"
	local      = "local"
)

// Version returns the version string, the revision string and whether this
// is a numbered release.
//
// The version of a build without a number is "unreleased" if it was built
// from a vcs checkout and "local" otherwise. The revision is the vcs
// revision, suffixed with "+dirty" if the checkout had been modified.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

func init() {
	info, _ := debug.ReadBuildInfo()
	version, revision = fromBuildInfo(info, number)
}

func fromBuildInfo(info *debug.BuildInfo, number string) (string, string) {
	var vcs, modified bool
	rev := "no revision information"

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				if s.Value != "" {
					rev = s.Value
				}
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if modified {
		rev = fmt.Sprintf("%s+dirty", rev)
	}

	switch {
	case number != "":
		return number, rev
	case vcs:
		return unreleased, rev
	}
	return local, rev
}

// String returns the application name and version in a form suitable for
// printing.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

// Platform describes the Go runtime and the platform the program was built
// for.
func Platform() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
