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

package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/iecserial/test"
)

func TestResourcePath(t *testing.T) {
	// resource directory in the working directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(localConfigDir, 0o700))

	pth, err := ResourcePath("foo/bar", "baz")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(localConfigDir, "foo", "bar", "baz"))

	// directory was created
	fi, err := os.Stat(filepath.Join(localConfigDir, "foo", "bar"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())

	pth, err = ResourcePath("", "baz")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(localConfigDir, "baz"))

	pth, err = ResourcePath("", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, localConfigDir)
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename(n, "trace", "", "wav"), "trace_20210304_050607.wav")
	test.ExpectEquality(t, uniqueFilename(n, "trace", " printer ", ".wav"), "trace_printer_20210304_050607.wav")
	test.ExpectEquality(t, uniqueFilename(n, "memviz", "", ""), "memviz_20210304_050607")
}
