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

package transport_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/test"
	"github.com/jetsetilly/iecserial/transport"
)

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "input")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("HELLO\r"), 0o600))

	r, err := transport.Open(fn, 0)
	test.DemandSuccess(t, err)
	defer r.Close()

	b, err := io.ReadAll(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "HELLO\r")
}

func TestMissingFile(t *testing.T) {
	_, err := transport.Open(filepath.Join(t.TempDir(), "missing"), 0)
	test.ExpectSuccess(t, curated.Is(err, transport.OpenError))
}

func TestStdin(t *testing.T) {
	r, err := transport.Open(transport.Stdin, 0)
	test.DemandSuccess(t, err)

	// closing does not close the real stdin
	test.ExpectSuccess(t, r.Close())
	_, err = os.Stdin.Stat()
	test.ExpectSuccess(t, err)
}
