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

package curated_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/test"
)

const (
	testError  = "test error: %s"
	testError2 = "test error 2: %v"
	wrapError  = "wrapped: %v"
)

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same pattern next to each other causes one of
	// them to be dropped
	f := curated.Errorf(testError2, e)
	test.ExpectEquality(t, f.Error(), "test error 2: test error: foo")

	g := curated.Errorf("test error: %v", e)
	test.ExpectEquality(t, g.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, testError2))

	// Has() finds the pattern anywhere in the chain but Is() only looks at
	// the outermost error
	f := curated.Errorf(wrapError, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, wrapError))
	test.ExpectFailure(t, curated.Has(f, testError2))

	// nil and plain errors are never curated
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.Has(errors.New("plain"), testError))
}

func TestUnwrap(t *testing.T) {
	base := errors.New("base error")
	e := curated.Errorf(wrapError, base)
	test.ExpectSuccess(t, errors.Is(e, base))

	// a curated error wrapped by the fmt package is still found by Has()
	c := curated.Errorf(testError, "foo")
	w := fmt.Errorf("context: %w", c)
	test.ExpectFailure(t, curated.IsAny(w))
	test.ExpectSuccess(t, curated.Has(w, testError))
	test.ExpectFailure(t, curated.Has(w, wrapError))
}
