// This file is part of caio.
//
// caio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// caio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with caio.  If not, see <https://www.gnu.org/licenses/>.

package cerrors_test

import (
	"fmt"
	"testing"

	"github.com/cdio/caio/cerrors"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := cerrors.Errorf(testError, "foo")
	if e.Error() != "test error: foo" {
		t.Fatalf("got %q", e.Error())
	}

	// packing errors of the same type next to each other causes one of
	// them to be dropped
	f := cerrors.Errorf(testError, e)
	if f.Error() != "test error: foo" {
		t.Fatalf("got %q", f.Error())
	}
}

func TestIs(t *testing.T) {
	e := cerrors.Errorf(testError, "foo")
	if !cerrors.Is(e, testError) {
		t.Fatal("expected Is to succeed")
	}
	if cerrors.Has(e, testErrorB) {
		t.Fatal("expected Has to fail")
	}

	f := cerrors.Errorf(testErrorB, e)
	if cerrors.Is(f, testError) {
		t.Fatal("expected Is to fail (wrong layer)")
	}
	if !cerrors.Is(f, testErrorB) {
		t.Fatal("expected Is to succeed")
	}
	if !cerrors.Has(f, testError) {
		t.Fatal("expected Has to succeed")
	}
	if !cerrors.Has(f, testErrorB) {
		t.Fatal("expected Has to succeed")
	}

	if !cerrors.IsAny(e) || !cerrors.IsAny(f) {
		t.Fatal("expected IsAny to succeed")
	}
}

func TestPlainErrors(t *testing.T) {
	e := fmt.Errorf("plain test error")
	if cerrors.IsAny(e) {
		t.Fatal("expected IsAny to fail for a plain error")
	}
	if cerrors.Has(e, testError) {
		t.Fatal("expected Has to fail for a plain error")
	}
}
