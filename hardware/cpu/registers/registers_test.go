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

package registers_test

import (
	"testing"

	"github.com/cdio/caio/hardware/cpu/registers"
)

func TestAddOverflow(t *testing.T) {
	r := registers.NewData(0x50, "test")
	carry, overflow := r.Add(0x50, false)
	if r.Value() != 0xa0 {
		t.Fatalf("got %#02x, want 0xa0", r.Value())
	}
	if carry {
		t.Fatal("unexpected carry")
	}
	if !overflow {
		t.Fatal("expected signed overflow 0x50+0x50")
	}
}

func TestSubtractBorrow(t *testing.T) {
	r := registers.NewData(0x00, "test")
	carry, _ := r.Subtract(0x01, true)
	if r.Value() != 0xff {
		t.Fatalf("got %#02x, want 0xff", r.Value())
	}
	if carry {
		t.Fatal("expected borrow (carry clear)")
	}
}

func TestDecimalModeTensBoundary(t *testing.T) {
	r := registers.NewData(0x09, "test")
	r.AddDecimal(1, false)
	if r.Value() != 0x10 {
		t.Fatalf("got %#02x, want 0x10", r.Value())
	}

	rcarry, _, _, _ := r.SubtractDecimal(1, true)
	if r.Value() != 0x09 {
		t.Fatalf("got %#02x, want 0x09", r.Value())
	}
	if !rcarry {
		t.Fatal("expected carry (no borrow)")
	}
}

func TestDecimalModeCarryOut(t *testing.T) {
	r := registers.NewData(0x99, "test")
	rcarry, rzero, _, _ := r.AddDecimal(0x01, true)
	if r.Value() != 0x01 {
		t.Fatalf("got %#02x, want 0x01", r.Value())
	}
	if !rcarry {
		t.Fatal("expected decimal carry out of 99+01")
	}
	if rzero {
		t.Fatal("BCD zero flag follows binary addition, 0x99+0x01+1 != 0 in binary")
	}
}

func TestStatusValueRoundTrip(t *testing.T) {
	var sr registers.Status
	sr.Load(0xff)
	if v := sr.Value(); v != 0xff {
		t.Fatalf("got %#02x, want 0xff", v)
	}

	sr.Load(0x00)
	if v := sr.Value(); v != 0x20 {
		t.Fatalf("bit 5 must always read 1: got %#02x", v)
	}
}

func TestStatusPush(t *testing.T) {
	var sr registers.Status
	sr.Load(0x00)
	if v := sr.ValueForPush(true); v&0x10 == 0 {
		t.Fatal("BRK push must set the break bit")
	}
	if v := sr.ValueForPush(false); v&0x10 != 0 {
		t.Fatal("hardware interrupt push must clear the break bit")
	}
}

func TestStackPointerWraps(t *testing.T) {
	var s registers.StackPointer
	s.Load(0x00)
	s.Push()
	if s.Address() != 0x01ff {
		t.Fatalf("got %#04x, want 0x01ff (page-1 wraparound)", s.Address())
	}
}
