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

package memory_test

import (
	"testing"

	"github.com/cdio/caio/hardware/memory"
)

func TestRAMRoundTrip(t *testing.T) {
	as := memory.NewAddressSpace()
	ram := memory.NewRAM("ram", 0x1000)
	as.Map(0x0000, 0x1000, ram)

	as.Write(0x0042, 0x99)
	if got := as.Read(0x0042); got != 0x99 {
		t.Fatalf("got %#02x, want 0x99", got)
	}
}

func TestROMShadowedByRAM(t *testing.T) {
	as := memory.NewAddressSpace()
	rom := memory.NewROM("rom", make([]uint8, 0x2000))
	ram := memory.NewRAM("ram", 0x2000)

	as.MapRead(0xa000, 0xc000, rom, 0)
	as.MapWrite(0xa000, 0xc000, ram, 0)

	as.Write(0xa000, 0x55)
	if got := as.Read(0xa000); got != 0 {
		t.Fatalf("ROM read should be unaffected by write, got %#02x", got)
	}
}

func TestUnmappedReadsReturnFF(t *testing.T) {
	as := memory.NewAddressSpace()
	if got := as.Read(0xbeef); got != 0xff {
		t.Fatalf("got %#02x, want 0xff", got)
	}
	as.Write(0xbeef, 0x11) // must not panic
}

func TestReadAddr(t *testing.T) {
	as := memory.NewAddressSpace()
	ram := memory.NewRAM("ram", 0x10000)
	as.Map(0x0000, 0x10000, ram)

	as.Write(0x1000, 0x34)
	as.Write(0x1001, 0x12)
	if got := as.ReadAddr(0x1000); got != 0x1234 {
		t.Fatalf("got %#04x, want 0x1234", got)
	}
}

func TestReadAddrBugPageWrap(t *testing.T) {
	as := memory.NewAddressSpace()
	ram := memory.NewRAM("ram", 0x10000)
	as.Map(0x0000, 0x10000, ram)

	as.Write(0x10ff, 0x34)
	as.Write(0x1000, 0x12) // real 6502 incorrectly fetches this as the high byte
	as.Write(0x1100, 0x78) // the correct high byte

	if got := as.ReadAddr(0x10ff); got != 0x7834 {
		t.Fatalf("ReadAddr got %#04x, want 0x7834", got)
	}
	if got := as.ReadAddrBug(0x10ff); got != 0x1234 {
		t.Fatalf("ReadAddrBug got %#04x, want 0x1234", got)
	}
}

func TestIOPageDemux(t *testing.T) {
	vic := memory.NewRAM("vic", 0x40)
	sid := memory.NewRAM("sid", 0x20)
	color := memory.NewNibbleRAM("color", 0x400)
	cia1 := memory.NewRAM("cia1", 0x10)
	cia2 := memory.NewRAM("cia2", 0x10)

	page := memory.NewIOPage(vic, sid, color, cia1, cia2, nil, nil)

	as := memory.NewAddressSpace()
	as.Map(0xd000, 0xe000, page)

	as.Write(0xd000, 0x01)
	if got := as.Read(0xd040); got != 0x01 {
		t.Fatalf("VIC register mirror: got %#02x, want 0x01", got)
	}

	as.Write(0xd400, 0x02)
	if got := as.Read(0xd420); got != 0x02 {
		t.Fatalf("SID register mirror: got %#02x, want 0x02", got)
	}

	as.Write(0xd800, 0x0f)
	if got := as.Read(0xd800); got != 0xff {
		t.Fatalf("color RAM nibble read: got %#02x, want 0xff", got)
	}

	as.Write(0xdc00, 0x7f)
	if got := as.Read(0xdc00); got != 0x7f {
		t.Fatalf("CIA1: got %#02x, want 0x7f", got)
	}

	if got := as.Read(0xde00); got != 0xff {
		t.Fatalf("absent cartridge I/O-1 should read 0xff, got %#02x", got)
	}
}
