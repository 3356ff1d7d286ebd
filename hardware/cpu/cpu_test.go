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

package cpu_test

import (
	"testing"

	"github.com/cdio/caio/hardware/cpu"
	"github.com/cdio/caio/hardware/memory"
)

func newMachine() (*cpu.CPU, *memory.AddressSpace, *memory.RAM) {
	as := memory.NewAddressSpace()
	ram := memory.NewRAM("ram", 0x10000)
	as.Map(0x0000, 0x10000, ram)
	c := cpu.New("test", as)
	return c, as, ram
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0x10ff, 0x34)
	as.Write(0x1000, 0x12)
	as.Write(0x1100, 0x78)

	// JMP ($10FF)
	as.Write(0x0200, 0x6c)
	as.Write(0x0201, 0xff)
	as.Write(0x0202, 0x10)
	c.PC.Load(0x0200)

	c.Tick(nil)

	if c.PC.Value() != 0x1234 {
		t.Fatalf("got PC=%#04x, want 0x1234 (the buggy, not the correct, target)", c.PC.Value())
	}
}

func TestADCDecimalMode(t *testing.T) {
	c, as, _ := newMachine()
	// SED ; CLC ; LDA #$09 ; ADC #$01
	prog := []uint8{0xf8, 0x18, 0xa9, 0x09, 0x69, 0x01}
	for i, b := range prog {
		as.Write(uint16(i), b)
	}
	c.PC.Load(0x0000)

	for i := 0; i < 4; i++ {
		c.Tick(nil)
	}

	if c.A.Value() != 0x10 {
		t.Fatalf("got A=%#02x, want 0x10 (09+01 in BCD)", c.A.Value())
	}
}

func TestADCBinarySignedOverflow(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0x0000, 0x69) // ADC #$40
	as.Write(0x0001, 0x40)
	c.PC.Load(0x0000)
	c.A.Load(0x3f)
	c.P.Carry = true

	c.Tick(nil)

	if c.A.Value() != 0x80 {
		t.Fatalf("got A=%#02x, want 0x80", c.A.Value())
	}
	if !c.P.Sign || !c.P.Overflow || c.P.Zero || c.P.Carry {
		t.Fatalf("got flags %v, want N=1 V=1 Z=0 C=0", c.P)
	}
}

func TestADCDecimalCarryOut(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0x0000, 0x69) // ADC #$46
	as.Write(0x0001, 0x46)
	c.PC.Load(0x0000)
	c.A.Load(0x58)
	c.P.DecimalMode = true
	c.P.Carry = false

	c.Tick(nil)

	if c.A.Value() != 0x04 {
		t.Fatalf("got A=%#02x, want 0x04 (58+46 in BCD)", c.A.Value())
	}
	if !c.P.Carry {
		t.Fatal("expected decimal carry out")
	}
}

func TestZeroPageIndexingWraps(t *testing.T) {
	c, as, _ := newMachine()
	// STA $00,X with X=$FF stays inside page zero
	as.Write(0x0200, 0x95)
	as.Write(0x0201, 0x00)
	c.PC.Load(0x0200)
	c.A.Load(0x42)
	c.X.Load(0xff)

	c.Tick(nil)

	if got := as.Read(0x00ff); got != 0x42 {
		t.Fatalf("got mem[$00FF]=%#02x, want 0x42", got)
	}
	if got := as.Read(0x01ff); got == 0x42 {
		t.Fatal("store must not cross into page one")
	}
}

func TestBranchPageCrossCycleCount(t *testing.T) {
	c, as, _ := newMachine()
	// BCC from $02FD, taken, target on the next page
	as.Write(0x02fd, 0x90)
	as.Write(0x02fe, 0x7f)
	c.PC.Load(0x02fd)
	c.P.Carry = false

	cycles := c.Tick(nil)
	if cycles != 4 {
		t.Fatalf("got %d cycles, want 4 (2 base + taken + page cross)", cycles)
	}
}

func TestBranchCycleCounts(t *testing.T) {
	c, as, _ := newMachine()
	// CLC ; BCC +2 (taken, same page)
	as.Write(0x0000, 0x18)
	as.Write(0x0001, 0x90)
	as.Write(0x0002, 0x02)
	c.PC.Load(0x0000)

	c.Tick(nil) // CLC
	cycles := c.Tick(nil)
	if cycles != 3 {
		t.Fatalf("got %d cycles, want 3 (2 base + 1 taken)", cycles)
	}
	if c.PC.Value() != 0x0005 {
		t.Fatalf("got PC=%#04x, want 0x0005", c.PC.Value())
	}
}

func TestBranchNotTakenCycleCount(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0x0000, 0xb0) // BCS, carry clear so not taken
	as.Write(0x0001, 0x10)
	c.PC.Load(0x0000)

	cycles := c.Tick(nil)
	if cycles != 2 {
		t.Fatalf("got %d cycles, want 2", cycles)
	}
}

func TestResetVector(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0xfffc, 0x00)
	as.Write(0xfffd, 0x80)
	c.Reset()
	if c.PC.Value() != 0x8000 {
		t.Fatalf("got PC=%#04x, want 0x8000", c.PC.Value())
	}
	if !c.P.InterruptDisable {
		t.Fatal("reset must set the interrupt-disable flag")
	}
}

func TestIRQServicing(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0xfffe, 0x00)
	as.Write(0xffff, 0x90)
	as.Write(0x0000, 0xea) // NOP
	c.PC.Load(0x0000)
	c.P.InterruptDisable = false

	c.SetIRQ(true)
	cycles := c.Tick(nil)

	if cycles != 7 {
		t.Fatalf("got %d cycles, want 7 for interrupt servicing", cycles)
	}
	if c.PC.Value() != 0x9000 {
		t.Fatalf("got PC=%#04x, want 0x9000 (IRQ vector)", c.PC.Value())
	}
	if !c.P.InterruptDisable {
		t.Fatal("servicing an interrupt must set I")
	}
}

func TestRDYStall(t *testing.T) {
	c, _, _ := newMachine()
	c.RDY = false
	pc := c.PC.Value()
	cycles := c.Tick(nil)
	if cycles != 1 {
		t.Fatalf("got %d cycles, want 1 while RDY is low", cycles)
	}
	if c.PC.Value() != pc {
		t.Fatal("PC must not advance while RDY is low")
	}
}

func TestKILHalts(t *testing.T) {
	c, as, _ := newMachine()
	as.Write(0x0000, 0x02) // KIL
	c.PC.Load(0x0000)
	c.Tick(nil)
	if !c.Halted {
		t.Fatal("KIL must set the halted flag")
	}
}

func TestIllegalOpcodesDisabled(t *testing.T) {
	c, as, _ := newMachine()
	c.IllegalOpcodes = false
	as.Write(0x0000, 0x0b) // ANC #imm, an illegal opcode
	as.Write(0x0001, 0x00)
	c.PC.Load(0x0000)
	c.Tick(nil)
	if !c.Halted {
		t.Fatal("illegal opcode with IllegalOpcodes disabled must halt the CPU")
	}
}
