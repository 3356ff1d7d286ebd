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

// Package cpu implements the MOS 6502/6510 core: the register file,
// the 256-entry instruction dispatch table (including the commonly
// relied-on illegal opcodes), decimal-mode arithmetic, and interrupt
// sampling. It drives a single tick per instruction rather than per
// memory access, returning the elapsed cycle count to the scheduler
// that calls it.
package cpu

import (
	"github.com/cdio/caio/cerrors"
	"github.com/cdio/caio/hardware/clock"
	"github.com/cdio/caio/hardware/cpu/registers"
	"github.com/cdio/caio/hardware/memory"
	"github.com/cdio/caio/logger"
)

// Bus is the address-space contract the CPU drives. memory.AddressSpace
// satisfies it directly; tests substitute smaller fakes.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
	ReadAddr(p uint16) uint16
	ReadAddrBug(p uint16) uint16
}

var _ Bus = (*memory.AddressSpace)(nil)

// Breakpoint is called before the opcode at addr is fetched.
type Breakpoint func(addr uint16)

// CPU is the 6502/6510 core.
type CPU struct {
	A, X, Y registers.Data
	S       registers.StackPointer
	PC      registers.PC
	P       registers.Status

	Bus Bus

	// DecimalEnable gates BCD arithmetic in ADC/SBC; the Z80
	// reimplementation used for the ZX-80 target disables it.
	DecimalEnable bool

	// IllegalOpcodes gates the illegal-opcode table entries; when
	// false an illegal opcode behaves as CPUKilled instead.
	IllegalOpcodes bool

	// RDY, when false, makes Tick a no-op that costs one cycle - the
	// VIC-II asserts this for the whole span of a badline DMA steal.
	RDY bool

	irqLine bool
	nmiLine bool
	nmiPrev bool

	// suppressSample is set for the one instruction immediately
	// following a CLI/SEI/PLP that changed I, reproducing the
	// "delayed-I" interrupt sampling behaviour.
	suppressSample bool

	Halted bool
	Ebreak bool

	breakpoints map[uint16]Breakpoint

	label string
}

// New creates a CPU wired to bus. RDY starts asserted (true) and
// illegal opcodes and decimal mode are enabled, matching a stock 6510.
func New(label string, bus Bus) *CPU {
	c := &CPU{
		Bus:            bus,
		RDY:            true,
		DecimalEnable:  true,
		IllegalOpcodes: true,
		breakpoints:    make(map[uint16]Breakpoint),
		label:          label,
	}
	return c
}

func (c *CPU) Label() string { return c.label }

// Reset loads PC from the reset vector at $FFFC, sets I, and leaves
// the other flags and registers untouched (as on real hardware).
func (c *CPU) Reset() {
	c.PC.Load(c.Bus.ReadAddr(0xfffc))
	c.P.InterruptDisable = true
	c.Halted = false
	c.nmiLine = false
	c.nmiPrev = false
}

// SetIRQ sets the level-sensitive IRQ line.
func (c *CPU) SetIRQ(asserted bool) { c.irqLine = asserted }

// SetNMI sets the edge-sensitive NMI line. The interrupt is armed on
// the false-to-true transition, matching the real 6502's edge latch.
func (c *CPU) SetNMI(asserted bool) {
	if asserted && !c.nmiPrev {
		c.nmiLine = true
	}
	c.nmiPrev = asserted
}

// SetBreakpoint installs cb to run whenever the opcode fetch lands on
// addr. A nil cb removes the breakpoint.
func (c *CPU) SetBreakpoint(addr uint16, cb Breakpoint) {
	if cb == nil {
		delete(c.breakpoints, addr)
		return
	}
	c.breakpoints[addr] = cb
}

// Tick implements clock.Tickable: it executes exactly one instruction
// (or, if RDY is low, consumes one cycle doing nothing) and returns
// the number of cycles that elapsed.
func (c *CPU) Tick(*clock.Clock) uint64 {
	if c.Halted {
		return uint64(clock.HALT)
	}

	if !c.RDY {
		return 1
	}

	if c.Ebreak {
		return 1
	}

	if bp, ok := c.breakpoints[c.PC.Value()]; ok {
		bp(c.PC.Value())
	}

	if !c.suppressSample {
		if c.sampleInterrupts() {
			return 7
		}
	}
	c.suppressSample = false

	opcode := c.fetch()
	entry := opcodeTable[opcode]
	if entry.handler == nil || (entry.illegal && !c.IllegalOpcodes) {
		logger.Log(logger.Allow, "cpu", cerrors.Errorf(cerrors.UnimplementedInstruction, opcode, c.PC.Value()-1))
		c.kill()
		return 2
	}

	wasFlagChanger := entry.mnemonic == "CLI" || entry.mnemonic == "SEI" || entry.mnemonic == "PLP"
	iBefore := c.P.InterruptDisable

	operand, pageCrossed := c.resolve(entry.mode)
	extra := entry.handler(c, operand, entry.mode)

	cycles := uint64(entry.cycles)
	if pageCrossed && entry.pageCrossPenalty {
		cycles++
	}
	cycles += uint64(extra)

	if wasFlagChanger && c.P.InterruptDisable != iBefore {
		c.suppressSample = true
	}

	return cycles
}

func (c *CPU) fetch() uint8 {
	addr := c.PC.Inc()
	return c.Bus.Read(addr)
}

func (c *CPU) kill() {
	c.Halted = true
	logger.Log(logger.Allow, "cpu", cerrors.Errorf(cerrors.CPUKilled, c.PC.Value()))
}

// sampleInterrupts services NMI (edge-armed) first, then IRQ if I=0.
// Returns true if an interrupt was serviced this tick.
func (c *CPU) sampleInterrupts() bool {
	if c.nmiLine {
		c.nmiLine = false
		c.serviceInterrupt(0xfffa, false)
		return true
	}
	if c.irqLine && !c.P.InterruptDisable {
		c.serviceInterrupt(0xfffe, false)
		return true
	}
	return false
}

// serviceInterrupt pushes PCH, PCL, P (with the break bit set per brk)
// and jumps via vector. Two dummy reads at PC precede the push on real
// hardware; they have no visible side effect here since reads are pure.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.Bus.Read(c.PC.Value())
	c.Bus.Read(c.PC.Value())

	c.push16(c.PC.Value())
	c.push8(c.P.ValueForPush(brk))
	c.P.InterruptDisable = true
	c.PC.Load(c.Bus.ReadAddr(vector))
}

func (c *CPU) push8(v uint8) {
	c.Bus.Write(c.S.Address(), v)
	c.S.Push()
}

func (c *CPU) pull8() uint8 {
	c.S.Pull()
	return c.Bus.Read(c.S.Address())
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}
