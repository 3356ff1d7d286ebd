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

package cpu

// handler implements one instruction's behaviour given its decoded
// operand. It returns any extra cycles beyond the table's base count
// (branch-taken/page-crossed for branches; the instruction table
// itself already folds in the read/RMW page-cross penalty for the
// other addressing modes).
type handler func(c *CPU, op operand, mode Mode) uint8

func opADC(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	if c.P.DecimalMode && c.DecimalEnable {
		carry, zero, overflow, sign := c.A.AddDecimal(v, c.P.Carry)
		c.P.Carry, c.P.Zero, c.P.Overflow, c.P.Sign = carry, zero, overflow, sign
		return 0
	}
	carry, overflow := c.A.Add(v, c.P.Carry)
	c.P.Carry, c.P.Overflow = carry, overflow
	c.P.SetNZ(c.A.Value())
	return 0
}

func opSBC(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	if c.P.DecimalMode && c.DecimalEnable {
		carry, zero, overflow, sign := c.A.SubtractDecimal(v, c.P.Carry)
		c.P.Carry, c.P.Zero, c.P.Overflow, c.P.Sign = carry, zero, overflow, sign
		return 0
	}
	carry, overflow := c.A.Subtract(v, c.P.Carry)
	c.P.Carry, c.P.Overflow = carry, overflow
	c.P.SetNZ(c.A.Value())
	return 0
}

func opAND(c *CPU, op operand, _ Mode) uint8 {
	c.A.AND(c.load(op))
	c.P.SetNZ(c.A.Value())
	return 0
}

func opORA(c *CPU, op operand, _ Mode) uint8 {
	c.A.ORA(c.load(op))
	c.P.SetNZ(c.A.Value())
	return 0
}

func opEOR(c *CPU, op operand, _ Mode) uint8 {
	c.A.EOR(c.load(op))
	c.P.SetNZ(c.A.Value())
	return 0
}

func opBIT(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	c.P.Zero = c.A.Value()&v == 0
	c.P.Sign = v&0x80 != 0
	c.P.Overflow = v&0x40 != 0
	return 0
}

func opLDA(c *CPU, op operand, _ Mode) uint8 {
	c.A.Load(c.load(op))
	c.P.SetNZ(c.A.Value())
	return 0
}

func opLDX(c *CPU, op operand, _ Mode) uint8 {
	c.X.Load(c.load(op))
	c.P.SetNZ(c.X.Value())
	return 0
}

func opLDY(c *CPU, op operand, _ Mode) uint8 {
	c.Y.Load(c.load(op))
	c.P.SetNZ(c.Y.Value())
	return 0
}

func opSTA(c *CPU, op operand, _ Mode) uint8 { c.store(op, c.A.Value()); return 0 }
func opSTX(c *CPU, op operand, _ Mode) uint8 { c.store(op, c.X.Value()); return 0 }
func opSTY(c *CPU, op operand, _ Mode) uint8 { c.store(op, c.Y.Value()); return 0 }

func opTAX(c *CPU, _ operand, _ Mode) uint8 { c.X.Load(c.A.Value()); c.P.SetNZ(c.X.Value()); return 0 }
func opTAY(c *CPU, _ operand, _ Mode) uint8 { c.Y.Load(c.A.Value()); c.P.SetNZ(c.Y.Value()); return 0 }
func opTXA(c *CPU, _ operand, _ Mode) uint8 { c.A.Load(c.X.Value()); c.P.SetNZ(c.A.Value()); return 0 }
func opTYA(c *CPU, _ operand, _ Mode) uint8 { c.A.Load(c.Y.Value()); c.P.SetNZ(c.A.Value()); return 0 }
func opTSX(c *CPU, _ operand, _ Mode) uint8 { c.X.Load(c.S.Value()); c.P.SetNZ(c.X.Value()); return 0 }
func opTXS(c *CPU, _ operand, _ Mode) uint8 { c.S.Load(c.X.Value()); return 0 }

func opPHA(c *CPU, _ operand, _ Mode) uint8 { c.push8(c.A.Value()); return 0 }
func opPHP(c *CPU, _ operand, _ Mode) uint8 { c.push8(c.P.ValueForPush(true)); return 0 }

func opPLA(c *CPU, _ operand, _ Mode) uint8 {
	c.A.Load(c.pull8())
	c.P.SetNZ(c.A.Value())
	return 0
}

func opPLP(c *CPU, _ operand, _ Mode) uint8 {
	c.P.Load(c.pull8())
	return 0
}

func shiftLeft(c *CPU, op operand, in uint8) uint8 {
	carry := in&0x80 != 0
	out := in << 1
	c.P.Carry = carry
	c.P.SetNZ(out)
	return out
}

func opASL(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	c.store(op, shiftLeft(c, op, v))
	return 0
}

func opLSR(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x01 != 0
	out := v >> 1
	c.P.Carry = carry
	c.P.SetNZ(out)
	c.store(op, out)
	return 0
}

func opROL(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x80 != 0
	out := v << 1
	if c.P.Carry {
		out |= 0x01
	}
	c.P.Carry = carry
	c.P.SetNZ(out)
	c.store(op, out)
	return 0
}

func opROR(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x01 != 0
	out := v >> 1
	if c.P.Carry {
		out |= 0x80
	}
	c.P.Carry = carry
	c.P.SetNZ(out)
	c.store(op, out)
	return 0
}

func opINC(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op) + 1
	c.store(op, v)
	c.P.SetNZ(v)
	return 0
}

func opDEC(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op) - 1
	c.store(op, v)
	c.P.SetNZ(v)
	return 0
}

func opINX(c *CPU, _ operand, _ Mode) uint8 { c.X.Load(c.X.Value() + 1); c.P.SetNZ(c.X.Value()); return 0 }
func opINY(c *CPU, _ operand, _ Mode) uint8 { c.Y.Load(c.Y.Value() + 1); c.P.SetNZ(c.Y.Value()); return 0 }
func opDEX(c *CPU, _ operand, _ Mode) uint8 { c.X.Load(c.X.Value() - 1); c.P.SetNZ(c.X.Value()); return 0 }
func opDEY(c *CPU, _ operand, _ Mode) uint8 { c.Y.Load(c.Y.Value() - 1); c.P.SetNZ(c.Y.Value()); return 0 }

func compare(c *CPU, reg, v uint8) {
	result := reg - v
	c.P.Carry = reg >= v
	c.P.SetNZ(result)
}

func opCMP(c *CPU, op operand, _ Mode) uint8 { compare(c, c.A.Value(), c.load(op)); return 0 }
func opCPX(c *CPU, op operand, _ Mode) uint8 { compare(c, c.X.Value(), c.load(op)); return 0 }
func opCPY(c *CPU, op operand, _ Mode) uint8 { compare(c, c.Y.Value(), c.load(op)); return 0 }

func opCLC(c *CPU, _ operand, _ Mode) uint8 { c.P.Carry = false; return 0 }
func opSEC(c *CPU, _ operand, _ Mode) uint8 { c.P.Carry = true; return 0 }
func opCLD(c *CPU, _ operand, _ Mode) uint8 { c.P.DecimalMode = false; return 0 }
func opSED(c *CPU, _ operand, _ Mode) uint8 { c.P.DecimalMode = true; return 0 }
func opCLI(c *CPU, _ operand, _ Mode) uint8 { c.P.InterruptDisable = false; return 0 }
func opSEI(c *CPU, _ operand, _ Mode) uint8 { c.P.InterruptDisable = true; return 0 }
func opCLV(c *CPU, _ operand, _ Mode) uint8 { c.P.Overflow = false; return 0 }

func opNOP(c *CPU, op operand, _ Mode) uint8 {
	// illegal multi-byte NOPs still consume their operand fetch via
	// resolve(); nothing else to do.
	return 0
}

func branch(c *CPU, op operand, taken bool) uint8 {
	if !taken {
		return 0
	}
	pageCross := pageCrossed(c.PC.Value(), op.addr)
	c.PC.Load(op.addr)
	extra := uint8(1)
	if pageCross {
		extra++
	}
	return extra
}

func opBCC(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, !c.P.Carry) }
func opBCS(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, c.P.Carry) }
func opBEQ(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, c.P.Zero) }
func opBNE(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, !c.P.Zero) }
func opBMI(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, c.P.Sign) }
func opBPL(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, !c.P.Sign) }
func opBVC(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, !c.P.Overflow) }
func opBVS(c *CPU, op operand, _ Mode) uint8 { return branch(c, op, c.P.Overflow) }

func opJMP(c *CPU, op operand, _ Mode) uint8 { c.PC.Load(op.addr); return 0 }

func opJSR(c *CPU, op operand, _ Mode) uint8 {
	c.push16(c.PC.Value() - 1)
	c.PC.Load(op.addr)
	return 0
}

func opRTS(c *CPU, _ operand, _ Mode) uint8 {
	c.PC.Load(c.pull16() + 1)
	return 0
}

func opRTI(c *CPU, _ operand, _ Mode) uint8 {
	c.P.Load(c.pull8())
	c.PC.Load(c.pull16())
	return 0
}

func opBRK(c *CPU, _ operand, _ Mode) uint8 {
	c.PC.Add(1) // BRK pushes PC+2 (one byte already consumed by fetch)
	c.push16(c.PC.Value())
	c.push8(c.P.ValueForPush(true))
	c.P.InterruptDisable = true
	c.PC.Load(c.Bus.ReadAddr(0xfffe))
	return 0
}

// --- illegal opcodes ---

func opSLO(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x80 != 0
	v <<= 1
	c.store(op, v)
	c.P.Carry = carry
	c.A.ORA(v)
	c.P.SetNZ(c.A.Value())
	return 0
}

func opRLA(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x80 != 0
	out := v << 1
	if c.P.Carry {
		out |= 0x01
	}
	c.store(op, out)
	c.P.Carry = carry
	c.A.AND(out)
	c.P.SetNZ(c.A.Value())
	return 0
}

func opSRE(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	carry := v&0x01 != 0
	v >>= 1
	c.store(op, v)
	c.P.Carry = carry
	c.A.EOR(v)
	c.P.SetNZ(c.A.Value())
	return 0
}

func opRRA(c *CPU, op operand, mode Mode) uint8 {
	v := c.load(op)
	carry := v&0x01 != 0
	out := v >> 1
	if c.P.Carry {
		out |= 0x80
	}
	c.store(op, out)
	c.P.Carry = carry
	opADC(c, operand{mode: op.mode, addr: op.addr, imm: out}, mode)
	return 0
}

func opSAX(c *CPU, op operand, _ Mode) uint8 {
	c.store(op, c.A.Value()&c.X.Value())
	return 0
}

func opLAX(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	c.A.Load(v)
	c.X.Load(v)
	c.P.SetNZ(v)
	return 0
}

func opDCP(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op) - 1
	c.store(op, v)
	compare(c, c.A.Value(), v)
	return 0
}

func opISC(c *CPU, op operand, mode Mode) uint8 {
	v := c.load(op) + 1
	c.store(op, v)
	opSBC(c, operand{mode: op.mode, addr: op.addr, imm: v}, mode)
	return 0
}

func opANC(c *CPU, op operand, _ Mode) uint8 {
	c.A.AND(c.load(op))
	c.P.SetNZ(c.A.Value())
	c.P.Carry = c.A.IsNegative()
	return 0
}

func opALR(c *CPU, op operand, _ Mode) uint8 {
	c.A.AND(c.load(op))
	carry := c.A.Value()&0x01 != 0
	c.A.Load(c.A.Value() >> 1)
	c.P.Carry = carry
	c.P.SetNZ(c.A.Value())
	return 0
}

func opARR(c *CPU, op operand, _ Mode) uint8 {
	c.A.AND(c.load(op))
	out := c.A.Value() >> 1
	if c.P.Carry {
		out |= 0x80
	}
	c.A.Load(out)
	c.P.SetNZ(out)
	c.P.Carry = out&0x40 != 0
	c.P.Overflow = (out&0x40 != 0) != (out&0x20 != 0)
	return 0
}

func opSBX(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op)
	r := (c.A.Value() & c.X.Value())
	c.P.Carry = r >= v
	c.X.Load(r - v)
	c.P.SetNZ(c.X.Value())
	return 0
}

func opLAS(c *CPU, op operand, _ Mode) uint8 {
	v := c.load(op) & c.S.Value()
	c.A.Load(v)
	c.X.Load(v)
	c.S.Load(v)
	c.P.SetNZ(v)
	return 0
}

// opXAA, opLXA, opSHA, opSHX, opSHY, opSHS implement the unstable
// illegal opcodes using the commonly-cited "no DMA crossing" model:
// they behave deterministically only when no page boundary is
// crossed by the indexed effective address; callers relying on the
// unstable high-byte-ANDing behaviour across a page boundary are
// relying on silicon-specific noise this core does not reproduce.
func opXAA(c *CPU, op operand, _ Mode) uint8 {
	c.A.Load((c.A.Value() | 0xee) & c.X.Value() & c.load(op))
	c.P.SetNZ(c.A.Value())
	return 0
}

func opLXA(c *CPU, op operand, _ Mode) uint8 {
	v := (c.A.Value() | 0xee) & c.load(op)
	c.A.Load(v)
	c.X.Load(v)
	c.P.SetNZ(v)
	return 0
}

func shaLike(c *CPU, op operand, reg uint8) uint8 {
	hi := uint8(op.addr>>8) + 1
	v := reg & hi
	c.store(op, v)
	return 0
}

func opSHA(c *CPU, op operand, _ Mode) uint8 { return shaLike(c, op, c.A.Value()&c.X.Value()) }
func opSHX(c *CPU, op operand, _ Mode) uint8 { return shaLike(c, op, c.X.Value()) }
func opSHY(c *CPU, op operand, _ Mode) uint8 { return shaLike(c, op, c.Y.Value()) }

func opSHS(c *CPU, op operand, _ Mode) uint8 {
	c.S.Load(c.A.Value() & c.X.Value())
	return shaLike(c, op, c.S.Value())
}

// opKIL halts the CPU: the documented behaviour of the JAM/KIL/HLT
// opcodes is that the processor locks up and must be reset.
func opKIL(c *CPU, _ operand, _ Mode) uint8 {
	c.kill()
	return 0
}
