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

package registers

import "strings"

// Status is the 6502 flag byte: N V - B D I Z C. Bit 5 is unused and
// always reads as 1.
type Status struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// NewStatus returns the power-up status: all flags clear.
func NewStatus() Status {
	var sr Status
	sr.Load(0x00)
	return sr
}

func (sr Status) Label() string { return "P" }

func (sr Status) String() string {
	var s strings.Builder
	bit := func(set bool, c byte) {
		if set {
			s.WriteByte(c)
		} else {
			s.WriteByte(c | 0x20)
		}
	}
	bit(sr.Sign, 'N')
	bit(sr.Overflow, 'V')
	s.WriteByte('-')
	bit(sr.Break, 'B')
	bit(sr.DecimalMode, 'D')
	bit(sr.InterruptDisable, 'I')
	bit(sr.Zero, 'Z')
	bit(sr.Carry, 'C')
	return s.String()
}

// Value packs the flags into a byte suitable for pushing onto the
// stack (PHP, or the interrupt sequence's automatic push).
func (sr Status) Value() uint8 {
	var v uint8
	if sr.Sign {
		v |= 0x80
	}
	if sr.Overflow {
		v |= 0x40
	}
	if sr.Break {
		v |= 0x10
	}
	if sr.DecimalMode {
		v |= 0x08
	}
	if sr.InterruptDisable {
		v |= 0x04
	}
	if sr.Zero {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}
	v |= 0x20 // bit 5 always reads 1
	return v
}

// ValueForPush packs the flags as they appear on the stack for a
// software-visible BRK/PHP (break bit set) versus a hardware interrupt
// (break bit clear).
func (sr Status) ValueForPush(brk bool) uint8 {
	v := sr.Value()
	if brk {
		return v | 0x10
	}
	return v &^ 0x10
}

// Load unpacks a stack byte (PLP, or RTI's pulled status) into flags.
// The break flag itself is not restorable from the stack on real
// hardware; callers that need BRK/IRQ discrimination should inspect
// the pushed byte directly rather than relying on this field after Load.
func (sr *Status) Load(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Overflow = v&0x40 == 0x40
	sr.Break = v&0x10 == 0x10
	sr.DecimalMode = v&0x08 == 0x08
	sr.InterruptDisable = v&0x04 == 0x04
	sr.Zero = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
}

// SetNZ sets the Sign and Zero flags from the given result byte, the
// pattern shared by almost every load/transfer/logical instruction.
func (sr *Status) SetNZ(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Zero = v == 0
}
