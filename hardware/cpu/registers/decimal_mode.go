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

// AddDecimal and SubtractDecimal implement packed-BCD ADC/SBC. The N,
// V and Z flags follow the documented NMOS 6502 post-fix-up values,
// which differ from what plain binary arithmetic on the fixed-up
// result would produce.
//
// Appendix A of http://www.6502.org/tutorials/decimal_mode.html is the
// reference for the Seq.1/Seq.2/Seq.3 fix-up sequences below.

// AddDecimal performs BCD addition, returning carry, zero, overflow,
// sign in that order.
func (r *Data) AddDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	// the zero flag follows ordinary binary addition
	br := *r
	_, _ = br.Add(val, carry)
	rzero = br.IsZero()

	// Seq.1
	al := (r.value & 0x0f) + (val & 0x0f)
	if carry {
		al++
	}
	if al >= 0x0a {
		al = ((al + 0x06) & 0x0f) + 0x10
	}

	a1 := (uint16(r.value) & 0xf0) + (uint16(val) & 0xf0) + uint16(al)
	if a1 >= 0xa0 {
		a1 += 0x60
	}
	rcarry = a1 >= 0x100

	// Seq.2: N and V are derived from the unwrapped sum, not the
	// decimal-adjusted one.
	a2 := int16(r.value&0xf0) + int16(val&0xf0) + int16(al)
	rsign = a2&0x80 == 0x80
	roverflow = ((r.value ^ uint8(a2)) & (val ^ uint8(a2)) & 0x80) != 0

	r.value = uint8(a1)
	return rcarry, rzero, roverflow, rsign
}

// SubtractDecimal performs BCD subtraction, returning carry, zero,
// overflow, sign in that order.
func (r *Data) SubtractDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	br := *r
	rcarry, roverflow = br.Subtract(val, carry)
	rzero = br.IsZero()
	rsign = br.IsNegative()

	// Seq.3
	al := (int16(r.value) & 0x0f) - (int16(val) & 0x0f) - 1
	if carry {
		al++
	}
	if al < 0x00 {
		al = ((al - 0x06) & 0x0f) - 0x10
	}

	a := (int16(r.value) & 0xf0) - (int16(val) & 0xf0) + al
	if a < 0x00 {
		a -= 0x60
	}

	r.value = uint8(a)
	return rcarry, rzero, roverflow, rsign
}
