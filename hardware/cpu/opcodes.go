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

// opcodeEntry is one row of the 256-entry dispatch table: mnemonic
// (for diagnostics), addressing mode, base cycle count, whether a
// page-crossing indexed read adds one cycle, the handler, and whether
// this is one of the commonly-relied-on illegal opcodes (gated by
// CPU.IllegalOpcodes).
type opcodeEntry struct {
	mnemonic         string
	mode             Mode
	cycles           uint8
	pageCrossPenalty bool
	handler          handler
	illegal          bool
}

func op(mnemonic string, mode Mode, cycles uint8, pageCross bool, h handler) opcodeEntry {
	return opcodeEntry{mnemonic: mnemonic, mode: mode, cycles: cycles, pageCrossPenalty: pageCross, handler: h}
}

func iop(mnemonic string, mode Mode, cycles uint8, pageCross bool, h handler) opcodeEntry {
	e := op(mnemonic, mode, cycles, pageCross, h)
	e.illegal = true
	return e
}

// opcodeTable is indexed directly by opcode byte.
var opcodeTable = [256]opcodeEntry{
	0x00: op("BRK", Implied, 7, false, opBRK),
	0x01: op("ORA", IndirectX, 6, false, opORA),
	0x02: iop("KIL", Implied, 2, false, opKIL),
	0x03: iop("SLO", IndirectX, 8, false, opSLO),
	0x04: iop("NOP", ZeroPage, 3, false, opNOP),
	0x05: op("ORA", ZeroPage, 3, false, opORA),
	0x06: op("ASL", ZeroPage, 5, false, opASL),
	0x07: iop("SLO", ZeroPage, 5, false, opSLO),
	0x08: op("PHP", Implied, 3, false, opPHP),
	0x09: op("ORA", Immediate, 2, false, opORA),
	0x0a: op("ASL", Accumulator, 2, false, opASL),
	0x0b: iop("ANC", Immediate, 2, false, opANC),
	0x0c: iop("NOP", Absolute, 4, false, opNOP),
	0x0d: op("ORA", Absolute, 4, false, opORA),
	0x0e: op("ASL", Absolute, 6, false, opASL),
	0x0f: iop("SLO", Absolute, 6, false, opSLO),

	0x10: op("BPL", Relative, 2, false, opBPL),
	0x11: op("ORA", IndirectY, 5, true, opORA),
	0x12: iop("KIL", Implied, 2, false, opKIL),
	0x13: iop("SLO", IndirectY, 8, false, opSLO),
	0x14: iop("NOP", ZeroPageX, 4, false, opNOP),
	0x15: op("ORA", ZeroPageX, 4, false, opORA),
	0x16: op("ASL", ZeroPageX, 6, false, opASL),
	0x17: iop("SLO", ZeroPageX, 6, false, opSLO),
	0x18: op("CLC", Implied, 2, false, opCLC),
	0x19: op("ORA", AbsoluteY, 4, true, opORA),
	0x1a: iop("NOP", Implied, 2, false, opNOP),
	0x1b: iop("SLO", AbsoluteY, 7, false, opSLO),
	0x1c: iop("NOP", AbsoluteX, 4, true, opNOP),
	0x1d: op("ORA", AbsoluteX, 4, true, opORA),
	0x1e: op("ASL", AbsoluteX, 7, false, opASL),
	0x1f: iop("SLO", AbsoluteX, 7, false, opSLO),

	0x20: op("JSR", Absolute, 6, false, opJSR),
	0x21: op("AND", IndirectX, 6, false, opAND),
	0x22: iop("KIL", Implied, 2, false, opKIL),
	0x23: iop("RLA", IndirectX, 8, false, opRLA),
	0x24: op("BIT", ZeroPage, 3, false, opBIT),
	0x25: op("AND", ZeroPage, 3, false, opAND),
	0x26: op("ROL", ZeroPage, 5, false, opROL),
	0x27: iop("RLA", ZeroPage, 5, false, opRLA),
	0x28: op("PLP", Implied, 4, false, opPLP),
	0x29: op("AND", Immediate, 2, false, opAND),
	0x2a: op("ROL", Accumulator, 2, false, opROL),
	0x2b: iop("ANC", Immediate, 2, false, opANC),
	0x2c: op("BIT", Absolute, 4, false, opBIT),
	0x2d: op("AND", Absolute, 4, false, opAND),
	0x2e: op("ROL", Absolute, 6, false, opROL),
	0x2f: iop("RLA", Absolute, 6, false, opRLA),

	0x30: op("BMI", Relative, 2, false, opBMI),
	0x31: op("AND", IndirectY, 5, true, opAND),
	0x32: iop("KIL", Implied, 2, false, opKIL),
	0x33: iop("RLA", IndirectY, 8, false, opRLA),
	0x34: iop("NOP", ZeroPageX, 4, false, opNOP),
	0x35: op("AND", ZeroPageX, 4, false, opAND),
	0x36: op("ROL", ZeroPageX, 6, false, opROL),
	0x37: iop("RLA", ZeroPageX, 6, false, opRLA),
	0x38: op("SEC", Implied, 2, false, opSEC),
	0x39: op("AND", AbsoluteY, 4, true, opAND),
	0x3a: iop("NOP", Implied, 2, false, opNOP),
	0x3b: iop("RLA", AbsoluteY, 7, false, opRLA),
	0x3c: iop("NOP", AbsoluteX, 4, true, opNOP),
	0x3d: op("AND", AbsoluteX, 4, true, opAND),
	0x3e: op("ROL", AbsoluteX, 7, false, opROL),
	0x3f: iop("RLA", AbsoluteX, 7, false, opRLA),

	0x40: op("RTI", Implied, 6, false, opRTI),
	0x41: op("EOR", IndirectX, 6, false, opEOR),
	0x42: iop("KIL", Implied, 2, false, opKIL),
	0x43: iop("SRE", IndirectX, 8, false, opSRE),
	0x44: iop("NOP", ZeroPage, 3, false, opNOP),
	0x45: op("EOR", ZeroPage, 3, false, opEOR),
	0x46: op("LSR", ZeroPage, 5, false, opLSR),
	0x47: iop("SRE", ZeroPage, 5, false, opSRE),
	0x48: op("PHA", Implied, 3, false, opPHA),
	0x49: op("EOR", Immediate, 2, false, opEOR),
	0x4a: op("LSR", Accumulator, 2, false, opLSR),
	0x4b: iop("ALR", Immediate, 2, false, opALR),
	0x4c: op("JMP", Absolute, 3, false, opJMP),
	0x4d: op("EOR", Absolute, 4, false, opEOR),
	0x4e: op("LSR", Absolute, 6, false, opLSR),
	0x4f: iop("SRE", Absolute, 6, false, opSRE),

	0x50: op("BVC", Relative, 2, false, opBVC),
	0x51: op("EOR", IndirectY, 5, true, opEOR),
	0x52: iop("KIL", Implied, 2, false, opKIL),
	0x53: iop("SRE", IndirectY, 8, false, opSRE),
	0x54: iop("NOP", ZeroPageX, 4, false, opNOP),
	0x55: op("EOR", ZeroPageX, 4, false, opEOR),
	0x56: op("LSR", ZeroPageX, 6, false, opLSR),
	0x57: iop("SRE", ZeroPageX, 6, false, opSRE),
	0x58: op("CLI", Implied, 2, false, opCLI),
	0x59: op("EOR", AbsoluteY, 4, true, opEOR),
	0x5a: iop("NOP", Implied, 2, false, opNOP),
	0x5b: iop("SRE", AbsoluteY, 7, false, opSRE),
	0x5c: iop("NOP", AbsoluteX, 4, true, opNOP),
	0x5d: op("EOR", AbsoluteX, 4, true, opEOR),
	0x5e: op("LSR", AbsoluteX, 7, false, opLSR),
	0x5f: iop("SRE", AbsoluteX, 7, false, opSRE),

	0x60: op("RTS", Implied, 6, false, opRTS),
	0x61: op("ADC", IndirectX, 6, false, opADC),
	0x62: iop("KIL", Implied, 2, false, opKIL),
	0x63: iop("RRA", IndirectX, 8, false, opRRA),
	0x64: iop("NOP", ZeroPage, 3, false, opNOP),
	0x65: op("ADC", ZeroPage, 3, false, opADC),
	0x66: op("ROR", ZeroPage, 5, false, opROR),
	0x67: iop("RRA", ZeroPage, 5, false, opRRA),
	0x68: op("PLA", Implied, 4, false, opPLA),
	0x69: op("ADC", Immediate, 2, false, opADC),
	0x6a: op("ROR", Accumulator, 2, false, opROR),
	0x6b: iop("ARR", Immediate, 2, false, opARR),
	0x6c: op("JMP", Indirect, 5, false, opJMP),
	0x6d: op("ADC", Absolute, 4, false, opADC),
	0x6e: op("ROR", Absolute, 6, false, opROR),
	0x6f: iop("RRA", Absolute, 6, false, opRRA),

	0x70: op("BVS", Relative, 2, false, opBVS),
	0x71: op("ADC", IndirectY, 5, true, opADC),
	0x72: iop("KIL", Implied, 2, false, opKIL),
	0x73: iop("RRA", IndirectY, 8, false, opRRA),
	0x74: iop("NOP", ZeroPageX, 4, false, opNOP),
	0x75: op("ADC", ZeroPageX, 4, false, opADC),
	0x76: op("ROR", ZeroPageX, 6, false, opROR),
	0x77: iop("RRA", ZeroPageX, 6, false, opRRA),
	0x78: op("SEI", Implied, 2, false, opSEI),
	0x79: op("ADC", AbsoluteY, 4, true, opADC),
	0x7a: iop("NOP", Implied, 2, false, opNOP),
	0x7b: iop("RRA", AbsoluteY, 7, false, opRRA),
	0x7c: iop("NOP", AbsoluteX, 4, true, opNOP),
	0x7d: op("ADC", AbsoluteX, 4, true, opADC),
	0x7e: op("ROR", AbsoluteX, 7, false, opROR),
	0x7f: iop("RRA", AbsoluteX, 7, false, opRRA),

	0x80: iop("NOP", Immediate, 2, false, opNOP),
	0x81: op("STA", IndirectX, 6, false, opSTA),
	0x82: iop("NOP", Immediate, 2, false, opNOP),
	0x83: iop("SAX", IndirectX, 6, false, opSAX),
	0x84: op("STY", ZeroPage, 3, false, opSTY),
	0x85: op("STA", ZeroPage, 3, false, opSTA),
	0x86: op("STX", ZeroPage, 3, false, opSTX),
	0x87: iop("SAX", ZeroPage, 3, false, opSAX),
	0x88: op("DEY", Implied, 2, false, opDEY),
	0x89: iop("NOP", Immediate, 2, false, opNOP),
	0x8a: op("TXA", Implied, 2, false, opTXA),
	0x8b: iop("XAA", Immediate, 2, false, opXAA),
	0x8c: op("STY", Absolute, 4, false, opSTY),
	0x8d: op("STA", Absolute, 4, false, opSTA),
	0x8e: op("STX", Absolute, 4, false, opSTX),
	0x8f: iop("SAX", Absolute, 4, false, opSAX),

	0x90: op("BCC", Relative, 2, false, opBCC),
	0x91: op("STA", IndirectY, 6, false, opSTA),
	0x92: iop("KIL", Implied, 2, false, opKIL),
	0x93: iop("SHA", IndirectY, 6, false, opSHA),
	0x94: op("STY", ZeroPageX, 4, false, opSTY),
	0x95: op("STA", ZeroPageX, 4, false, opSTA),
	0x96: op("STX", ZeroPageY, 4, false, opSTX),
	0x97: iop("SAX", ZeroPageY, 4, false, opSAX),
	0x98: op("TYA", Implied, 2, false, opTYA),
	0x99: op("STA", AbsoluteY, 5, false, opSTA),
	0x9a: op("TXS", Implied, 2, false, opTXS),
	0x9b: iop("SHS", AbsoluteY, 5, false, opSHS),
	0x9c: iop("SHY", AbsoluteX, 5, false, opSHY),
	0x9d: op("STA", AbsoluteX, 5, false, opSTA),
	0x9e: iop("SHX", AbsoluteY, 5, false, opSHX),
	0x9f: iop("SHA", AbsoluteY, 5, false, opSHA),

	0xa0: op("LDY", Immediate, 2, false, opLDY),
	0xa1: op("LDA", IndirectX, 6, false, opLDA),
	0xa2: op("LDX", Immediate, 2, false, opLDX),
	0xa3: iop("LAX", IndirectX, 6, false, opLAX),
	0xa4: op("LDY", ZeroPage, 3, false, opLDY),
	0xa5: op("LDA", ZeroPage, 3, false, opLDA),
	0xa6: op("LDX", ZeroPage, 3, false, opLDX),
	0xa7: iop("LAX", ZeroPage, 3, false, opLAX),
	0xa8: op("TAY", Implied, 2, false, opTAY),
	0xa9: op("LDA", Immediate, 2, false, opLDA),
	0xaa: op("TAX", Implied, 2, false, opTAX),
	0xab: iop("LXA", Immediate, 2, false, opLXA),
	0xac: op("LDY", Absolute, 4, false, opLDY),
	0xad: op("LDA", Absolute, 4, false, opLDA),
	0xae: op("LDX", Absolute, 4, false, opLDX),
	0xaf: iop("LAX", Absolute, 4, false, opLAX),

	0xb0: op("BCS", Relative, 2, false, opBCS),
	0xb1: op("LDA", IndirectY, 5, true, opLDA),
	0xb2: iop("KIL", Implied, 2, false, opKIL),
	0xb3: iop("LAX", IndirectY, 5, true, opLAX),
	0xb4: op("LDY", ZeroPageX, 4, false, opLDY),
	0xb5: op("LDA", ZeroPageX, 4, false, opLDA),
	0xb6: op("LDX", ZeroPageY, 4, false, opLDX),
	0xb7: iop("LAX", ZeroPageY, 4, false, opLAX),
	0xb8: op("CLV", Implied, 2, false, opCLV),
	0xb9: op("LDA", AbsoluteY, 4, true, opLDA),
	0xba: op("TSX", Implied, 2, false, opTSX),
	0xbb: iop("LAS", AbsoluteY, 4, true, opLAS),
	0xbc: op("LDY", AbsoluteX, 4, true, opLDY),
	0xbd: op("LDA", AbsoluteX, 4, true, opLDA),
	0xbe: op("LDX", AbsoluteY, 4, true, opLDX),
	0xbf: iop("LAX", AbsoluteY, 4, true, opLAX),

	0xc0: op("CPY", Immediate, 2, false, opCPY),
	0xc1: op("CMP", IndirectX, 6, false, opCMP),
	0xc2: iop("NOP", Immediate, 2, false, opNOP),
	0xc3: iop("DCP", IndirectX, 8, false, opDCP),
	0xc4: op("CPY", ZeroPage, 3, false, opCPY),
	0xc5: op("CMP", ZeroPage, 3, false, opCMP),
	0xc6: op("DEC", ZeroPage, 5, false, opDEC),
	0xc7: iop("DCP", ZeroPage, 5, false, opDCP),
	0xc8: op("INY", Implied, 2, false, opINY),
	0xc9: op("CMP", Immediate, 2, false, opCMP),
	0xca: op("DEX", Implied, 2, false, opDEX),
	0xcb: iop("SBX", Immediate, 2, false, opSBX),
	0xcc: op("CPY", Absolute, 4, false, opCPY),
	0xcd: op("CMP", Absolute, 4, false, opCMP),
	0xce: op("DEC", Absolute, 6, false, opDEC),
	0xcf: iop("DCP", Absolute, 6, false, opDCP),

	0xd0: op("BNE", Relative, 2, false, opBNE),
	0xd1: op("CMP", IndirectY, 5, true, opCMP),
	0xd2: iop("KIL", Implied, 2, false, opKIL),
	0xd3: iop("DCP", IndirectY, 8, false, opDCP),
	0xd4: iop("NOP", ZeroPageX, 4, false, opNOP),
	0xd5: op("CMP", ZeroPageX, 4, false, opCMP),
	0xd6: op("DEC", ZeroPageX, 6, false, opDEC),
	0xd7: iop("DCP", ZeroPageX, 6, false, opDCP),
	0xd8: op("CLD", Implied, 2, false, opCLD),
	0xd9: op("CMP", AbsoluteY, 4, true, opCMP),
	0xda: iop("NOP", Implied, 2, false, opNOP),
	0xdb: iop("DCP", AbsoluteY, 7, false, opDCP),
	0xdc: iop("NOP", AbsoluteX, 4, true, opNOP),
	0xdd: op("CMP", AbsoluteX, 4, true, opCMP),
	0xde: op("DEC", AbsoluteX, 7, false, opDEC),
	0xdf: iop("DCP", AbsoluteX, 7, false, opDCP),

	0xe0: op("CPX", Immediate, 2, false, opCPX),
	0xe1: op("SBC", IndirectX, 6, false, opSBC),
	0xe2: iop("NOP", Immediate, 2, false, opNOP),
	0xe3: iop("ISC", IndirectX, 8, false, opISC),
	0xe4: op("CPX", ZeroPage, 3, false, opCPX),
	0xe5: op("SBC", ZeroPage, 3, false, opSBC),
	0xe6: op("INC", ZeroPage, 5, false, opINC),
	0xe7: iop("ISC", ZeroPage, 5, false, opISC),
	0xe8: op("INX", Implied, 2, false, opINX),
	0xe9: op("SBC", Immediate, 2, false, opSBC),
	0xea: op("NOP", Implied, 2, false, opNOP),
	0xeb: iop("SBC", Immediate, 2, false, opSBC),
	0xec: op("CPX", Absolute, 4, false, opCPX),
	0xed: op("SBC", Absolute, 4, false, opSBC),
	0xee: op("INC", Absolute, 6, false, opINC),
	0xef: iop("ISC", Absolute, 6, false, opISC),

	0xf0: op("BEQ", Relative, 2, false, opBEQ),
	0xf1: op("SBC", IndirectY, 5, true, opSBC),
	0xf2: iop("KIL", Implied, 2, false, opKIL),
	0xf3: iop("ISC", IndirectY, 8, false, opISC),
	0xf4: iop("NOP", ZeroPageX, 4, false, opNOP),
	0xf5: op("SBC", ZeroPageX, 4, false, opSBC),
	0xf6: op("INC", ZeroPageX, 6, false, opINC),
	0xf7: iop("ISC", ZeroPageX, 6, false, opISC),
	0xf8: op("SED", Implied, 2, false, opSED),
	0xf9: op("SBC", AbsoluteY, 4, true, opSBC),
	0xfa: iop("NOP", Implied, 2, false, opNOP),
	0xfb: iop("ISC", AbsoluteY, 7, false, opISC),
	0xfc: iop("NOP", AbsoluteX, 4, true, opNOP),
	0xfd: op("SBC", AbsoluteX, 4, true, opSBC),
	0xfe: op("INC", AbsoluteX, 7, false, opINC),
	0xff: iop("ISC", AbsoluteX, 7, false, opISC),
}
