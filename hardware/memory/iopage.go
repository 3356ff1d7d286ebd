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

package memory

// IOPage is the $D000..$DFFF demultiplexer: the C-64 chip-select logic
// that splits the 4KiB I/O window into VIC-II, SID, colour RAM, CIA1,
// CIA2 and cartridge I/O sub-regions, mirroring each device's register
// block across the rest of its window.
type IOPage struct {
	vic      Device // $D000..$D3FF, registers mirrored every 64 bytes
	sid      Device // $D400..$D7FF, registers mirrored every 32 bytes
	colorRAM Device // $D800..$DBFF, 1KiB nibble RAM
	cia1     Device // $DC00..$DCFF, registers mirrored every 16 bytes
	cia2     Device // $DD00..$DDFF, registers mirrored every 16 bytes
	io1      Device // $DE00..$DEFF, cartridge I/O-1 (Null when absent)
	io2      Device // $DF00..$DFFF, cartridge I/O-2 (Null when absent)
}

// NewIOPage builds the demultiplexer. Any nil device is replaced with
// Null so that an absent cartridge, or a machine built without a chip
// wired up yet, still resolves every offset.
func NewIOPage(vic, sid, colorRAM, cia1, cia2, io1, io2 Device) *IOPage {
	p := &IOPage{vic: vic, sid: sid, colorRAM: colorRAM, cia1: cia1, cia2: cia2, io1: io1, io2: io2}
	if p.vic == nil {
		p.vic = Null
	}
	if p.sid == nil {
		p.sid = Null
	}
	if p.colorRAM == nil {
		p.colorRAM = Null
	}
	if p.cia1 == nil {
		p.cia1 = Null
	}
	if p.cia2 == nil {
		p.cia2 = Null
	}
	if p.io1 == nil {
		p.io1 = Null
	}
	if p.io2 == nil {
		p.io2 = Null
	}
	return p
}

func (p *IOPage) Label() string { return "io-page" }
func (p *IOPage) Size() int     { return 0x1000 }

func (p *IOPage) resolve(offset uint16) (Device, uint16) {
	switch {
	case offset < 0x0400:
		return p.vic, offset % 0x40
	case offset < 0x0800:
		return p.sid, offset % 0x20
	case offset < 0x0c00:
		return p.colorRAM, offset - 0x0800
	case offset < 0x0d00:
		return p.cia1, offset % 0x10
	case offset < 0x0e00:
		return p.cia2, offset % 0x10
	case offset < 0x0f00:
		return p.io1, offset - 0x0e00
	default:
		return p.io2, offset - 0x0f00
	}
}

func (p *IOPage) Read(offset uint16) uint8 {
	dev, local := p.resolve(offset)
	return dev.Read(local)
}

func (p *IOPage) Write(offset uint16, data uint8) {
	dev, local := p.resolve(offset)
	dev.Write(local, data)
}

func (p *IOPage) Dump() []uint8 {
	out := make([]uint8, p.Size())
	for i := range out {
		out[i] = p.Read(uint16(i))
	}
	return out
}
