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

// Package vic implements the MOS 6569 (VIC-II) video pipeline: the
// per-cycle raster state machine, bad-line DMA stealing, the batch
// scanline renderer for character/bitmap/multicolor modes, sprite
// rendering with sprite-sprite and sprite-background collision
// detection, and the raster/light-pen/collision interrupt sources.
package vic

import "github.com/cdio/caio/hardware/clock"

// PAL geometry constants for the 6569: 63 cycles per line, 312 lines
// per frame, 8 pixels per cycle.
const (
	FrameWidth   = 504
	FrameHeight  = 312
	VisibleWidth = 403
	Width        = VisibleWidth

	VisibleYStart = 16
	VisibleYEnd   = VisibleYStart + 284

	DisplayWidth  = 320
	DisplayHeight = 200
	DisplayXStart = 42
	DisplayXEnd   = DisplayXStart + DisplayWidth
	DisplayYStart = 48
	DisplayYEnd   = DisplayYStart + DisplayHeight

	UBorderYEnd   = 51
	BBorderYStart = 251

	MibXStart = 18
	MibYStart = 6
	MibWidth  = 24
	MibHeight = 21

	MibPointerOffset = 0x3f8

	CharmodeColumns = 40
	CharmodeRows    = 25

	PixelsPerCycle = 8
	ScanlineCycles = FrameWidth / PixelsPerCycle // 63
	FrameCycles    = FrameHeight * ScanlineCycles
)

// Register offsets, matching the chip's memory-mapped layout at
// $D000.
const (
	RegMib0X = iota
	RegMib0Y
	RegMib1X
	RegMib1Y
	RegMib2X
	RegMib2Y
	RegMib3X
	RegMib3Y
	RegMib4X
	RegMib4Y
	RegMib5X
	RegMib5Y
	RegMib6X
	RegMib6Y
	RegMib7X
	RegMib7Y

	RegMibMSBX
	RegControl1
	RegRaster
	RegLightPenX
	RegLightPenY
	RegMibEnable
	RegControl2
	RegMibYExpansion
	RegMemPointers
	RegInterrupt
	RegInterruptEnable
	RegMibDataPri
	RegMibMulticolor
	RegMibXExpansion
	RegMibMibCollision
	RegMibDataCollision

	RegBorderColor
	RegBackground0
	RegBackground1
	RegBackground2
	RegBackground3
	RegMibMulticolor0
	RegMibMulticolor1
	RegMib0Color
	RegMib1Color
	RegMib2Color
	RegMib3Color
	RegMib4Color
	RegMib5Color
	RegMib6Color
	RegMib7Color

	RegMax
)

const (
	Control1RC8     = 0x80
	Control1ECM     = 0x40
	Control1BMM     = 0x20
	Control1DEN     = 0x10
	Control1RSEL    = 0x08
	Control1YScroll = 0x07

	Control2MCM     = 0x10
	Control2CSEL    = 0x08
	Control2XScroll = 0x07

	InterruptIRQ  = 0x80
	InterruptILP  = 0x08
	InterruptIMMC = 0x04
	InterruptIMDC = 0x02
	InterruptIRST = 0x01
	InterruptMask = InterruptILP | InterruptIMMC | InterruptIMDC | InterruptIRST

	MemPointersVideo = 0xf0
	MemPointersChar  = 0x0e
	MemPointersCB13  = 0x08

	ColorMask = 0x0f
)

// Mmap is the VIC's own view of memory: a 14-bit address space already
// bank-selected (per CIA2 port A) and character-ROM-shadowed by the
// wiring layer.
type Mmap interface {
	Read(addr uint16) uint8
}

// ColorRAM is the 1KiB colour-nibble RAM at $D800, read directly by
// the VIC for both character-mode colour codes and bitmap-mode
// multicolor fourth-colour lookups.
type ColorRAM interface {
	Read(offset uint16) uint8
}

// Chip is one MOS 6569 instance.
type Chip struct {
	label string

	regs [RegMax]uint8

	Mmap     Mmap
	ColorRAM ColorRAM
	Palette  Palette

	cycle uint64
	line  uint

	storedRasterline uint
	isDEN            bool
	isBadline        bool
	lpTriggered      bool

	irqPin bool

	// IRQOut is invoked whenever the VIC's IRQ output pin changes.
	IRQOut func(active bool)

	// AECOut is invoked whenever the AEC (bus-grant) pin changes; the
	// wiring layer routes it to the CPU's RDY pin.
	AECOut func(asserted bool)

	// Sync is called once per frame (line wrap 311->0) to request
	// wall-clock pacing from the Clock.
	Sync func(cycles uint64)

	// RenderLine is called once per visible scanline with the
	// finished pixel buffer; the caller must not retain the slice, as
	// it is reused on the next call.
	RenderLine func(line int, pixels []uint32)

	scanline     [Width]uint32
	foreground   [Width]bool // 1 = opaque background pixel, for sprite-background collision
	spriteOpaque [8][]bool
}

// New creates a VIC-II instance. label is used only for diagnostics.
func New(label string) *Chip {
	c := &Chip{label: label, Palette: DefaultPalette}
	for i := range c.spriteOpaque {
		c.spriteOpaque[i] = make([]bool, Width)
	}
	return c
}

func (c *Chip) Label() string { return c.label }
func (c *Chip) Size() int     { return RegMax }

func (c *Chip) Dump() []uint8 {
	out := make([]uint8, RegMax)
	for i := range out {
		out[i] = c.Read(uint16(i))
	}
	return out
}

// Rasterline returns the current 9-bit raster line.
func (c *Chip) Rasterline() uint {
	line := uint(c.regs[RegRaster])
	if c.regs[RegControl1]&Control1RC8 != 0 {
		line += 256
	}
	return line
}

func (c *Chip) setRasterline(line uint) {
	c.regs[RegRaster] = uint8(line & 0xff)
	if line > 255 {
		c.regs[RegControl1] |= Control1RC8
	} else {
		c.regs[RegControl1] &^= Control1RC8
	}
}

func (c *Chip) Read(addr uint16) uint8 {
	if int(addr) >= RegMax {
		return 0xff
	}
	data := c.regs[addr]
	switch addr {
	case RegInterrupt:
		data |= 0x70
	case RegInterruptEnable:
		data |= 0xf0
	case RegMibMibCollision:
		c.regs[addr] = 0
	case RegMibDataCollision:
		c.regs[addr] = 0
	}
	return data
}

func (c *Chip) Write(addr uint16, data uint8) {
	if int(addr) >= RegMax {
		return
	}
	switch addr {
	case RegRaster:
		// writes arm the raster-compare latch; the register itself
		// keeps reporting the live raster counter
		c.storedRasterline = (c.storedRasterline &^ 0xff) | uint(data)
		return

	case RegControl1:
		rc8 := uint(0)
		if data&Control1RC8 != 0 {
			rc8 = 256
		}
		c.storedRasterline = (c.storedRasterline &^ 256) | rc8
		if c.regs[addr]&Control1RC8 != 0 {
			data |= Control1RC8
		} else {
			data &^= Control1RC8
		}

	case RegControl2:
		data |= 0xc0

	case RegMemPointers:
		data |= 1

	case RegInterrupt:
		c.regs[RegInterrupt] &^= data & InterruptMask
		if c.regs[RegInterrupt]&(c.regs[RegInterruptEnable]|InterruptIRQ) == InterruptIRQ {
			c.irqOut(false)
		}
		return

	case RegInterruptEnable:
		data &= InterruptMask
	}

	c.regs[addr] = data
}

func (c *Chip) irqOut(active bool) {
	if active {
		c.regs[RegInterrupt] |= InterruptIRQ
	} else {
		c.regs[RegInterrupt] &^= InterruptIRQ
	}
	if c.irqPin == active {
		return
	}
	c.irqPin = active
	if c.IRQOut != nil {
		c.IRQOut(active)
	}
}

// TriggerLP latches the current beam position on a light-pen edge;
// only the first trigger per frame is honoured.
func (c *Chip) TriggerLP() {
	if c.lpTriggered {
		return
	}
	c.regs[RegLightPenX] = uint8((c.cycle << 3) >> 1)
	c.regs[RegLightPenY] = c.regs[RegRaster]
	c.regs[RegInterrupt] |= InterruptILP
	c.lpTriggered = true
	if c.regs[RegInterrupt]&InterruptIRQ == 0 && c.regs[RegInterruptEnable]&InterruptILP != 0 {
		c.irqOut(true)
	}
}

func (c *Chip) isDisplayEnabled() bool      { return c.regs[RegControl1]&Control1DEN != 0 }
func (c *Chip) isBitmapMode() bool          { return c.regs[RegControl1]&Control1BMM != 0 }
func (c *Chip) isExtendedColor() bool       { return c.regs[RegControl1]&Control1ECM != 0 }
func (c *Chip) isMulticolor() bool          { return c.regs[RegControl2]&Control2MCM != 0 }
func (c *Chip) is24Rows() bool              { return c.regs[RegControl1]&Control1RSEL == 0 }
func (c *Chip) is38Columns() bool           { return c.regs[RegControl2]&Control2CSEL == 0 }
func (c *Chip) scrollX() uint8              { return c.regs[RegControl2] & Control2XScroll }
func (c *Chip) scrollY() uint8              { return c.regs[RegControl1] & Control1YScroll }
func (c *Chip) mibEnabled(bit uint8) bool   { return c.regs[RegMibEnable]&bit != 0 }
func (c *Chip) mibBehindData(bit uint8) bool { return c.regs[RegMibDataPri]&bit != 0 }
func (c *Chip) mibMulticolor(bit uint8) bool { return c.regs[RegMibMulticolor]&bit != 0 }
func (c *Chip) mibExpandX(bit uint8) bool   { return c.regs[RegMibXExpansion]&bit != 0 }
func (c *Chip) mibExpandY(bit uint8) bool   { return c.regs[RegMibYExpansion]&bit != 0 }

func (c *Chip) mibPositionY(n int) uint { return uint(c.regs[RegMib0Y+2*n]) }
func (c *Chip) mibPositionX(n int) uint {
	x := uint(c.regs[RegMib0X+2*n])
	if c.regs[RegMibMSBX]&(1<<uint(n)) != 0 {
		x += 256
	}
	return MibXStart + x
}

func (c *Chip) charBase(ch uint8) uint16 {
	return uint16(c.regs[RegMemPointers]&MemPointersChar)<<10 + uint16(ch)<<3
}

func (c *Chip) videoMatrix() uint16 {
	return uint16(c.regs[RegMemPointers]&MemPointersVideo) << 6
}

func (c *Chip) bitmapBase() uint16 {
	if c.regs[RegMemPointers]&MemPointersCB13 != 0 {
		return 1 << 13
	}
	return 0
}

func (c *Chip) mibBase(n int) uint16 {
	return uint16(c.Mmap.Read(c.videoMatrix()+MibPointerOffset+uint16(n))) << 6
}

func (c *Chip) regColor(reg int) uint32 {
	return c.Palette[c.regs[reg]&ColorMask]
}

func (c *Chip) borderColor() uint32       { return c.regColor(RegBorderColor) }
func (c *Chip) backgroundColor(n int) uint32 { return c.regColor(RegBackground0 + n) }

// Tick implements clock.Tickable: cycles 0..62 per scanline, with the
// entirely off-screen lines fast-forwarded by returning ScanlineCycles
// in one shot so the Clock doesn't burn a full round per cycle on them.
func (c *Chip) Tick(clk *clock.Clock) uint64 {
	line := c.Rasterline()
	isVblank := line < VisibleYStart || line >= VisibleYEnd

	aec := true

	if isVblank {
		c.updateInterrupts()
		c.lpTriggered = false
		if c.AECOut != nil {
			c.AECOut(true)
		}
		c.advanceLine(clk)
		return ScanlineCycles
	}

	switch {
	case c.cycle == 0:
		if line == DisplayYStart {
			c.isDEN = c.isDisplayEnabled()
		}
		c.isBadline = c.isDEN && line >= DisplayYStart && line < DisplayYEnd && (line&7) == uint(c.scrollY())
		aec = !c.isSpriteVisible(line, 3)
	case c.cycle == 1:
		aec = !c.isSpriteVisible(line, 3)
		c.updateInterrupts()
	case c.cycle >= 2 && c.cycle <= 3:
		aec = !c.isSpriteVisible(line, 4)
	case c.cycle >= 4 && c.cycle <= 5:
		aec = !c.isSpriteVisible(line, 5)
	case c.cycle >= 6 && c.cycle <= 7:
		aec = !c.isSpriteVisible(line, 6)
	case c.cycle >= 8 && c.cycle <= 9:
		aec = !c.isSpriteVisible(line, 7)
	case c.cycle >= 10 && c.cycle <= 13:
		// bus free
	case c.cycle >= 14 && c.cycle <= 49:
		aec = !c.isBadline
	case c.cycle == 50:
		aec = !c.isBadline
		c.paintScanline(line)
	case c.cycle >= 51 && c.cycle <= 54:
		aec = !c.isBadline
	case c.cycle == 55 || c.cycle == 56:
		// bus free
	case c.cycle >= 57 && c.cycle <= 58:
		aec = !c.isSpriteVisible(line, 0)
	case c.cycle >= 59 && c.cycle <= 60:
		aec = !c.isSpriteVisible(line, 1)
	case c.cycle >= 61 && c.cycle <= 62:
		aec = !c.isSpriteVisible(line, 2)
	}

	c.cycle++
	if c.AECOut != nil {
		c.AECOut(aec)
	}

	if c.cycle == ScanlineCycles {
		c.cycle = 0
		c.advanceLine(clk)
	}

	return 1
}

func (c *Chip) advanceLine(clk *clock.Clock) {
	line := c.Rasterline() + 1
	if line == FrameHeight {
		line = 0
		if c.Sync != nil {
			c.Sync(FrameCycles)
		}
	}
	c.setRasterline(line)
}

func (c *Chip) updateInterrupts() {
	if c.Rasterline() == c.storedRasterline {
		c.regs[RegInterrupt] |= InterruptIRST
	}
	if c.regs[RegMibDataCollision] != 0 {
		c.regs[RegInterrupt] |= InterruptIMDC
	}
	if c.regs[RegMibMibCollision] != 0 {
		c.regs[RegInterrupt] |= InterruptIMMC
	}
	if c.regs[RegInterrupt]&InterruptIRQ == 0 && c.regs[RegInterrupt]&c.regs[RegInterruptEnable] != 0 {
		c.irqOut(true)
	}
}

func (c *Chip) isSpriteVisible(line uint, n int) bool {
	bit := uint8(1) << uint(n)
	if !c.mibEnabled(bit) {
		return false
	}
	posY := c.mibPositionY(n)
	maxY := posY + MibHeight
	if c.mibExpandY(bit) {
		maxY = posY + MibHeight*2
	}
	return line >= posY && line < maxY
}
