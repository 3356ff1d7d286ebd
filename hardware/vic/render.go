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

package vic

// paintScanline renders one full scanline in a single batch at cycle
// 50. Mid-line register writes are not visible, an acknowledged
// limitation: the open-border and FLD raster tricks that depend on
// them will not render correctly.
func (c *Chip) paintScanline(line uint) {
	if line < VisibleYStart || line >= VisibleYEnd {
		return
	}

	c.paintRange(0, Width, 0x000000ff)
	for i := range c.foreground {
		c.foreground[i] = false
	}

	start := DisplayYStart + uint(c.scrollY())
	if line >= start && line < start+DisplayHeight {
		if !c.isDEN {
			c.paintBorder(0, Width)
		} else if !(c.isExtendedColor() && c.isMulticolor()) {
			offsetX := c.scrollX()
			if offsetX > 0 {
				c.paintRange(DisplayXStart, int(offsetX), c.backgroundColor(0))
			}
			if c.isBitmapMode() {
				c.paintBitmapMode(line - start)
			} else {
				c.paintCharMode(line - start)
			}
		} else {
			// ECM+MCM together is an undefined combination on the
			// real chip; the documented quirk is an all-black display.
			c.paintRange(DisplayXStart, DisplayWidth, 0x000000ff)
		}
	}

	if line >= MibYStart {
		c.paintSprites(line)
	}

	if line < UBorderYEnd || line >= BBorderYStart {
		c.paintBorder(DisplayXStart, DisplayWidth)
	}

	leftEnd := DisplayXStart
	rightStart := DisplayXEnd
	if c.is38Columns() {
		leftEnd += 8
		rightStart -= 8
	}
	c.paintBorder(0, leftEnd)
	c.paintBorder(rightStart, Width-rightStart)

	if c.is24Rows() {
		if line < DisplayYStart+7 || line >= DisplayYEnd-7 {
			c.paintRange(0, Width, c.borderColor())
		}
	}

	sline := int(line) - VisibleYStart
	if c.RenderLine != nil {
		c.RenderLine(sline, c.scanline[:])
	}
}

func (c *Chip) paintBorder(start, width int) {
	c.paintRange(start, width, c.borderColor())
}

func (c *Chip) paintRange(start, width int, color uint32) {
	end := start + width
	if end > Width {
		end = Width
	}
	for x := start; x < end; x++ {
		if x >= 0 {
			c.scanline[x] = color
		}
	}
}

// paintByte paints 8 pixels of a two-colour (hires) byte starting at
// start, and marks each set bit as an opaque foreground pixel for the
// sprite-background collision test.
func (c *Chip) paintByte(start int, bitmap uint8, bg, fg uint32) {
	bit := uint8(0x80)
	for i := 0; i < 8; i++ {
		x := start + i
		if x < 0 || x >= Width {
			bit >>= 1
			continue
		}
		if bitmap&bit != 0 {
			c.scanline[x] = fg
			c.foreground[x] = true
		} else {
			c.scanline[x] = bg
		}
		bit >>= 1
	}
}

// paintMCMByte paints 8 pixels of a multicolor byte (2 bits/pixel, 4
// pixel pairs). For collision purposes multicolor pixels convert
// 01->00 and 10->11, so the %10 and %11 colour indices count as opaque
// foreground.
func (c *Chip) paintMCMByte(start int, bitmap uint8, colors [4]uint32) {
	for pair := 0; pair < 4; pair++ {
		shift := uint(6 - pair*2)
		idx := (bitmap >> shift) & 3
		color := colors[idx]
		opaque := idx >= 2
		for k := 0; k < 2; k++ {
			x := start + pair*2 + k
			if x < 0 || x >= Width {
				continue
			}
			c.scanline[x] = color
			if opaque {
				c.foreground[x] = true
			}
		}
	}
}

func (c *Chip) paintCharMode(line uint) {
	mcm := c.isMulticolor()
	ecm := c.isExtendedColor()
	row := uint16(line >> 3)
	chAddr := c.videoMatrix() + row*CharmodeColumns

	for col := uint16(0); col < CharmodeColumns; col++ {
		fgCode := c.ColorRAM.Read(row*CharmodeColumns + col)
		bg := 0
		ch := c.Mmap.Read(chAddr + col)
		if ecm {
			bg = int(ch >> 6)
			ch &= 0x3f
		}
		rowData := c.Mmap.Read(c.charBase(ch) + uint16(line&7))
		start := DisplayXStart + int(col)*8

		if mcm && fgCode&ColorMask > 7 {
			colors := [4]uint32{
				c.backgroundColor(0),
				c.backgroundColor(1),
				c.backgroundColor(2),
				c.Palette[fgCode&0x07],
			}
			c.paintMCMByte(start, rowData, colors)
		} else {
			c.paintByte(start, rowData, c.backgroundColor(bg), c.Palette[fgCode&ColorMask])
		}
	}
}

func (c *Chip) paintBitmapMode(line uint) {
	mcm := c.isMulticolor()
	row := uint16(line >> 3)
	colorAddr := c.videoMatrix() + row*CharmodeColumns

	for col := uint16(0); col < CharmodeColumns; col++ {
		colorCode := c.Mmap.Read(colorAddr + col)
		fg := c.Palette[colorCode>>4]
		bg := c.Palette[colorCode&ColorMask]
		byteAddr := c.bitmapBase() + row*DisplayWidth + col*8 + uint16(line&7)
		b := c.Mmap.Read(byteAddr)
		start := DisplayXStart + int(col)*8

		if mcm {
			colors := [4]uint32{
				c.backgroundColor(0),
				fg,
				bg,
				c.Palette[c.ColorRAM.Read(row*CharmodeColumns+col)&ColorMask],
			}
			c.paintMCMByte(start, b, colors)
		} else {
			c.paintByte(start, b, bg, fg)
		}
	}
}

// paintSprites renders sprites 7 down to 0 so sprite 0 ends up drawn
// last (highest priority, in front), and runs the collision tests.
func (c *Chip) paintSprites(line uint) {
	for n := range c.spriteOpaque {
		for x := range c.spriteOpaque[n] {
			c.spriteOpaque[n][x] = false
		}
	}
	for n := 7; n >= 0; n-- {
		c.paintSprite(line, n)
	}
}

func (c *Chip) paintSprite(line uint, n int) {
	bit := uint8(1) << uint(n)
	if !c.isSpriteVisible(line, n) {
		for x := range c.spriteOpaque[n] {
			c.spriteOpaque[n][x] = false
		}
		return
	}

	posY := c.mibPositionY(n)
	expY := c.mibExpandY(bit)
	expX := c.mibExpandX(bit)
	posX := int(c.mibPositionX(n))

	l := line - posY
	if expY {
		l >>= 1
	}

	addr := c.mibBase(n) + uint16(l)*3
	b1 := c.Mmap.Read(addr)
	b2 := c.Mmap.Read(addr + 1)
	b3 := c.Mmap.Read(addr + 2)

	fg := c.Palette[c.regs[RegMib0Color+n]&ColorMask]
	behindData := c.mibBehindData(bit)
	mcm := c.mibMulticolor(bit)

	opaque := make([]bool, Width)
	colorOf := make([]uint32, Width)

	bits := []uint8{b1, b2, b3}
	pixel := posX
	emit := func(set bool, color uint32) {
		for rep := 0; rep < 1+boolToInt(expX); rep++ {
			if pixel >= 0 && pixel < Width {
				opaque[pixel] = set
				colorOf[pixel] = color
			}
			pixel++
		}
	}

	if mcm {
		mc0 := c.Palette[c.regs[RegMibMulticolor0]&ColorMask]
		mc1 := c.Palette[c.regs[RegMibMulticolor1]&ColorMask]
		for _, b := range bits {
			for pair := 0; pair < 4; pair++ {
				shift := uint(6 - pair*2)
				idx := (b >> shift) & 3
				var color uint32
				set := idx != 0
				switch idx {
				case 1:
					color = mc0
				case 2:
					color = fg
				case 3:
					color = mc1
				}
				// two source bits -> one double-wide pixel in mcm sprites
				for k := 0; k < 2; k++ {
					emit(set, color)
				}
			}
		}
	} else {
		for _, b := range bits {
			mask := uint8(0x80)
			for i := 0; i < 8; i++ {
				emit(b&mask != 0, fg)
				mask >>= 1
			}
		}
	}

	dataCollision := false
	for x := 0; x < Width; x++ {
		if !opaque[x] {
			continue
		}
		if c.foreground[x] {
			dataCollision = true
		}
		if behindData && c.foreground[x] {
			continue
		}
		c.scanline[x] = colorOf[x]
	}

	if dataCollision {
		c.regs[RegMibDataCollision] |= bit
	}

	// sprite-sprite collision against every previously-rendered sprite
	// in this line (priority order doesn't matter for detection).
	for other := 0; other < 8; other++ {
		if other == n || !c.mibEnabled(1<<uint(other)) {
			continue
		}
		for x := 0; x < Width; x++ {
			if opaque[x] && c.spriteOpaque[other][x] {
				c.regs[RegMibMibCollision] |= bit | (1 << uint(other))
				break
			}
		}
	}

	c.spriteOpaque[n] = opaque
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
