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

package vic_test

import (
	"testing"

	"github.com/cdio/caio/hardware/clock"
	"github.com/cdio/caio/hardware/vic"
	"github.com/cdio/caio/internal/test"
)

// flatMmap is a VIC address space returning the same byte everywhere,
// which makes every character cell fully foreground (0xff) or fully
// background (0x00) without building a real memory map.
type flatMmap uint8

func (m flatMmap) Read(addr uint16) uint8 { return uint8(m) }

// flatColor is a colour RAM returning the same nibble everywhere.
type flatColor uint8

func (c flatColor) Read(offset uint16) uint8 { return uint8(c) }

func newChip() (*vic.Chip, *clock.Clock) {
	c := vic.New("test-vic")
	c.Mmap = flatMmap(0x00)
	c.ColorRAM = flatColor(0x01)
	return c, clock.New("test-clock", clock.PAL, 0)
}

// tickToLine runs the chip forward until Rasterline reports line with
// the cycle counter freshly wrapped.
func tickToLine(tb testing.TB, c *vic.Chip, clk *clock.Clock, line uint) {
	tb.Helper()
	for i := 0; i < vic.FrameCycles*2; i++ {
		if c.Rasterline() == line {
			return
		}
		c.Tick(clk)
	}
	tb.Fatalf("never reached rasterline %d", line)
}

func TestRasterInterrupt(t *testing.T) {
	c, clk := newChip()

	var irq bool
	c.IRQOut = func(active bool) { irq = active }

	c.Write(vic.RegRaster, 100)
	c.Write(vic.RegControl1, vic.Control1DEN|vic.Control1RSEL|0x03)
	c.Write(vic.RegInterruptEnable, vic.InterruptIRST)

	tickToLine(t, c, clk, 100)
	for i := 0; i < 4 && !irq; i++ {
		c.Tick(clk)
	}

	test.ExpectSuccess(t, irq)
	test.ExpectEquality(t, c.Rasterline(), 100)
	test.ExpectEquality(t, c.Read(vic.RegInterrupt)&(vic.InterruptIRQ|vic.InterruptIRST),
		vic.InterruptIRQ|vic.InterruptIRST)
}

func TestInterruptAcknowledge(t *testing.T) {
	c, clk := newChip()

	var irq bool
	c.IRQOut = func(active bool) { irq = active }

	c.Write(vic.RegRaster, 100)
	c.Write(vic.RegInterruptEnable, vic.InterruptIRST)

	tickToLine(t, c, clk, 100)
	for i := 0; i < 4 && !irq; i++ {
		c.Tick(clk)
	}
	test.ExpectSuccess(t, irq)

	// writing a 1 bit acknowledges that source and drops the pin
	c.Write(vic.RegInterrupt, vic.InterruptIRST)
	test.ExpectEquality(t, c.Read(vic.RegInterrupt)&vic.InterruptIRST, 0)
	test.ExpectFailure(t, irq)
}

func TestUnusedInterruptBitsReadAsOne(t *testing.T) {
	c, _ := newChip()
	test.ExpectEquality(t, c.Read(vic.RegInterrupt)&0x70, 0x70)
	test.ExpectEquality(t, c.Read(vic.RegInterruptEnable)&0xf0, 0xf0)
}

func TestFrameCycleCount(t *testing.T) {
	c, clk := newChip()

	var syncs int
	var syncArg uint64
	c.Sync = func(cycles uint64) {
		syncs++
		syncArg = cycles
	}

	var between uint64
	var windows []uint64
	prev := 0
	for i := 0; i < vic.FrameCycles*4 && syncs < 3; i++ {
		n := c.Tick(clk)
		between += n
		if syncs != prev {
			windows = append(windows, between)
			between = 0
			prev = syncs
		}
	}

	test.ExpectEquality(t, syncs, 3)
	test.ExpectEquality(t, syncArg, uint64(vic.FrameCycles))

	// a full frame elapses between consecutive syncs, exactly
	test.ExpectEquality(t, windows[1], uint64(vic.FrameCycles))
	test.ExpectEquality(t, windows[2], uint64(vic.FrameCycles))
}

func TestBadlineStealsBus(t *testing.T) {
	c, clk := newChip()

	var aec bool = true
	c.AECOut = func(asserted bool) { aec = asserted }

	// DEN on, YSCROLL 0: line $30 is a badline
	c.Write(vic.RegControl1, vic.Control1DEN|vic.Control1RSEL)

	tickToLine(t, c, clk, 0x30)

	// cycles 0..13: bus still belongs to the CPU (no sprites enabled)
	for i := 0; i < 14; i++ {
		test.ExpectSuccess(t, aec)
		c.Tick(clk)
	}

	// cycles 14..54: character DMA steals the bus
	for i := 14; i <= 54; i++ {
		c.Tick(clk)
		test.ExpectFailure(t, aec)
	}

	// released for the tail of the line
	for i := 55; i < 62; i++ {
		c.Tick(clk)
		test.ExpectSuccess(t, aec)
	}
}

func TestNoBadlineWithoutDEN(t *testing.T) {
	c, clk := newChip()

	stolen := false
	c.AECOut = func(asserted bool) {
		if !asserted {
			stolen = true
		}
	}

	// display disabled: no badline, no DMA
	tickToLine(t, c, clk, 0x30)
	for i := 0; i < vic.ScanlineCycles; i++ {
		c.Tick(clk)
	}
	test.ExpectFailure(t, stolen)
}

func TestRenderLineOrder(t *testing.T) {
	c, clk := newChip()

	var lines []int
	c.RenderLine = func(line int, pixels []uint32) {
		lines = append(lines, line)
		test.ExpectEquality(t, len(pixels), vic.Width)
	}

	// well short of a full frame, so the line index never wraps
	for i := 0; i < 12000; i++ {
		c.Tick(clk)
	}

	test.ExpectSuccess(t, len(lines) > 100)
	for i := 1; i < len(lines); i++ {
		test.ExpectEquality(t, lines[i], lines[i-1]+1)
	}
}

// spriteChip wires up a display with every background pixel set as
// foreground (char $FF everywhere) and sprite n enabled with fully
// opaque data, positioned inside the display window at line 100.
func spriteChip(n int) (*vic.Chip, *clock.Clock) {
	c := vic.New("test-vic")
	c.Mmap = flatMmap(0xff) // char data and sprite data all-ones
	c.ColorRAM = flatColor(0x01)
	clk := clock.New("test-clock", clock.PAL, 0)

	c.Write(vic.RegControl1, vic.Control1DEN|vic.Control1RSEL)
	c.Write(vic.RegMibEnable, 1<<uint(n))
	c.Write(uint16(vic.RegMib0X+2*n), 60)
	c.Write(uint16(vic.RegMib0Y+2*n), 95)
	return c, clk
}

func TestSpriteBackgroundCollision(t *testing.T) {
	c, clk := spriteChip(0)

	tickToLine(t, c, clk, 101)

	got := c.Read(vic.RegMibDataCollision)
	test.ExpectEquality(t, got&0x01, 0x01)

	// the read cleared the latch
	test.ExpectEquality(t, c.Read(vic.RegMibDataCollision), 0)
}

func TestSpriteSpriteCollision(t *testing.T) {
	c, clk := spriteChip(0)

	// second sprite overlapping the first
	c.Write(vic.RegMibEnable, 0x03)
	c.Write(vic.RegMib1X, 70)
	c.Write(vic.RegMib1Y, 95)

	tickToLine(t, c, clk, 101)

	got := c.Read(vic.RegMibMibCollision)
	test.ExpectEquality(t, got&0x03, 0x03)
	test.ExpectEquality(t, c.Read(vic.RegMibMibCollision), 0)
}

func TestSpritesAtLeftEdgeStillCollide(t *testing.T) {
	c, clk := spriteChip(0)

	// X=0 puts both sprites in the left border, outside the display
	// window, but their visible pixels still collide with each other
	c.Write(vic.RegMibEnable, 0x03)
	c.Write(vic.RegMib0X, 0)
	c.Write(vic.RegMib1X, 0)
	c.Write(vic.RegMib1Y, 95)

	tickToLine(t, c, clk, 101)
	test.ExpectEquality(t, c.Read(vic.RegMibMibCollision)&0x03, 0x03)
}

func TestLightPenLatchesOncePerFrame(t *testing.T) {
	c, clk := newChip()

	tickToLine(t, c, clk, 100)
	c.TriggerLP()
	y1 := c.Read(vic.RegLightPenY)
	test.ExpectEquality(t, y1, 100)

	// a second trigger in the same frame is ignored
	tickToLine(t, c, clk, 120)
	c.TriggerLP()
	test.ExpectEquality(t, c.Read(vic.RegLightPenY), 100)
	test.ExpectEquality(t, c.Read(vic.RegInterrupt)&vic.InterruptILP, vic.InterruptILP)
}

func TestStoredRasterlineNinthBit(t *testing.T) {
	c, clk := newChip()

	var irq bool
	c.IRQOut = func(active bool) { irq = active }

	// stored rasterline = 256 + 44 = 300 (a vblank line)
	c.Write(vic.RegRaster, 44)
	c.Write(vic.RegControl1, vic.Control1RC8)
	c.Write(vic.RegInterruptEnable, vic.InterruptIRST)

	tickToLine(t, c, clk, 300)
	for i := 0; i < 2 && !irq; i++ {
		c.Tick(clk)
	}
	test.ExpectSuccess(t, irq)
}
