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

// Package machine wires a CPU, a VIC-II, two CIAs, a SID and the
// banked 64KiB address space they all share into a runnable C-64:
// the $0000/$0001 processor-port bank switch, the VIC's own
// char-ROM-shadowed view of memory, the CIA1/CIA2 port callbacks that
// drive the keyboard matrix, joysticks and VIC bank select, and the
// wired-OR IRQ/NMI lines the peripherals share.
package machine

import (
	"github.com/cdio/caio/cerrors"
	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/hardware/cia"
	"github.com/cdio/caio/hardware/clock"
	"github.com/cdio/caio/hardware/cpu"
	"github.com/cdio/caio/hardware/keyboard"
	"github.com/cdio/caio/hardware/memory"
	"github.com/cdio/caio/hardware/sid"
	"github.com/cdio/caio/hardware/vic"
)

// System clock frequencies, in Hz, for the two video standards.
const (
	PALClock  = 985248
	NTSCClock = 1022727
)

const (
	kernalSize  = 8192
	basicSize   = 8192
	chargenSize = 4096
	ramSize     = 0x10000
	colorSize   = 1024
)

// Curated error templates.
const (
	ErrROMSize = "machine: %s ROM must be %d bytes, got %d"
)

// ROMs bundles the three image files a C-64 needs at power-on.
type ROMs struct {
	Basic   []uint8
	Kernal  []uint8
	Chargen []uint8
}

// IECBus is the seam a future disk-drive model attaches to. This core
// stops at the bus contract and does not implement the serial IEC
// wire protocol itself, so Reset is presently the only method a
// caller can depend on.
type IECBus interface {
	Reset()
}

// noopIEC satisfies IECBus without driving any device; it is the
// default until a real bus is attached.
type noopIEC struct{}

func (noopIEC) Reset() {}

// wiredOR models an open-drain interrupt line shared by several
// peripherals: each source's edge toggles a shared request counter
// instead of the line tracking back-pointers to its sources.
type wiredOR struct {
	count int
	out   func(active bool)
}

// Source returns a callback suitable for assigning directly to a
// peripheral's IRQOut field; every returned closure shares this line's
// counter but tracks its own previous level so a source re-asserting
// without an intervening deassert does not double count.
func (w *wiredOR) Source() func(active bool) {
	prev := false
	return func(active bool) {
		if active == prev {
			return
		}
		prev = active
		if active {
			w.count++
		} else {
			w.count--
		}
		if w.out != nil {
			w.out(w.count > 0)
		}
	}
}

// C64 composes one complete machine.
type C64 struct {
	CPU  *cpu.CPU
	VIC  *vic.Chip
	SID  *sid.Chip
	CIA1 *cia.CIA
	CIA2 *cia.CIA

	Clock *clock.Clock

	Keyboard  *keyboard.Matrix
	Joystick1 *keyboard.Joystick
	Joystick2 *keyboard.Joystick

	IEC IECBus

	as         *memory.AddressSpace
	ram        *memory.RAM
	basicROM   *memory.ROM
	kernalROM  *memory.ROM
	chargenROM *memory.ROM
	colorRAM   *memory.NibbleRAM
	io         *memory.IOPage
	port       *zeroPage

	cartLo, cartHi *memory.ROM

	cpuPortDir, cpuPortData uint8
	loram, hiram, charen    bool

	vicBank     uint8
	selectedCol uint8
}

// New builds a C-64 clocked at clkf Hz (PALClock or NTSCClock) and
// wires every peripheral together. roms must carry correctly sized
// BASIC, KERNAL and character-generator images.
func New(label string, clkf uint64, roms ROMs, sink audio.Sink) (*C64, error) {
	if len(roms.Basic) != basicSize {
		return nil, cerrors.Errorf(ErrROMSize, "basic", basicSize, len(roms.Basic))
	}
	if len(roms.Kernal) != kernalSize {
		return nil, cerrors.Errorf(ErrROMSize, "kernal", kernalSize, len(roms.Kernal))
	}
	if len(roms.Chargen) != chargenSize {
		return nil, cerrors.Errorf(ErrROMSize, "chargen", chargenSize, len(roms.Chargen))
	}

	m := &C64{
		as:         memory.NewAddressSpace(),
		ram:        memory.NewRAM("ram", ramSize),
		basicROM:   memory.NewROM("basic", roms.Basic),
		kernalROM:  memory.NewROM("kernal", roms.Kernal),
		chargenROM: memory.NewROM("chargen", roms.Chargen),
		colorRAM:   memory.NewNibbleRAM("color-ram", colorSize),
		Keyboard:   keyboard.NewMatrix(),
		Joystick1:  keyboard.NewJoystick(),
		Joystick2:  keyboard.NewJoystick(),
		IEC:        noopIEC{},
	}
	m.port = &zeroPage{m: m}

	m.Clock = clock.New(label+"-clock", clkf, 1.0)

	m.VIC = vic.New(label + "-vic")
	m.SID = sid.New(label+"-sid", clkf, sink)
	m.CIA1 = cia.New(label + "-cia1")
	m.CIA2 = cia.New(label + "-cia2")
	m.CPU = cpu.New(label+"-cpu", m.as)

	m.io = memory.NewIOPage(m.VIC, m.SID, m.colorRAM, m.CIA1, m.CIA2, nil, nil)

	m.VIC.Mmap = &vicMmap{m: m}
	m.VIC.ColorRAM = m.colorRAM

	// Wired-OR IRQ (CIA1 + VIC) and NMI (CIA2) lines.
	irq := &wiredOR{out: func(active bool) { m.CPU.SetIRQ(active) }}
	m.VIC.IRQOut = irq.Source()
	m.CIA1.IRQOut = irq.Source()

	nmi := &wiredOR{out: func(active bool) { m.CPU.SetNMI(active) }}
	m.CIA2.IRQOut = nmi.Source()

	// The VIC's AEC bus-grant pin stalls the CPU for the duration of a
	// badline DMA steal.
	m.VIC.AECOut = func(aec bool) { m.CPU.RDY = aec }

	// VIC's Sync requests wall-clock pacing once per frame.
	m.VIC.Sync = func(cycles uint64) { m.Clock.Sync(cycles) }

	// CIA1 port A selects the keyboard column being scanned and
	// doubles as joystick port 2; port B reads the row result ANDed
	// with joystick port 1, as on the real wiring.
	m.CIA1.PortA = cia.PortIO{
		Read:  func() uint8 { return m.Joystick2.Read() },
		Write: func(v uint8) { m.selectedCol = v },
	}
	m.CIA1.PortB = cia.PortIO{
		Read: func() uint8 { return m.Keyboard.Scan(m.selectedCol) & m.Joystick1.Read() },
	}

	// CIA2 port A bits 0-1 select the VIC's 16KiB memory bank
	// (inverted: bank = ~PA & 3); the remaining bits drive the serial
	// bus, which this core does not model beyond the IECBus seam.
	m.CIA2.PortA = cia.PortIO{
		Write: func(v uint8) { m.vicBank = ^v & 0x03 },
	}

	// Registration order matters: the VIC must observe and steal the
	// bus before the CPU ticks in the same cycle, so Add it first.
	m.Clock.Add(m.VIC)
	m.Clock.Add(m.CPU)
	m.Clock.Add(m.CIA1)
	m.Clock.Add(m.CIA2)
	m.Clock.Add(m.SID)

	// Defaults to the all-pull-ups-high reset state: LORAM=HIRAM=CHAREN=1
	// (BASIC+KERNAL+I/O visible), the normal power-on banking.
	m.updateBanking()

	return m, nil
}

// Reset re-initialises the CPU to its power-on vector and resets the
// attached IEC bus, if any.
func (m *C64) Reset() {
	m.updateBanking()
	m.CPU.Reset()
	m.IEC.Reset()
}

// AddressSpace returns the machine's shared 64KiB bus, mainly for
// tests and tooling (PRG loading, breakpoint installation) that need
// direct Read/Write access.
func (m *C64) AddressSpace() *memory.AddressSpace { return m.as }

// AttachCartridge maps an 8K cartridge ROM image at $8000-$9FFF (the
// common ROMLO case). A second image attached via AttachCartridge16K
// additionally occupies $A000-$BFFF in place of BASIC. Ultimax mode is
// out of scope for this wiring layer.
func (m *C64) AttachCartridge(data []uint8) {
	m.cartLo = memory.NewROM("cart-lo", data)
	m.rebuild()
}

// AttachCartridge16K maps a 16K cartridge: lo at $8000-$9FFF and hi at
// $A000-$BFFF (replacing BASIC while LORAM and HIRAM are both high).
func (m *C64) AttachCartridge16K(lo, hi []uint8) {
	m.cartLo = memory.NewROM("cart-lo", lo)
	m.cartHi = memory.NewROM("cart-hi", hi)
	m.rebuild()
}

// updateBanking recomputes LORAM/HIRAM/CHAREN from the 6510 on-chip
// port and rebuilds the address space's bank tables to match the
// memory configuration table in the C-64 Programmer's Reference Guide.
func (m *C64) updateBanking() {
	out := (m.cpuPortData & m.cpuPortDir) | (0xff &^ m.cpuPortDir)
	m.loram = out&0x01 != 0
	m.hiram = out&0x02 != 0
	m.charen = out&0x04 != 0
	m.rebuild()
}

func (m *C64) rebuild() {
	as := m.as

	as.Map(0x0000, 0x0100, m.port)
	as.MapRead(0x0100, 0xa000, m.ram, 0x0100)
	as.MapWrite(0x0100, 0xa000, m.ram, 0x0100)

	switch {
	case m.cartHi != nil && m.loram && m.hiram:
		as.MapRead(0xa000, 0xc000, m.cartHi, 0)
	case m.loram && m.hiram:
		as.MapRead(0xa000, 0xc000, m.basicROM, 0)
	default:
		as.MapRead(0xa000, 0xc000, m.ram, 0xa000)
	}
	as.MapWrite(0xa000, 0xc000, m.ram, 0xa000)

	as.MapRead(0xc000, 0xd000, m.ram, 0xc000)
	as.MapWrite(0xc000, 0xd000, m.ram, 0xc000)

	if m.charen {
		as.Map(0xd000, 0xe000, m.io)
	} else {
		as.MapRead(0xd000, 0xe000, m.chargenROM, 0)
		as.MapWrite(0xd000, 0xe000, m.ram, 0xd000)
	}

	if m.hiram {
		as.MapRead(0xe000, 0x10000, m.kernalROM, 0)
	} else {
		as.MapRead(0xe000, 0x10000, m.ram, 0xe000)
	}
	as.MapWrite(0xe000, 0x10000, m.ram, 0xe000)

	if m.cartLo != nil {
		as.MapRead(0x8000, 0xa000, m.cartLo, 0)
		as.MapWrite(0x8000, 0xa000, m.ram, 0x8000)
	}
}

// zeroPage overlays the 6510's on-chip data-direction and data
// registers (addresses $0000/$0001) on top of the first page of RAM:
// those two addresses are always the processor port regardless of the
// bank configuration the port itself selects, so they cannot be
// expressed by the bank-granularity device table alone.
type zeroPage struct {
	m *C64
}

func (z *zeroPage) Label() string { return "zero-page" }
func (z *zeroPage) Size() int     { return 0x100 }

func (z *zeroPage) Read(offset uint16) uint8 {
	switch offset {
	case 0:
		return z.m.cpuPortDir
	case 1:
		return (z.m.cpuPortData & z.m.cpuPortDir) | (0xff &^ z.m.cpuPortDir)
	default:
		return z.m.ram.Read(offset)
	}
}

func (z *zeroPage) Write(offset uint16, data uint8) {
	switch offset {
	case 0:
		z.m.cpuPortDir = data
		z.m.updateBanking()
	case 1:
		z.m.cpuPortData = data
		z.m.updateBanking()
	default:
		z.m.ram.Write(offset, data)
	}
}

func (z *zeroPage) Dump() []uint8 {
	out := make([]uint8, z.Size())
	for i := range out {
		out[i] = z.Read(uint16(i))
	}
	return out
}

// vicMmap is the VIC's own 14-bit view of memory: one of four 16KiB
// banks of the shared RAM, selected by CIA2 port A, with the
// character generator ROM shadowing the two 4KiB windows ($1000 and
// $9000 within the bank) the real wiring exposes it at in banks 0
// and 2.
type vicMmap struct {
	m *C64
}

func (v *vicMmap) Read(addr uint16) uint8 {
	local := addr & 0x3fff
	if (v.m.vicBank == 0 || v.m.vicBank == 2) && local >= 0x1000 && local < 0x2000 {
		return v.m.chargenROM.Read(local - 0x1000)
	}
	abs := uint16(v.m.vicBank)*0x4000 + local
	return v.m.ram.Read(abs)
}
