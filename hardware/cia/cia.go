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

// Package cia implements the MOS 6526 Complex Interface Adapter: two
// interval timers with PB-output side effects, a BCD time-of-day
// clock with alarm and latched reads, an interrupt control register,
// and two bidirectional ports. The C-64 wires up two instances: CIA1
// drives the keyboard matrix and the IRQ line, CIA2 drives the serial
// bus, user port and the NMI line.
package cia

import "github.com/cdio/caio/hardware/clock"

// Register offsets, in the order the real chip exposes them at
// $DC00-$DC0F / $DD00-$DD0F.
const (
	PRA = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TODTenths
	TODSec
	TODMin
	TODHour
	SDR
	ICR
	CRA
	CRB

	RegMax
)

// ICR flag/mask bits.
const (
	ICRTimerA = 0x01
	ICRTimerB = 0x02
	ICRAlarm  = 0x04
	ICRSerial = 0x08
	ICRFlag   = 0x10
	ICRIR     = 0x80
)

// Control register bits, shared by CRA and CRB.
const (
	CRStart      = 0x01
	CRPBOn       = 0x02
	CROutToggle  = 0x04
	CRRunMode    = 0x08
	CRForceLoad  = 0x10
	CRInMode     = 0x20
	CRSPMode     = 0x40
	CRTODIn      = 0x80
	CRBInModeAlt = 0x20 | 0x40
	CRBAlarm     = 0x80
)

const (
	pb6 = 0x40
	pb7 = 0x80
)

// PortIO is the pair of callback hooks a CIA port can be wired to: Read
// supplies externally-driven input bits, Write is notified whenever an
// output bit changes. Either may be nil.
type PortIO struct {
	Read  func() uint8
	Write func(value uint8)
}

// CIA is one MOS 6526 instance.
type CIA struct {
	label string

	portADir uint8
	portBDir uint8
	portA    uint8
	portB    uint8

	PortA PortIO
	PortB PortIO

	timerA, timerB timer
	tod            tod

	icrData uint8
	icrMask uint8
	irqPin  bool

	// IRQOut is called whenever the IRQ output pin changes state. The
	// wiring layer connects CIA1's to the CPU's IRQ line and CIA2's to
	// its NMI line.
	IRQOut func(active bool)
}

// New creates a CIA. label is used only for diagnostics.
func New(label string) *CIA {
	c := &CIA{label: label}
	c.timerA.pbit = pb6
	c.timerB.pbit = pb7
	c.tod.running = true
	return c
}

func (c *CIA) Label() string { return c.label }
func (c *CIA) Size() int     { return RegMax }

func (c *CIA) ior(port uint8, dir uint8, io PortIO) uint8 {
	external := uint8(0xff)
	if io.Read != nil {
		external = io.Read()
	}
	return (port & dir) | (external &^ dir)
}

func (c *CIA) iow(data uint8, dir uint8, io PortIO) uint8 {
	odata := data & dir
	if io.Write != nil {
		io.Write(odata)
	}
	return odata
}

// Read returns the value of register offset.
func (c *CIA) Read(offset uint16) uint8 {
	switch offset {
	case PRA:
		return c.ior(c.portA, c.portADir, c.PortA)
	case PRB:
		return c.ior(c.portB, c.portBDir, c.PortB)
	case DDRA:
		return c.portADir
	case DDRB:
		return c.portBDir
	case TALO:
		return c.timerA.counterLo()
	case TAHI:
		return c.timerA.counterHi()
	case TBLO:
		return c.timerB.counterLo()
	case TBHI:
		return c.timerB.counterHi()
	case TODTenths:
		return c.tod.readTenths()
	case TODSec:
		return c.tod.readSec()
	case TODMin:
		return c.tod.readMin()
	case TODHour:
		return c.tod.readHour()
	case SDR:
		return 0
	case ICR:
		data := c.icrData
		c.icrData = 0
		c.irqOut(false)
		return data
	case CRA:
		return c.timerA.cr
	case CRB:
		return c.timerB.cr
	default:
		return 0
	}
}

// Write stores data into register offset.
func (c *CIA) Write(offset uint16, data uint8) {
	switch offset {
	case PRA:
		c.portA = (c.portA &^ c.portADir) | c.iow(data, c.portADir, c.PortA)
	case PRB:
		c.portB = (c.portB &^ c.portBDir) | c.iow(data, c.portBDir, c.PortB)
	case DDRA:
		c.portADir = data
	case DDRB:
		c.portBDir = data
	case TALO:
		c.timerA.prescalerLo(data)
	case TAHI:
		c.timerA.prescalerHi(data)
	case TBLO:
		c.timerB.prescalerLo(data)
	case TBHI:
		c.timerB.prescalerHi(data)
	case TODTenths:
		if c.timerB.cr&CRBAlarm != 0 {
			c.tod.writeAlarmTenths(data)
		} else {
			c.tod.writeTenths(data)
		}
	case TODSec:
		if c.timerB.cr&CRBAlarm != 0 {
			c.tod.writeAlarmSec(data)
		} else {
			c.tod.writeSec(data)
		}
	case TODMin:
		if c.timerB.cr&CRBAlarm != 0 {
			c.tod.writeAlarmMin(data)
		} else {
			c.tod.writeMin(data)
		}
	case TODHour:
		if c.timerB.cr&CRBAlarm != 0 {
			c.tod.writeAlarmHour(data)
		} else {
			c.tod.writeHour(data)
		}
	case SDR:
		// serial port is not wired up to a real device in this core
	case ICR:
		// mos_6526_cia_preliminary_mar_1981.pdf p.7: bit 7 selects
		// set (1) or clear (0) for every mask bit written as 1.
		if data&ICRIR != 0 {
			c.icrMask |= data &^ ICRIR
		} else {
			c.icrMask &^= data
		}
	case CRA:
		c.timerA.cr = data
	case CRB:
		c.timerB.cr = data
	}
}

func (c *CIA) Dump() []uint8 {
	out := make([]uint8, RegMax)
	for i := range out {
		out[i] = c.Read(uint16(i))
	}
	return out
}

// Tick implements clock.Tickable: both timers and the TOD clock are
// advanced by one cycle, and an ICR event recomputes the IRQ/NMI line.
func (c *CIA) Tick(clk *clock.Clock) uint64 {
	aUnderflow := c.tickTimer(&c.timerA, true)
	if aUnderflow {
		c.icrData |= ICRTimerA
	}

	// Timer B's INMODE field (CRB bits 5-6) can switch it from counting
	// phi2 to counting Timer A underflows; the CNT-pin-gated variant
	// (both bits set) collapses to the same behaviour here since CNT
	// is left floating high (unconnected) by this core.
	bGate := true
	if mode := c.timerB.cr & CRBInModeAlt; mode == CRSPMode || mode == CRBInModeAlt {
		bGate = aUnderflow
	}
	if c.tickTimer(&c.timerB, bGate) {
		c.icrData |= ICRTimerB
	}

	if c.tod.tick(clk.Freq()) {
		c.icrData |= ICRAlarm
	}

	if c.icrData&ICRIR == 0 && c.icrData&c.icrMask != 0 {
		c.icrData |= ICRIR
		c.irqOut(true)
	}

	return 1
}

// tickTimer advances t by one cycle, applying port-B side effects, and
// reports whether it underflowed this cycle. gate is false when t is
// in an input mode that isn't counting this cycle (e.g. Timer B
// waiting for a Timer A underflow), in which case the counter holds.
// A timer loaded with N underflows on the Nth counted cycle.
func (c *CIA) tickTimer(t *timer, gate bool) bool {
	if !t.isRunning() || !gate {
		return false
	}
	t.tick()
	if t.counter != 0 {
		c.unsetpb(t)
		return false
	}
	t.reload()
	c.setpb(t)
	if t.isOneShot() {
		t.stop()
	}
	return true
}

func (c *CIA) setpb(t *timer) {
	if !t.isPBOn() {
		return
	}
	if t.cr&CROutToggle != 0 {
		c.portB ^= t.pbit
	} else {
		c.portB |= t.pbit
	}
}

func (c *CIA) unsetpb(t *timer) {
	if t.isPBOn() && t.cr&CROutToggle == 0 && c.portB&t.pbit != 0 {
		c.portB &^= t.pbit
	}
}

func (c *CIA) irqOut(active bool) {
	if c.irqPin == active {
		return
	}
	c.irqPin = active
	if c.IRQOut != nil {
		c.IRQOut(active)
	}
}
