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

// Package memory implements the C64's 64KiB banked address space: a
// byte-addressable domain composed of fixed-size banks, each carrying
// an independently selectable read-device and write-device, so that
// ROM-shadowed-by-RAM and memory-mapped I/O can both be expressed by
// the same mechanism.
package memory

import "fmt"

// Device is a byte-addressable memory-mapped object. Reads and writes
// take an offset local to the device, not an absolute 16-bit address.
type Device interface {
	// Label identifies the device for diagnostics.
	Label() string

	// Size is the number of addressable bytes the device exposes.
	Size() int

	Read(offset uint16) uint8
	Write(offset uint16, data uint8)

	// Dump returns the entire device contents, for snapshotting/tests.
	Dump() []uint8
}

// RAM is a plain mutable byte array.
type RAM struct {
	label string
	data  []uint8
}

// NewRAM allocates a RAM device of the given size.
func NewRAM(label string, size int) *RAM {
	return &RAM{label: label, data: make([]uint8, size)}
}

func (r *RAM) Label() string { return r.label }
func (r *RAM) Size() int     { return len(r.data) }

func (r *RAM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

func (r *RAM) Write(offset uint16, data uint8) {
	r.data[int(offset)%len(r.data)] = data
}

func (r *RAM) Dump() []uint8 {
	out := make([]uint8, len(r.data))
	copy(out, r.data)
	return out
}

// Load copies src into the RAM starting at offset 0, truncating src if
// it is larger than the device.
func (r *RAM) Load(src []uint8) {
	copy(r.data, src)
}

// ROM is a read-only device; writes are silently ignored (logged by
// the caller if desired; the machine package's bank wiring maps RAM on
// the write side under each ROM, so writes land in RAM instead).
type ROM struct {
	label string
	data  []uint8
}

// NewROM creates a ROM device pre-loaded with data.
func NewROM(label string, data []uint8) *ROM {
	cp := make([]uint8, len(data))
	copy(cp, data)
	return &ROM{label: label, data: cp}
}

func (r *ROM) Label() string { return r.label }
func (r *ROM) Size() int     { return len(r.data) }

func (r *ROM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

// Write is a no-op: the real chip has no write line routed to it.
func (r *ROM) Write(offset uint16, data uint8) {}

func (r *ROM) Dump() []uint8 {
	out := make([]uint8, len(r.data))
	copy(out, r.data)
	return out
}

// NibbleRAM stores only the low 4 bits of each byte (used for the C64
// colour RAM at $D800). The upper 4 bits read back as don't-care ones,
// matching the real chip's floating data bus bits.
type NibbleRAM struct {
	label string
	data  []uint8
}

// NewNibbleRAM allocates a nibble-wide RAM device of the given size.
func NewNibbleRAM(label string, size int) *NibbleRAM {
	return &NibbleRAM{label: label, data: make([]uint8, size)}
}

func (n *NibbleRAM) Label() string { return n.label }
func (n *NibbleRAM) Size() int     { return len(n.data) }

func (n *NibbleRAM) Read(offset uint16) uint8 {
	return n.data[int(offset)%len(n.data)]&0x0f | 0xf0
}

func (n *NibbleRAM) Write(offset uint16, data uint8) {
	n.data[int(offset)%len(n.data)] = data & 0x0f
}

func (n *NibbleRAM) Dump() []uint8 {
	out := make([]uint8, len(n.data))
	copy(out, n.data)
	return out
}

// NullDevice is the sentinel device installed in any address range the
// wiring layer has not mapped. Reads return $FF (the open-bus value
// most C64 decoder logic floats to); writes are dropped.
type NullDevice struct{}

func (NullDevice) Label() string         { return "null" }
func (NullDevice) Size() int             { return 0x10000 }
func (NullDevice) Read(uint16) uint8     { return 0xff }
func (NullDevice) Write(uint16, uint8)   {}
func (NullDevice) Dump() []uint8         { return nil }

// Null is the shared NullDevice instance.
var Null Device = NullDevice{}

func (r *RAM) String() string { return fmt.Sprintf("RAM(%s, %d bytes)", r.label, len(r.data)) }
func (r *ROM) String() string { return fmt.Sprintf("ROM(%s, %d bytes)", r.label, len(r.data)) }
