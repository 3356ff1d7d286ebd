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

// Package prg implements the PRG program file format (a two-byte
// little-endian load address followed by raw bytes) and the
// BASIC-ready trap used to autorun one: a breakpoint at BASIC's
// "waiting for input" address that injects a synthetic "RUN\r" into
// the BASIC keyboard buffer, exactly as if it had been typed.
package prg

import (
	"encoding/binary"
	"io"

	"github.com/cdio/caio/cerrors"
)

// Well-known zero-page and KERNAL addresses this package's autorun
// trap depends on. See https://www.c64-wiki.com/wiki/Zeropage.
const (
	// ReadyTrap is the address BASIC's input loop returns to once it
	// has printed "READY." and is waiting for a line of input.
	ReadyTrap = 0xa474

	// BasicLoadAddr is where a PRG with no explicit load address is
	// conventionally placed: the start of BASIC program text space.
	BasicLoadAddr = 0x0801

	// KeyboardBuffer and KeyboardBufferLen are BASIC's keyboard queue
	// (10 bytes) and its fill-count byte.
	KeyboardBuffer    = 0x0277
	KeyboardBufferLen = 0x00c6
	KeyboardBufferCap = 10
)

// Load reads a PRG image from r: the first two bytes are the
// little-endian load address, the rest is the program body. If start
// is non-zero it overrides the address encoded in the file, matching
// the load(fname, start) contract this package's semantics are
// grounded on.
func Load(r io.Reader, start uint16) (addr uint16, data []uint8, err error) {
	var hdr [2]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, cerrors.Errorf("prg: reading load address: %v", err)
	}
	fileAddr := binary.LittleEndian.Uint16(hdr[:])

	data, err = io.ReadAll(r)
	if err != nil {
		return 0, nil, cerrors.Errorf("prg: reading body: %v", err)
	}

	if start != 0 {
		return start, data, nil
	}
	return fileAddr, data, nil
}

// Save writes addr and data to w in PRG format, the inverse of Load.
func Save(w io.Writer, addr uint16, data []uint8) error {
	var hdr [2]byte
	binary.LittleEndian.PutUint16(hdr[:], addr)
	if _, err := w.Write(hdr[:]); err != nil {
		return cerrors.Errorf("prg: writing load address: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		return cerrors.Errorf("prg: writing body: %v", err)
	}
	return nil
}

// Writer is the address-space contract InjectRun needs; it matches
// memory.AddressSpace's Write method.
type Writer interface {
	Write(addr uint16, data uint8)
}

// InjectRun writes "RUN" followed by a carriage return into the BASIC
// keyboard buffer and sets its length, so that the KERNAL's own input
// routine picks it up on its next pass exactly as if a user had typed
// it at the keyboard. Installed as a breakpoint callback at ReadyTrap,
// this is how a loaded PRG is made to autorun.
func InjectRun(bus Writer) {
	const line = "RUN\r"
	for i := 0; i < len(line) && i < KeyboardBufferCap; i++ {
		bus.Write(KeyboardBuffer+uint16(i), line[i])
	}
	bus.Write(KeyboardBufferLen, uint8(len(line)))
}
