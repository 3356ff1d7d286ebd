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

// Package cartridge decodes the CRT cartridge image format: a fixed
// header followed by a sequence of CHIP packets, each carrying one ROM
// (or RAM/Flash) bank's worth of image data plus the load address and
// bank number the machine wiring layer needs to place it. See
// http://ist.uwaterloo.ca/~schepers/formats/CRT.TXT for the format
// this package decodes.
package cartridge

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/cdio/caio/cerrors"
)

// Signature is the fixed 16-byte magic at the start of every CRT file.
const Signature = "C64 CARTRIDGE   "

// ChipSignature is the fixed 4-byte magic at the start of every CHIP
// packet.
const ChipSignature = "CHIP"

// headerFixedSize is the size of the fixed portion of the CRT header
// (16-byte signature plus the 48-byte Header struct below); a CRT with
// a larger declared header size pads with vendor-specific bytes that
// this package skips.
const headerFixedSize = 16 + 48

// ChipType identifies the kind of memory a CHIP packet's data occupies
// once mapped.
type ChipType uint16

const (
	ChipROM ChipType = iota
	ChipRAM
	ChipFlash
)

// ErrBadSignature and ErrBadChipSignature are the curated error
// templates Load reports malformed input with.
const (
	ErrBadSignature     = "cartridge: bad CRT signature %q"
	ErrBadChipSignature = "cartridge: bad CHIP signature %q"
	ErrTruncated        = "cartridge: truncated reading %s: %v"
)

// Header is the decoded, host-endian CRT file header.
type Header struct {
	Size    uint32 // declared header size, >= 64
	Version uint16
	HWType  uint16
	EXROM   uint8
	GAME    uint8
	Name    string
}

// Chip is one decoded CHIP packet: a bank's worth of image data plus
// the placement metadata the machine wiring layer consumes.
type Chip struct {
	Type     ChipType
	Bank     uint16
	LoadAddr uint16
	Data     []uint8
}

// Cartridge is a fully decoded CRT image.
type Cartridge struct {
	Header Header
	Chips  []Chip
}

// wireHeader is the big-endian on-disk layout of the fixed header
// portion, following the 16-byte signature.
type wireHeader struct {
	Size     uint32
	Version  uint16
	HWType   uint16
	EXROM    uint8
	GAME     uint8
	Reserved [6]byte
	Name     [32]byte
}

// wireChip is the big-endian on-disk layout of a CHIP packet header,
// following its 4-byte signature.
type wireChip struct {
	PacketSize uint32
	Type       uint16
	Bank       uint16
	LoadAddr   uint16
	RomSize    uint16
}

// Load decodes a CRT image from r.
func Load(r io.Reader) (*Cartridge, error) {
	var sig [16]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, cerrors.Errorf(ErrTruncated, "signature", err)
	}
	if string(sig[:]) != Signature {
		return nil, cerrors.Errorf(ErrBadSignature, sig[:])
	}

	var wh wireHeader
	if err := binary.Read(r, binary.BigEndian, &wh); err != nil {
		return nil, cerrors.Errorf(ErrTruncated, "header", err)
	}

	crt := &Cartridge{Header: Header{
		Size:    wh.Size,
		Version: wh.Version,
		HWType:  wh.HWType,
		EXROM:   wh.EXROM,
		GAME:    wh.GAME,
		Name:    strings.TrimRight(string(wh.Name[:]), "\x00"),
	}}

	if pad := int64(wh.Size) - headerFixedSize; pad > 0 {
		if _, err := io.CopyN(io.Discard, r, pad); err != nil {
			return nil, cerrors.Errorf(ErrTruncated, "header padding", err)
		}
	}

	for {
		var csig [4]byte
		if _, err := io.ReadFull(r, csig[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, cerrors.Errorf(ErrTruncated, "CHIP signature", err)
		}
		if string(csig[:]) != ChipSignature {
			return nil, cerrors.Errorf(ErrBadChipSignature, csig[:])
		}

		var wc wireChip
		if err := binary.Read(r, binary.BigEndian, &wc); err != nil {
			return nil, cerrors.Errorf(ErrTruncated, "CHIP header", err)
		}

		data := make([]uint8, wc.RomSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, cerrors.Errorf(ErrTruncated, "CHIP data", err)
		}

		crt.Chips = append(crt.Chips, Chip{
			Type:     ChipType(wc.Type),
			Bank:     wc.Bank,
			LoadAddr: wc.LoadAddr,
			Data:     data,
		})
	}

	return crt, nil
}

// Save re-encodes crt in CRT format, the inverse of Load. It is used
// by the round-trip tests and by tooling that synthesises cartridges.
func Save(w io.Writer, crt *Cartridge) error {
	if _, err := w.Write([]byte(Signature)); err != nil {
		return err
	}

	var name [32]byte
	copy(name[:], crt.Header.Name)

	wh := wireHeader{
		Size:    headerFixedSize,
		Version: crt.Header.Version,
		HWType:  crt.Header.HWType,
		EXROM:   crt.Header.EXROM,
		GAME:    crt.Header.GAME,
		Name:    name,
	}
	if err := binary.Write(w, binary.BigEndian, &wh); err != nil {
		return err
	}

	for _, c := range crt.Chips {
		if _, err := w.Write([]byte(ChipSignature)); err != nil {
			return err
		}
		wc := wireChip{
			PacketSize: uint32(16 + len(c.Data)),
			Type:       uint16(c.Type),
			Bank:       c.Bank,
			LoadAddr:   c.LoadAddr,
			RomSize:    uint16(len(c.Data)),
		}
		if err := binary.Write(w, binary.BigEndian, &wc); err != nil {
			return err
		}
		if _, err := w.Write(c.Data); err != nil {
			return err
		}
	}

	return nil
}

// ROMLo and ROMHi report whether crt's GAME/EXROM lines describe a
// cartridge ROM mapped into the low ($8000-$9FFF) or high
// ($A000-$BFFF) window, per the CRT format's documented EXROM/GAME
// encoding. The machine wiring only supports the common 8K/16K
// "normal cartridge" case (EXROM=0); Ultimax mode is unimplemented.
func (c *Cartridge) ROMLo() bool { return c.Header.EXROM == 0 }

// ROMHi reports whether a 16K cartridge additionally maps a bank at
// $A000-$BFFF (GAME=0 alongside EXROM=0).
func (c *Cartridge) ROMHi() bool { return c.Header.EXROM == 0 && c.Header.GAME == 0 }
