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

package cartridge_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/cdio/caio/cartridge"
	"github.com/cdio/caio/internal/test"
)

func testCartridge() *cartridge.Cartridge {
	chip0 := make([]uint8, 8192)
	chip1 := make([]uint8, 8192)
	for i := range chip0 {
		chip0[i] = uint8(i)
		chip1[i] = uint8(i >> 8)
	}
	return &cartridge.Cartridge{
		Header: cartridge.Header{
			Size:    64,
			Version: 0x0100,
			HWType:  0,
			EXROM:   0,
			GAME:    1,
			Name:    "TEST CART",
		},
		Chips: []cartridge.Chip{
			{Type: cartridge.ChipROM, Bank: 0, LoadAddr: 0x8000, Data: chip0},
			{Type: cartridge.ChipROM, Bank: 1, LoadAddr: 0x8000, Data: chip1},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	crt := testCartridge()

	var buf bytes.Buffer
	test.ExpectSuccess(t, cartridge.Save(&buf, crt))

	got, err := cartridge.Load(&buf)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, got.Header.Name, crt.Header.Name)
	test.ExpectEquality(t, got.Header.Version, crt.Header.Version)
	test.ExpectEquality(t, got.Header.EXROM, crt.Header.EXROM)
	test.ExpectEquality(t, got.Header.GAME, crt.Header.GAME)
	test.ExpectEquality(t, len(got.Chips), len(crt.Chips))

	for i := range got.Chips {
		test.ExpectEquality(t, got.Chips[i].Type, crt.Chips[i].Type)
		test.ExpectEquality(t, got.Chips[i].Bank, crt.Chips[i].Bank)
		test.ExpectEquality(t, got.Chips[i].LoadAddr, crt.Chips[i].LoadAddr)
		test.ExpectSuccess(t, bytes.Equal(got.Chips[i].Data, crt.Chips[i].Data))
	}
}

func TestChipPacketSize(t *testing.T) {
	crt := testCartridge()
	crt.Chips = crt.Chips[:1]

	var buf bytes.Buffer
	test.ExpectSuccess(t, cartridge.Save(&buf, crt))

	// the CHIP packet size field counts the 16-byte sub-header plus
	// the payload
	raw := buf.Bytes()
	chipOff := 64 // header size
	test.ExpectEquality(t, string(raw[chipOff:chipOff+4]), cartridge.ChipSignature)

	packetSize := binary.BigEndian.Uint32(raw[chipOff+4 : chipOff+8])
	test.ExpectEquality(t, packetSize, uint32(16+8192))
}

func TestBadSignature(t *testing.T) {
	_, err := cartridge.Load(bytes.NewReader(bytes.Repeat([]byte{0x00}, 128)))
	test.ExpectFailure(t, err)
}

func TestBadChipSignature(t *testing.T) {
	crt := testCartridge()
	var buf bytes.Buffer
	test.ExpectSuccess(t, cartridge.Save(&buf, crt))

	raw := buf.Bytes()
	copy(raw[64:68], "JUNK")

	_, err := cartridge.Load(bytes.NewReader(raw))
	test.ExpectFailure(t, err)
}

func TestTruncatedPayload(t *testing.T) {
	crt := testCartridge()
	var buf bytes.Buffer
	test.ExpectSuccess(t, cartridge.Save(&buf, crt))

	_, err := cartridge.Load(bytes.NewReader(buf.Bytes()[:200]))
	test.ExpectFailure(t, err)
}

func TestHeaderPaddingSkipped(t *testing.T) {
	crt := testCartridge()
	crt.Chips = crt.Chips[:1]

	var buf bytes.Buffer
	test.ExpectSuccess(t, cartridge.Save(&buf, crt))

	// grow the declared header size by 16 bytes of vendor padding
	raw := buf.Bytes()
	padded := make([]byte, 0, len(raw)+16)
	padded = append(padded, raw[:64]...)
	padded = append(padded, make([]byte, 16)...)
	padded = append(padded, raw[64:]...)
	binary.BigEndian.PutUint32(padded[16:20], 64+16)

	got, err := cartridge.Load(bytes.NewReader(padded))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(got.Chips), 1)
}

func TestROMLoHi(t *testing.T) {
	crt := testCartridge()
	test.ExpectSuccess(t, crt.ROMLo())
	test.ExpectFailure(t, crt.ROMHi())

	crt.Header.GAME = 0
	test.ExpectSuccess(t, crt.ROMHi())
}
