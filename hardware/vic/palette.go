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

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cdio/caio/cerrors"
)

// Palette maps the VIC's 4-bit colour code to an 0xRRGGBBAA pixel.
type Palette [16]uint32

// DefaultPalette is a Colodore-derived 16-colour palette, used when no
// palette file is supplied.
var DefaultPalette = Palette{
	0x000000ff,
	0xffffffff,
	0x813338ff,
	0x75cec8ff,
	0x8e3c97ff,
	0x56ac4dff,
	0x2e2c9bff,
	0xedf171ff,
	0x8e5029ff,
	0x553800ff,
	0xc46c71ff,
	0x4a4a4aff,
	0x7b7b7bff,
	0xa9ff9fff,
	0x706debff,
	0xb2b2b2ff,
}

// LoadPalette reads a textual RGBA table (one "RRGGBBAA" hex value per
// line, 16 lines) and returns it as a Palette.
func LoadPalette(path string) (Palette, error) {
	var p Palette
	f, err := os.Open(path)
	if err != nil {
		return p, cerrors.Errorf(cerrors.PaletteFileError, err)
	}
	defer f.Close()

	idx := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() && idx < 16 {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return p, cerrors.Errorf(cerrors.PaletteFileError, err)
		}
		p[idx] = uint32(v)
		idx++
	}
	if err := sc.Err(); err != nil {
		return p, cerrors.Errorf(cerrors.PaletteFileError, err)
	}
	if idx != 16 {
		return p, cerrors.Errorf(cerrors.PaletteFileError, fmt.Errorf("got %d entries, want 16", idx))
	}
	return p, nil
}
