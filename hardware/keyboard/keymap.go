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

package keyboard

import "github.com/veandco/go-sdl2/sdl"

// Position is a (row, col) coordinate in the 8x8 matrix.
type Position struct {
	Row, Col uint8
}

// DefaultKeymap maps host keycodes to the C-64 matrix position the
// stock KERNAL keyboard decode table expects them at. A user-supplied
// keymap file (parsed by the UI front end) overrides individual
// entries; this table is what a machine falls back on when none is
// supplied.
var DefaultKeymap = map[sdl.Keycode]Position{
	sdl.K_BACKSPACE: {0, 0},
	sdl.K_RETURN:    {0, 1},
	sdl.K_RIGHT:     {0, 2},
	sdl.K_F7:        {0, 3},
	sdl.K_F1:        {0, 4},
	sdl.K_F3:        {0, 5},
	sdl.K_F5:        {0, 6},
	sdl.K_DOWN:      {0, 7},

	sdl.K_3:      {1, 0},
	sdl.K_w:      {1, 1},
	sdl.K_a:      {1, 2},
	sdl.K_4:      {1, 3},
	sdl.K_z:      {1, 4},
	sdl.K_s:      {1, 5},
	sdl.K_e:      {1, 6},
	sdl.K_LSHIFT: {1, 7},

	sdl.K_5: {2, 0},
	sdl.K_r: {2, 1},
	sdl.K_d: {2, 2},
	sdl.K_6: {2, 3},
	sdl.K_c: {2, 4},
	sdl.K_f: {2, 5},
	sdl.K_t: {2, 6},
	sdl.K_x: {2, 7},

	sdl.K_7: {3, 0},
	sdl.K_y: {3, 1},
	sdl.K_g: {3, 2},
	sdl.K_8: {3, 3},
	sdl.K_b: {3, 4},
	sdl.K_h: {3, 5},
	sdl.K_u: {3, 6},
	sdl.K_v: {3, 7},

	sdl.K_9: {4, 0},
	sdl.K_i: {4, 1},
	sdl.K_j: {4, 2},
	sdl.K_0: {4, 3},
	sdl.K_m: {4, 4},
	sdl.K_k: {4, 5},
	sdl.K_o: {4, 6},
	sdl.K_n: {4, 7},

	sdl.K_PLUS:      {5, 0},
	sdl.K_p:         {5, 1},
	sdl.K_l:         {5, 2},
	sdl.K_MINUS:     {5, 3},
	sdl.K_PERIOD:    {5, 4},
	sdl.K_COLON:     {5, 5},
	sdl.K_AT:        {5, 6},
	sdl.K_COMMA:     {5, 7},
	sdl.K_BACKSLASH: {6, 0}, // pound sign
	sdl.K_ASTERISK:  {6, 1},
	sdl.K_SEMICOLON: {6, 2},
	sdl.K_HOME:      {6, 3},
	sdl.K_RSHIFT:    {6, 4},
	sdl.K_EQUALS:    {6, 5},
	sdl.K_CARET:     {6, 6},
	sdl.K_SLASH:     {6, 7},

	sdl.K_1:      {7, 0},
	sdl.K_LEFT:   {7, 1}, // left-arrow key, left of '1'
	sdl.K_LCTRL:  {7, 2},
	sdl.K_2:      {7, 3},
	sdl.K_SPACE:  {7, 4},
	sdl.K_LGUI:   {7, 5}, // Commodore key
	sdl.K_q:      {7, 6},
	sdl.K_ESCAPE: {7, 7}, // RUN/STOP
}
