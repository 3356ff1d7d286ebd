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

package cerrors

// Message templates used across the core, grouped by the package that
// raises them.
const (
	// memory
	UnreadableAddress = "memory: unreadable address (%#04x)"
	UnwritableAddress = "memory: unwritable address (%#04x)"
	BankSizeInvalid   = "memory: bank size %d does not divide 64KiB"

	// cpu
	UnimplementedInstruction = "cpu: unimplemented instruction (%#02x) at (%#04x)"
	InvalidMidInstruction    = "cpu: invalid operation mid-instruction (%v)"
	CPUKilled                = "cpu: halted by KIL instruction at (%#04x)"

	// cia
	CIAInvalidRegister = "cia: invalid register offset (%#02x)"

	// vic
	VICInvalidRegister = "vic: invalid register offset (%#02x)"
	PaletteFileError   = "vic: palette file error: %v"

	// sid
	SIDInvalidRegister = "sid: invalid register offset (%#02x)"

	// clock
	ClockStopped = "clock: stopped"

	// machine / config
	ROMLoadError    = "machine: cannot load ROM %q: %v"
	ROMSizeInvalid  = "machine: ROM %q has unexpected size %d"
	CartridgeError  = "cartridge: %v"
	CartridgeMagic  = "cartridge: bad signature in %q"
	PRGLoadError    = "prg: %v"
	KeymapFileError = "keyboard: keymap file error: %v"
)
