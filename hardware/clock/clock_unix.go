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

//go:build linux || darwin

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// sleep pauses the calling goroutine for at least d, via a direct
// nanosleep syscall instead of the Go runtime's timer wheel. The
// pacing and pause loops above call this hundreds of times a second;
// bypassing the runtime timer here keeps jitter down at the short
// (sub-millisecond) sync durations a well-paced frame needs.
func sleep(d time.Duration) {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		var rem unix.Timespec
		if err := unix.Nanosleep(&ts, &rem); err != unix.EINTR {
			return
		}
		ts = rem
	}
}
