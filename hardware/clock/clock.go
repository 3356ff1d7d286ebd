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

// Package clock implements the scheduling fabric shared by every
// component of the emulated machine: a single virtual-cycle counter
// driving a round-robin list of Tickables, with wall-clock pacing so
// the emulation doesn't run faster than the hardware it reproduces.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// HALT is the sentinel Tick return value that asks the Clock to stop.
const HALT = 0

// PAL is the C-64's PAL system clock frequency in Hz.
const PAL = 985248

// NTSC is the C-64's NTSC system clock frequency in Hz.
const NTSC = 1022727

// Tickable is implemented by every component the Clock schedules: the
// CPU, VIC-II, both CIAs and the SID. Tick is called once per virtual cycle
// once the component's due-cycle has been reached; it returns the
// number of cycles that must elapse before it is called again, or
// HALT to stop the clock.
type Tickable interface {
	Tick(c *Clock) uint64
}

type entry struct {
	tickable Tickable
	due      uint64
}

// Clock drives the emulation. It is not safe for concurrent use except
// for the specific methods documented as such (Pause, Stop, Paused) —
// this mirrors the narrow thread-safe edges the rest of the emulation
// core relies on instead of locking the whole machine.
type Clock struct {
	label string
	freq  uint64
	delay float64

	cycle uint64
	round []entry

	stopped int32
	paused  int32

	deadline   time.Time
	pendingNap time.Duration

	stats Stats

	mu sync.Mutex // guards round, for add/del called off the emulation thread
}

// Stats is a snapshot of the clock's pacing bookkeeping, exposed as
// plain values rather than any kind of dashboard.
type Stats struct {
	// Syncs counts completed Sync calls (one per rendered frame).
	Syncs uint64

	// LagResets counts the times the pacer fell so far behind real
	// time that it adopted "now" as the new deadline instead of
	// accumulating lag.
	LagResets uint64
}

// New creates a Clock at the given frequency. delay is a speed factor:
// 1.0 is real-time, 2.0 runs at half speed, and 0 disables pacing
// entirely (free-run, used by test harnesses that must not sleep).
func New(label string, freq uint64, delay float64) *Clock {
	if delay < 0 {
		delay = 1.0
	}
	return &Clock{label: label, freq: freq, delay: delay}
}

func (c *Clock) Label() string { return c.label }
func (c *Clock) Freq() uint64  { return c.freq }

func (c *Clock) SetFreq(freq uint64) { c.freq = freq }

func (c *Clock) Delay() float64     { return c.delay }
func (c *Clock) SetDelay(d float64) { c.delay = d }

// Add registers a tickable. Registration order is the round-robin
// order the Clock visits them in within a virtual cycle: the wiring
// layer must register the video component before the CPU so that
// cycle-stealing is visible to the CPU in the same cycle it happens.
func (c *Clock) Add(t Tickable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round = append(c.round, entry{tickable: t})
}

// Del de-registers a tickable.
func (c *Clock) Del(t Tickable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.round {
		if e.tickable == t {
			c.round = append(c.round[:i], c.round[i+1:]...)
			return
		}
	}
}

// Run repeatedly calls Tick until a tickable signals HALT or Stop is
// called.
func (c *Clock) Run() {
	for {
		if c.Tick() == HALT {
			return
		}
		if atomic.LoadInt32(&c.stopped) != 0 {
			return
		}
	}
}

// Tick executes one round: every registered tickable whose due-cycle
// has been reached is ticked exactly once, in registration order, and
// its due-cycle is advanced by the number of cycles it returns. The
// virtual cycle counter is then advanced by one. Returns HALT if any
// tickable asked to stop.
func (c *Clock) Tick() uint64 {
	for atomic.LoadInt32(&c.paused) != 0 {
		sleep(time.Millisecond)
		if atomic.LoadInt32(&c.stopped) != 0 {
			return HALT
		}
	}

	halted := false
	for i := range c.round {
		e := &c.round[i]
		if e.due > c.cycle {
			continue
		}
		cycles := e.tickable.Tick(c)
		if cycles == HALT {
			halted = true
			continue
		}
		e.due = c.cycle + cycles
	}

	c.cycle++

	if c.pendingNap > 0 {
		sleep(c.pendingNap)
		c.pendingNap = 0
	}

	if halted {
		return HALT
	}
	return 1
}

// Cycle returns the current virtual cycle counter.
func (c *Clock) Cycle() uint64 { return c.cycle }

// Stop asks Run to return at the top of its next round. It does not
// block waiting for Run to observe the flag.
func (c *Clock) Stop() { atomic.StoreInt32(&c.stopped, 1) }

// Stopped reports whether Stop has been called.
func (c *Clock) Stopped() bool { return atomic.LoadInt32(&c.stopped) != 0 }

// Pause suspends or resumes ticking. While paused, Tick busy-waits
// (with a short sleep) instead of calling any tickable.
func (c *Clock) Pause(pause bool) {
	if pause {
		atomic.StoreInt32(&c.paused, 1)
	} else {
		atomic.StoreInt32(&c.paused, 0)
	}
}

// TogglePause flips the pause state and returns the new value.
func (c *Clock) TogglePause() bool {
	if c.Paused() {
		c.Pause(false)
		return false
	}
	c.Pause(true)
	return true
}

// Paused reports whether the clock is currently paused.
func (c *Clock) Paused() bool { return atomic.LoadInt32(&c.paused) != 0 }

// slack is how far behind its deadline the pacer may fall before it
// gives up catching up and re-anchors to the current wall time.
const slack = 100 * time.Millisecond

// Sync is called by the video component once per frame to pace the
// emulation to wall-clock time. Each call advances a running deadline
// by the wall-clock duration of cycles cycles at this clock's nominal
// frequency and delay factor, and schedules a sleep until that
// deadline at the end of the current Tick round. Anchoring to the
// previous deadline (rather than to "now") means sleep jitter does not
// accumulate; if the emulation has fallen more than slack behind, the
// deadline is re-anchored to now instead so lag is shed rather than
// chased.
func (c *Clock) Sync(cycles uint64) {
	c.stats.Syncs++

	if c.freq == 0 || c.delay == 0 {
		return
	}

	d := time.Duration(float64(cycles) * float64(time.Second) * c.delay / float64(c.freq))
	now := time.Now()

	if c.deadline.IsZero() || now.Sub(c.deadline) > slack {
		if !c.deadline.IsZero() {
			c.stats.LagResets++
		}
		c.deadline = now
	}
	c.deadline = c.deadline.Add(d)

	if nap := c.deadline.Sub(now); nap > 0 {
		c.pendingNap = nap
	}
}

// Stats returns a copy of the clock's pacing counters.
func (c *Clock) Stats() Stats { return c.stats }
