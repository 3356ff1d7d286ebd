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

package sid

// Waveform enable bits, as written to a voice's control register bits 4-7.
const (
	waveTriangle = 0x1
	waveSawtooth = 0x2
	wavePulse    = 0x4
	waveNoise    = 0x8
)

// oscillator is one voice's waveform generator: a 16-bit frequency and
// 12-bit pulse-width accumulator driving a phase clock, with
// ring-modulation and hard-sync against a neighbouring voice.
type oscillator struct {
	clkf    float32
	syncOsc *oscillator

	waveType              uint8
	ring, test, syncGated bool

	ufreq        uint16
	freq, period float32

	uwidth uint16
	width  float32

	amplitude, t float32
}

func newOscillator(clkf uint64) *oscillator {
	return &oscillator{clkf: float32(clkf)}
}

func (o *oscillator) freqHi(v uint8) {
	o.ufreq = (o.ufreq & 0x00ff) | (uint16(v) << 8)
	o.setFreq()
}

func (o *oscillator) freqLo(v uint8) {
	o.ufreq = (o.ufreq & 0xff00) | uint16(v)
	o.setFreq()
}

func (o *oscillator) setFreq() {
	o.freq = float32(o.ufreq) * o.clkf / 16777216.0
	if o.freq != 0 {
		o.period = 1.0 / o.freq
	} else {
		o.period = 0
	}
}

func (o *oscillator) widthHi(v uint8) {
	o.uwidth = (o.uwidth & 0x00ff) | (uint16(v&0x0f) << 8)
	o.setWidth()
}

func (o *oscillator) widthLo(v uint8) {
	o.uwidth = (o.uwidth & 0x0f00) | uint16(v)
	o.setWidth()
}

func (o *oscillator) setWidth() {
	if o.uwidth == 0 {
		o.width = 1.0
	} else {
		o.width = float32(o.uwidth) / 4095.0
	}
}

// tick advances the oscillator by dt seconds and returns its current
// amplitude in [-1, 1] (or [0, 1] for a test-gated pulse wave).
func (o *oscillator) tick(dt float32) float32 {
	if o.test {
		if o.waveType&wavePulse != 0 {
			o.amplitude = 1.0
		} else {
			o.amplitude = 0.0
		}
		return o.amplitude
	}

	if o.syncGated && o.syncOsc != nil {
		o.t = o.syncOsc.t
	}

	if o.waveType != 0 {
		a := float32(1.0)

		if o.waveType&waveTriangle != 0 {
			ring := float32(1.0)
			if o.ring && o.syncOsc != nil {
				ring = sign(o.syncOsc.amplitude)
			}
			a *= triangle(o.t, o.period) * ring
		}

		if o.waveType&waveSawtooth != 0 {
			a *= sawtooth(o.t, o.period)
		}

		if o.waveType&wavePulse != 0 {
			a *= square(o.t, o.period*o.width)
		}

		if o.waveType&waveNoise != 0 {
			a *= noise()
		}

		o.amplitude = a
	} else {
		o.amplitude = 0.0
	}

	o.t += dt
	if o.period > 0 && o.t >= o.period {
		o.t = 0.0
	}

	return o.amplitude
}
