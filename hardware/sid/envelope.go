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

// envCycle is the envelope generator's current phase.
type envCycle int

const (
	cycleNone envCycle = iota
	cycleAttack
	cycleDecay
	cycleSustain
	cycleRelease
)

// attackTimes and decayTimes are the documented SID envelope timing
// tables, in seconds, indexed by the 4-bit register value.
var attackTimes = [16]float32{
	0.002, 0.008, 0.016, 0.024, 0.038, 0.056, 0.068, 0.080,
	0.100, 0.250, 0.500, 0.800, 1.000, 3.000, 5.000, 8.000,
}

var decayTimes = [16]float32{
	0.006, 0.024, 0.048, 0.072, 0.114, 0.168, 0.204, 0.240,
	0.300, 0.750, 1.500, 2.400, 3.000, 9.000, 15.000, 24.000,
}

// envelope is a voice's ADSR generator: a piecewise curve driven by
// the gate bit in the voice's control register.
type envelope struct {
	tadj float32 // timing adjustment: 1 MHz / system clock frequency

	attackTime  float32
	attackSlope float32
	decayTime   float32
	sustain     float32
	releaseTime float32
	releaseA    float32

	t         float32
	amplitude float32

	gateOn bool
	cycle  envCycle
}

func newEnvelope(clkf uint64) *envelope {
	return &envelope{
		tadj:        1000000.0 / float32(clkf),
		attackTime:  attackTimes[0],
		decayTime:   decayTimes[0],
		releaseTime: decayTimes[0],
	}
}

func (e *envelope) setAttack(v uint8)  { e.attackTime = attackTimes[v&0x0f] * e.tadj }
func (e *envelope) setDecay(v uint8)   { e.decayTime = decayTimes[v&0x0f] * e.tadj }
func (e *envelope) setSustain(v uint8) { e.sustain = float32(v&0x0f) / 15.0 }
func (e *envelope) setRelease(v uint8) { e.releaseTime = decayTimes[v&0x0f] * e.tadj }

// gate handles a rising or falling edge of the control register's
// GATE bit: rising starts (or restarts) attack from the current
// amplitude, falling starts release from the current amplitude.
func (e *envelope) gate(on bool) {
	e.gateOn = on

	if on {
		if e.attackTime <= 0 {
			e.attackSlope = 0
		} else {
			e.attackSlope = 1.0 / e.attackTime
		}
		if e.attackTime+e.decayTime < samplesTime {
			e.amplitude = 1.0
		}
		e.cycle = cycleAttack
	} else {
		e.releaseA = e.amplitude
		e.cycle = cycleRelease
	}

	e.t = 0
}

// tick advances the envelope by dt seconds and returns the new
// amplitude in [0, 1]. A phase that completes within this tick falls
// straight through into the next, matching the gate's documented
// instantaneous attack-decay-sustain chaining.
func (e *envelope) tick(dt float32) float32 {
	if e.gateOn {
		if e.cycle == cycleAttack {
			if e.amplitude < 1.0 {
				e.amplitude += e.attackSlope * dt
				if e.amplitude > 1.0 {
					e.amplitude = 1.0
				}
			} else {
				e.t = 0
				e.cycle = cycleDecay
			}
		}
		if e.cycle == cycleDecay {
			if e.t < e.decayTime {
				e.amplitude = expCurve(e.sustain, 1.0-e.sustain, e.t, e.decayTime/4.0)
			} else {
				e.t = 0
				e.cycle = cycleSustain
			}
		}
	} else if e.cycle == cycleRelease {
		if e.t < e.releaseTime {
			e.amplitude = expCurve(0, e.releaseA, e.t, e.releaseTime/4.0)
		} else {
			e.t = 0
			e.amplitude = 0
			e.cycle = cycleNone
		}
	}

	if e.cycle != cycleNone {
		e.t += dt
	}

	return e.amplitude
}
