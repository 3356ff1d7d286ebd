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

import "math"

// Filter cutoff range, in Hz, per the documented SID specification.
const (
	fcMin = 30.0
	fcMax = 12000.0
	fcBW  = fcMax - fcMin
)

// filter is the SID's single global multimode filter. The original
// chip's analogue ladder is approximated here by a Chamberlin
// state-variable filter run once per output sample, rather than the
// offline FIR-kernel convolution an exact recreation would need; this
// keeps filtering a constant-time per-sample operation, which matters
// once it's driven from the real-time audio sink.
type filter struct {
	ufc       uint16
	resonance uint8

	lopassOn, hipassOn, bandpassOn bool

	low, band float32
}

func (f *filter) freqHi(v uint8)     { f.ufc = (f.ufc & 0x0007) | (uint16(v) << 3) }
func (f *filter) freqLo(v uint8)     { f.ufc = (f.ufc & 0xfff8) | uint16(v&0x07) }
func (f *filter) setResonance(v uint8) { f.resonance = v & 0x0f }
func (f *filter) setLopass(b bool)   { f.lopassOn = b }
func (f *filter) setHipass(b bool)   { f.hipassOn = b }
func (f *filter) setBandpass(b bool) { f.bandpassOn = b }

func (f *filter) enabled() bool {
	return f.lopassOn || f.hipassOn || f.bandpassOn
}

func (f *filter) cutoff() float32 {
	return fcMin + fcBW*float32(f.ufc)/2048.0
}

// apply runs one sample through the state-variable filter and returns
// the sum of whichever outputs (low/band/high-pass) are enabled.
func (f *filter) apply(in float32) float32 {
	fc := f.cutoff()
	damping := 1.0 - float32(f.resonance)/15.0*0.9
	freqCoeff := float32(2.0 * math.Sin(math.Pi*float64(fc)/float64(samplingRate)))

	high := in - f.low - damping*f.band
	f.band += freqCoeff * high
	f.low += freqCoeff * f.band

	var out float32
	if f.lopassOn {
		out += f.low
	}
	if f.bandpassOn {
		out += f.band
	}
	if f.hipassOn {
		out += high
	}
	return out
}
