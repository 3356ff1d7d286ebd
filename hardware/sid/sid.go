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

// Package sid implements the MOS 6581 Sound Interface Device: three
// oscillator/envelope voice pairs, a single global multimode filter,
// and the handshake with the audio sink that drains fixed-size PCM
// blocks at 44.1kHz.
package sid

import (
	goaudio "github.com/go-audio/audio"

	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/hardware/clock"
)

const (
	samplingRate = audio.SampleRate
	blockSize    = audio.BlockSize
	samplesTime  = float32(blockSize) / float32(samplingRate) // ~20ms
)

// Register offsets, 7 per voice followed by the shared filter/volume
// block and the four read-only registers.
const (
	regFreqLo = iota
	regFreqHi
	regPWLo
	regPWHi
	regControl
	regAD
	regSR

	voiceRegs = regSR + 1
)

const (
	RegFcLo = voiceRegs*3 + iota
	RegFcHi
	RegResFilt
	RegModeVol
	RegPotX
	RegPotY
	RegOsc3
	RegEnv3

	RegMax
)

// Voice control register bits.
const (
	CtrlGate = 0x01
	CtrlSync = 0x02
	CtrlRing = 0x04
	CtrlTest = 0x08
)

// RESFILT bits.
const (
	FilterVoice1 = 0x01
	FilterVoice2 = 0x02
	FilterVoice3 = 0x04
	FilterExt    = 0x08
)

// MODEVOL bits.
const (
	VolumeMask = 0x0f
	ModeLP     = 0x10
	ModeBP     = 0x20
	ModeHP     = 0x40
	Voice3Off  = 0x80
)

// voice pairs one oscillator with one envelope generator and the raw
// control-register byte (kept for Read-back and Dump).
type voice struct {
	osc  *oscillator
	env  *envelope
	ctrl uint8
}

func (v *voice) writeControl(data uint8) {
	v.ctrl = data
	v.osc.waveType = data >> 4
	v.osc.ring = data&CtrlRing != 0
	v.osc.syncGated = data&CtrlSync != 0
	v.osc.test = data&CtrlTest != 0

	gate := data&CtrlGate != 0
	if gate != v.env.gateOn {
		v.env.gate(gate)
	}
}

// Chip is one MOS 6581 instance.
type Chip struct {
	label string
	clkf  uint64

	voices [3]voice
	filt   filter

	volume        uint8
	clickOffset   float32
	voice3Off     bool
	filterRouting [3]bool
	filterExt     bool

	regs [RegMax]uint8

	cyclesPerSample float32
	cycleAcc        float32

	// Sink is the audio handshake collaborator (§4.7): a fixed-size
	// PCM buffer is borrowed from it, filled one sample at a time, and
	// dispatched back once full.
	Sink  audio.Sink
	block *goaudio.IntBuffer
	idx   int
}

// New creates a SID clocked at clkf Hz (the system clock frequency,
// not the audio sample rate) and wired to sink.
func New(label string, clkf uint64, sink audio.Sink) *Chip {
	c := &Chip{label: label, clkf: clkf, Sink: sink}
	for i := range c.voices {
		c.voices[i].osc = newOscillator(clkf)
		c.voices[i].env = newEnvelope(clkf)
	}
	// Each voice rings/syncs against the preceding one, wrapping voice
	// 0's predecessor to voice 2, matching the real chip's fixed wiring.
	c.voices[0].osc.syncOsc = c.voices[2].osc
	c.voices[1].osc.syncOsc = c.voices[0].osc
	c.voices[2].osc.syncOsc = c.voices[1].osc

	c.cyclesPerSample = float32(clkf) / float32(samplingRate)

	if sink != nil {
		c.block = sink.Acquire()
	}
	if c.block == nil {
		c.block = audio.NewBuffer()
	}
	return c
}

func (c *Chip) Label() string { return c.label }
func (c *Chip) Size() int     { return RegMax }

func (c *Chip) Dump() []uint8 {
	out := make([]uint8, RegMax)
	for i := range out {
		out[i] = c.Read(uint16(i))
	}
	return out
}

// Read returns the value of register offset. Only OSC3/ENV3/POTX/POTY
// are live reads; every other register reads back what was last
// written, as on the real chip (write-only registers read as the
// shadow latch, not as $FF, matching the documented behaviour).
func (c *Chip) Read(offset uint16) uint8 {
	switch offset {
	case RegPotX, RegPotY:
		return 0xff // no paddle wired up to this core
	case RegOsc3:
		return uint8((c.voices[2].osc.amplitude*0.5 + 0.5) * 255)
	case RegEnv3:
		return uint8(c.voices[2].env.amplitude * 255)
	default:
		if int(offset) >= RegMax {
			return 0
		}
		return c.regs[offset]
	}
}

func (c *Chip) Write(offset uint16, data uint8) {
	if int(offset) >= RegMax {
		return
	}
	c.regs[offset] = data

	if offset < voiceRegs*3 {
		v := &c.voices[offset/voiceRegs]
		switch offset % voiceRegs {
		case regFreqLo:
			v.osc.freqLo(data)
		case regFreqHi:
			v.osc.freqHi(data)
		case regPWLo:
			v.osc.widthLo(data)
		case regPWHi:
			v.osc.widthHi(data)
		case regControl:
			v.writeControl(data)
		case regAD:
			v.env.setAttack(data >> 4)
			v.env.setDecay(data)
		case regSR:
			v.env.setSustain(data >> 4)
			v.env.setRelease(data)
		}
		return
	}

	switch offset {
	case RegFcLo:
		c.filt.freqLo(data)
	case RegFcHi:
		c.filt.freqHi(data)
	case RegResFilt:
		c.filt.setResonance(data >> 4)
		c.filterRouting[0] = data&FilterVoice1 != 0
		c.filterRouting[1] = data&FilterVoice2 != 0
		c.filterRouting[2] = data&FilterVoice3 != 0
		c.filterExt = data&FilterExt != 0
	case RegModeVol:
		c.filt.setLopass(data&ModeLP != 0)
		c.filt.setBandpass(data&ModeBP != 0)
		c.filt.setHipass(data&ModeHP != 0)
		c.voice3Off = data&Voice3Off != 0
		if vol := data & VolumeMask; vol != c.volume {
			// The documented "4th voice" PWM click: a volume-nibble
			// change produces a DC offset proportional to 4*volume-1
			// for the remainder of the current sample block, the
			// technique software digi-players ride to play PCM through
			// the volume DAC.
			c.volume = vol
			c.clickOffset = (4.0*float32(vol) - 1.0) / 64.0
		}
	}
}

// Tick implements clock.Tickable: it accumulates base cycles and, once
// a full audio-sample period has elapsed, advances every voice by one
// sample period and emits a PCM sample.
func (c *Chip) Tick(clk *clock.Clock) uint64 {
	c.cycleAcc++
	if c.cycleAcc < c.cyclesPerSample {
		return 1
	}
	c.cycleAcc -= c.cyclesPerSample
	c.produceSample()
	return 1
}

// produceSample advances every voice and the filter by one sample
// period (1/44100s) and appends the mixed, master-volume-scaled result
// to the current block, dispatching and re-acquiring a fresh one every
// blockSize samples.
func (c *Chip) produceSample() {
	const dt = float32(1.0) / float32(samplingRate)

	var amps [3]float32
	for i := range c.voices {
		o := c.voices[i].osc.tick(dt)
		e := c.voices[i].env.tick(dt)
		amps[i] = o * e
	}

	var filtered, unfiltered float32
	for i := 0; i < 3; i++ {
		if i == 2 && c.voice3Off && !c.filterRouting[2] {
			// Voice 3's oscillator/envelope output is entirely bypassed
			// from the mixer unless explicitly routed into the filter.
			continue
		}
		if c.filterRouting[i] {
			filtered += amps[i]
		} else {
			unfiltered += amps[i]
		}
	}

	out := unfiltered
	if c.filt.enabled() {
		out += c.filt.apply(filtered)
	} else {
		out += filtered
	}
	out /= 3.0
	out *= float32(c.volume) / 15.0
	out += c.clickOffset

	if out > 1 {
		out = 1
	} else if out < -1 {
		out = -1
	}

	c.appendSample(int(out * 32767))
}

func (c *Chip) appendSample(sample int) {
	if c.idx >= len(c.block.Data) {
		c.idx = 0
	}
	c.block.Data[c.idx] = sample
	c.idx++

	if c.idx < blockSize {
		return
	}
	c.idx = 0
	c.clickOffset = 0

	if c.Sink == nil {
		return
	}
	c.Sink.Dispatch(c.block)
	next := c.Sink.Acquire()
	if next == nil {
		// Stop was requested: discard this block.
		next = audio.NewBuffer()
	}
	c.block = next
}
