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

package sid_test

import (
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/hardware/clock"
	"github.com/cdio/caio/hardware/sid"
	"github.com/cdio/caio/internal/test"
)

// captureSink records every dispatched block.
type captureSink struct {
	blocks [][]int
}

func (s *captureSink) Acquire() *goaudio.IntBuffer { return audio.NewBuffer() }

func (s *captureSink) Dispatch(buf *goaudio.IntBuffer) {
	cp := make([]int, len(buf.Data))
	copy(cp, buf.Data)
	s.blocks = append(s.blocks, cp)
}

func newChip() (*sid.Chip, *captureSink, *clock.Clock) {
	sink := &captureSink{}
	clk := clock.New("test-clock", clock.PAL, 0)
	return sid.New("test-sid", clock.PAL, sink), sink, clk
}

// voiceBase returns the register offset of voice n's block.
func voiceBase(n int) uint16 { return uint16(n * 7) }

// tickBlocks runs the chip until at least n blocks have been captured.
func tickBlocks(t *testing.T, c *sid.Chip, clk *clock.Clock, sink *captureSink, n int) {
	t.Helper()
	// one block is ~19700 base cycles at the PAL clock
	for i := 0; i < 25000*n && len(sink.blocks) < n; i++ {
		c.Tick(clk)
	}
	if len(sink.blocks) < n {
		t.Fatalf("captured %d blocks, want at least %d", len(sink.blocks), n)
	}
}

func peak(samples []int) int {
	p := 0
	for _, s := range samples {
		if s > p {
			p = s
		}
		if -s > p {
			p = -s
		}
	}
	return p
}

// gateSawVoice sets voice n to a ~256Hz sawtooth at full sustain with
// an instant attack and opens the gate.
func gateSawVoice(c *sid.Chip, n int) {
	base := voiceBase(n)
	c.Write(base+0, 0x00) // freq lo
	c.Write(base+1, 0x11) // freq hi
	c.Write(base+5, 0x00) // attack/decay
	c.Write(base+6, 0xf0) // sustain/release
	c.Write(base+4, 0x21) // sawtooth + gate
}

func TestBlockSizeAndCadence(t *testing.T) {
	c, sink, clk := newChip()
	c.Write(sid.RegModeVol, 0x0f)

	tickBlocks(t, c, clk, sink, 2)
	for _, b := range sink.blocks {
		test.ExpectEquality(t, len(b), audio.BlockSize)
	}
}

func TestGatedVoiceProducesOutput(t *testing.T) {
	c, sink, clk := newChip()
	c.Write(sid.RegModeVol, 0x0f)
	gateSawVoice(c, 0)

	tickBlocks(t, c, clk, sink, 2)

	// second block: the click offset of the volume write has been and
	// gone, the voice itself carries the signal
	test.ExpectSuccess(t, peak(sink.blocks[1]) > 1000)
}

func TestZeroVolumeSilences(t *testing.T) {
	c, sink, clk := newChip()
	gateSawVoice(c, 0)

	tickBlocks(t, c, clk, sink, 2)
	test.ExpectEquality(t, peak(sink.blocks[1]), 0)
}

func TestVoice3BypassSilences(t *testing.T) {
	c, sink, clk := newChip()
	gateSawVoice(c, 2)

	// voice 3 disconnected, not routed into the filter
	c.Write(sid.RegModeVol, sid.Voice3Off|0x0f)

	tickBlocks(t, c, clk, sink, 2)
	test.ExpectEquality(t, peak(sink.blocks[1]), 0)
}

func TestVoice3BypassIgnoredWhenFiltered(t *testing.T) {
	c, sink, clk := newChip()
	gateSawVoice(c, 2)

	// routed into the filter: the 3OFF bit no longer silences it
	c.Write(sid.RegFcHi, 0xff) // cutoff wide open
	c.Write(sid.RegResFilt, sid.FilterVoice3)
	c.Write(sid.RegModeVol, sid.Voice3Off|sid.ModeLP|0x0f)

	tickBlocks(t, c, clk, sink, 2)
	test.ExpectSuccess(t, peak(sink.blocks[1]) > 100)
}

func TestVolumeClickDecaysWithinOneBlock(t *testing.T) {
	c, sink, clk := newChip()

	// no voices playing: the only signal is the volume-change click
	c.Write(sid.RegModeVol, 0x0f)

	tickBlocks(t, c, clk, sink, 2)
	test.ExpectSuccess(t, peak(sink.blocks[0]) > 0)
	test.ExpectEquality(t, peak(sink.blocks[1]), 0)
}

func TestRegisterShadowReadback(t *testing.T) {
	c, _, _ := newChip()

	c.Write(0x00, 0x34)
	c.Write(0x01, 0x12)
	test.ExpectEquality(t, c.Read(0x00), 0x34)
	test.ExpectEquality(t, c.Read(0x01), 0x12)

	// no paddles wired up
	test.ExpectEquality(t, c.Read(sid.RegPotX), 0xff)
	test.ExpectEquality(t, c.Read(sid.RegPotY), 0xff)
}

func TestEnv3TracksVoice3Envelope(t *testing.T) {
	c, sink, clk := newChip()
	c.Write(sid.RegModeVol, 0x0f)

	test.ExpectEquality(t, c.Read(sid.RegEnv3), 0)

	gateSawVoice(c, 2)
	tickBlocks(t, c, clk, sink, 1)

	// instant attack, full sustain: the envelope sits at maximum
	test.ExpectSuccess(t, c.Read(sid.RegEnv3) > 200)
}
