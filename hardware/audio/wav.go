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

package audio

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavSink is a diagnostic/test Sink that drains dispatched buffers
// straight to a .wav file instead of a playback queue. It has its own
// capture test and is available as a -audio-capture wiring option in
// cmd/caio.
type WavSink struct {
	f   *os.File
	enc *wav.Encoder
	buf *goaudio.IntBuffer
}

// NewWavSink creates path, truncating any existing file, and returns a
// Sink ready to receive dispatched buffers.
func NewWavSink(path string) (*WavSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	const bitDepth = 16
	const audioFormat = 1 // PCM
	enc := wav.NewEncoder(f, SampleRate, bitDepth, 1, audioFormat)
	return &WavSink{f: f, enc: enc, buf: NewBuffer()}, nil
}

// Acquire always returns the single reusable buffer: a capture sink
// has no free/playing rotation to manage.
func (s *WavSink) Acquire() *goaudio.IntBuffer { return s.buf }

// Dispatch writes buf's samples to the wav file.
func (s *WavSink) Dispatch(buf *goaudio.IntBuffer) {
	_ = s.enc.Write(buf)
}

// Close flushes the wav header/footer and closes the underlying file.
func (s *WavSink) Close() error {
	if err := s.enc.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
