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

package audio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/internal/test"
)

func TestWavSinkCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")

	sink, err := audio.NewWavSink(path)
	test.ExpectSuccess(t, err)

	buf := sink.Acquire()
	test.ExpectSuccess(t, buf != nil)
	for i := range buf.Data {
		buf.Data[i] = 1000
	}
	sink.Dispatch(buf)
	test.ExpectSuccess(t, sink.Close())

	f, err := os.Open(path)
	test.ExpectSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	decoded, err := dec.FullPCMBuffer()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(decoded.Data), audio.BlockSize)
	test.ExpectEquality(t, decoded.Data[0], 1000)
	test.ExpectEquality(t, decoded.Format.SampleRate, audio.SampleRate)
}
