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

// Package audio implements the handshake between the SID's sample
// producer and the UI-owned consumer thread: a fixed-size PCM buffer
// format and a free/playing double-queue sink that the producer
// borrows from and dispatches into.
package audio

import "github.com/go-audio/audio"

// SampleRate and BlockSize are the C-64 configuration's fixed audio
// parameters: 44.1kHz mono, one block every 20ms.
const (
	SampleRate = 44100
	BlockSize  = 882
)

// Format is the canonical PCM format every buffer exchanged through a
// Sink uses.
var Format = &audio.Format{NumChannels: 1, SampleRate: SampleRate}

// NewBuffer allocates one fixed-length BlockSize sample buffer in the
// canonical format, the unit of exchange between the SID and a Sink.
func NewBuffer() *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         Format,
		Data:           make([]int, BlockSize),
		SourceBitDepth: 16,
	}
}

// Sink is the producer-side contract: Acquire borrows a buffer to
// fill (blocking until one is available, or returning nil if the sink
// has been stopped - the producer must treat a nil result as "discard
// this block"), Dispatch hands a filled buffer off for consumption.
type Sink interface {
	Acquire() *audio.IntBuffer
	Dispatch(buf *audio.IntBuffer)
}
