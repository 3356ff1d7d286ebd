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
	"sync"

	"github.com/go-audio/audio"
)

// BufferQueue is the free/playing double-queue audio sink: a fixed
// pool of buffers circulates between a free channel (borrowed by the
// SID, the producer) and a playing channel (drained by a consumer
// goroutine owned by the UI front end, via Consume/Release). The
// channels themselves provide the producer/consumer thread safety
// without a separate mutex.
type BufferQueue struct {
	free    chan *audio.IntBuffer
	playing chan *audio.IntBuffer

	stopOnce sync.Once
	stop     chan struct{}
}

// NewBufferQueue creates a queue with depth buffers in circulation.
func NewBufferQueue(depth int) *BufferQueue {
	if depth < 1 {
		depth = 1
	}
	q := &BufferQueue{
		free:    make(chan *audio.IntBuffer, depth),
		playing: make(chan *audio.IntBuffer, depth),
		stop:    make(chan struct{}),
	}
	for i := 0; i < depth; i++ {
		q.free <- NewBuffer()
	}
	return q
}

// Acquire borrows a buffer from the free queue, blocking the producer
// until one is available. If Stop has been called it returns nil
// immediately instead of blocking forever.
func (q *BufferQueue) Acquire() *audio.IntBuffer {
	select {
	case <-q.stop:
		return nil
	default:
	}
	select {
	case buf := <-q.free:
		return buf
	case <-q.stop:
		return nil
	}
}

// Dispatch enqueues a filled buffer onto the playing queue.
func (q *BufferQueue) Dispatch(buf *audio.IntBuffer) {
	select {
	case q.playing <- buf:
	case <-q.stop:
	}
}

// Consume is called by the UI-owned consumer thread to block for the
// next playing buffer; it returns nil once Stop has been called and no
// more buffers are pending.
func (q *BufferQueue) Consume() *audio.IntBuffer {
	select {
	case buf := <-q.playing:
		return buf
	case <-q.stop:
		select {
		case buf := <-q.playing:
			return buf
		default:
			return nil
		}
	}
}

// Release returns a drained buffer to the free queue for reuse by the
// producer.
func (q *BufferQueue) Release(buf *audio.IntBuffer) {
	select {
	case q.free <- buf:
	case <-q.stop:
	}
}

// Stop cancels the queue: every blocked Acquire/Dispatch/Consume/
// Release call returns immediately from then on.
func (q *BufferQueue) Stop() {
	q.stopOnce.Do(func() { close(q.stop) })
}
