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
	"testing"
	"time"

	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/internal/test"
)

func TestBufferFormat(t *testing.T) {
	buf := audio.NewBuffer()
	test.ExpectEquality(t, len(buf.Data), audio.BlockSize)
	test.ExpectEquality(t, buf.Format.NumChannels, 1)
	test.ExpectEquality(t, buf.Format.SampleRate, audio.SampleRate)
}

func TestQueueCirculation(t *testing.T) {
	q := audio.NewBufferQueue(2)

	// producer side: borrow, fill, dispatch
	buf := q.Acquire()
	test.ExpectSuccess(t, buf != nil)
	buf.Data[0] = 1234
	q.Dispatch(buf)

	// consumer side: drain and return
	got := q.Consume()
	test.ExpectSuccess(t, got != nil)
	test.ExpectEquality(t, got.Data[0], 1234)
	q.Release(got)

	// the released buffer is available to the producer again
	test.ExpectSuccess(t, q.Acquire() != nil)
}

func TestAcquireBlocksUntilRelease(t *testing.T) {
	q := audio.NewBufferQueue(1)

	first := q.Acquire()
	test.ExpectSuccess(t, first != nil)
	q.Dispatch(first)

	acquired := make(chan struct{})
	go func() {
		q.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire returned with no free buffer")
	case <-time.After(10 * time.Millisecond):
	}

	q.Release(q.Consume())

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Acquire did not observe the released buffer")
	}
}

func TestStopUnblocksProducer(t *testing.T) {
	q := audio.NewBufferQueue(1)
	q.Dispatch(q.Acquire())

	done := make(chan bool)
	go func() {
		done <- q.Acquire() == nil
	}()

	q.Stop()

	select {
	case gotNil := <-done:
		test.ExpectSuccess(t, gotNil)
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock after Stop")
	}
}

func TestStopUnblocksConsumer(t *testing.T) {
	q := audio.NewBufferQueue(1)

	done := make(chan bool)
	go func() {
		done <- q.Consume() == nil
	}()

	q.Stop()

	select {
	case gotNil := <-done:
		test.ExpectSuccess(t, gotNil)
	case <-time.After(time.Second):
		t.Fatal("Consume did not unblock after Stop")
	}
}
