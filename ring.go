package iextp

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
)

// ErrRingShutdownTimeout is returned when a ring buffer could not drain before
// the shutdown context ended.
var ErrRingShutdownTimeout = errors.New("ring: shutdown timeout")

// resultHandler consumes results on the single consumer goroutine.
type resultHandler interface {
	OnResult(r Result)
}

// sinkHandler forwards every result to a Sink, one at a time.
type sinkHandler struct {
	sink Sink
}

func (h sinkHandler) OnResult(r Result) {
	h.sink.Publish(r)
}

// resultRing is a multi-producer single-consumer ring buffer. Decoder
// goroutines publish into it; one consumer goroutine hands results to the
// handler, so the handler never sees concurrent calls.
type resultRing struct {
	_                [56]byte
	producerSequence atomic.Int64
	_                [56]byte
	consumerSequence atomic.Int64
	_                [56]byte

	buffer     []Result
	bufferMask int64
	capacity   int64

	// published[i] holds the sequence last written to slot i.
	published []int64

	handler resultHandler

	isShutdown atomic.Bool
	done       chan struct{}
}

// newResultRing creates a ring; capacity must be a power of 2.
func newResultRing(capacity int64, handler resultHandler) *resultRing {
	if capacity <= 0 || (capacity&(capacity-1)) != 0 {
		panic("ring: capacity must be a power of 2")
	}

	rb := &resultRing{
		buffer:     make([]Result, capacity),
		published:  make([]int64, capacity),
		capacity:   capacity,
		bufferMask: capacity - 1,
		handler:    handler,
		done:       make(chan struct{}),
	}

	rb.producerSequence.Store(-1)
	rb.consumerSequence.Store(-1)
	for i := range rb.published {
		atomic.StoreInt64(&rb.published[i], -1)
	}

	return rb
}

// Publish claims the next slot and writes r into it, waiting while the ring
// is full. Safe for concurrent producers. Results published after Shutdown
// are dropped.
func (rb *resultRing) Publish(r Result) {
	if rb.isShutdown.Load() {
		return
	}

	var nextSeq int64
	for {
		current := rb.producerSequence.Load()
		nextSeq = current + 1

		// a producer may not lap the consumer
		wrapPoint := nextSeq - rb.capacity
		if wrapPoint > rb.consumerSequence.Load() {
			runtime.Gosched()
			continue
		}

		if rb.producerSequence.CompareAndSwap(current, nextSeq) {
			break
		}
		runtime.Gosched()
	}

	index := nextSeq & rb.bufferMask
	rb.buffer[index] = r
	atomic.StoreInt64(&rb.published[index], nextSeq)
}

// Start runs the consumer loop on its own goroutine.
func (rb *resultRing) Start() {
	go rb.consumerLoop()
}

// Shutdown stops accepting results and waits until everything already
// claimed has been handled.
func (rb *resultRing) Shutdown(ctx context.Context) error {
	rb.isShutdown.Store(true)

	select {
	case <-rb.done:
		return nil
	case <-ctx.Done():
		return ErrRingShutdownTimeout
	}
}

func (rb *resultRing) consumerLoop() {
	defer close(rb.done)

	next := rb.consumerSequence.Load() + 1
	for {
		available := rb.producerSequence.Load()

		if rb.isShutdown.Load() {
			rb.consume(next, rb.producerSequence.Load())
			return
		}

		if next > available {
			runtime.Gosched()
			continue
		}
		next = rb.consume(next, available)
	}
}

// consume hands over slots next..upTo and returns the following sequence.
func (rb *resultRing) consume(next, upTo int64) int64 {
	for next <= upTo {
		index := next & rb.bufferMask

		// slot claimed but not yet written
		for atomic.LoadInt64(&rb.published[index]) != next {
			runtime.Gosched()
		}

		r := rb.buffer[index]
		rb.buffer[index] = Result{}
		rb.handler.OnResult(r)

		rb.consumerSequence.Store(next)
		next++
	}
	return next
}

// Pending returns how many claimed results are not handled yet.
func (rb *resultRing) Pending() int64 {
	return rb.producerSequence.Load() - rb.consumerSequence.Load()
}
