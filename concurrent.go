package iextp

import (
	"context"
	"sync"
)

// DecodeConcurrently decodes independent captures in parallel, one goroutine,
// one Decoder and one SequenceTracker per source. Sources must not share
// sequence state (e.g. split them by channel and session id first).
//
// Decoders publish into a ring buffer drained by a single goroutine, so sink
// is never called concurrently. Results of each source reach sink in that
// source's order; results of different sources interleave. opts.Tracker is
// ignored. Cancelling ctx stops every decoder before its next result. The
// returned stats are indexed like sources.
func DecodeConcurrently(ctx context.Context, sources []PacketSource, sink Sink, opts DecoderOptions) []Stats {
	stats := make([]Stats, len(sources))

	ring := newResultRing(RingCapacity, sinkHandler{sink: sink})
	ring.Start()

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src PacketSource) {
			defer wg.Done()

			// nil tracker: the decoder creates its own, logging with its id
			partOpts := opts
			partOpts.Tracker = nil
			decoder := NewDecoderWithOptions(partOpts)

			for r := range decoder.DecodeSource(src) {
				if ctx.Err() != nil {
					break
				}
				ring.Publish(r)
			}
			stats[i] = decoder.Stats()
			decoder.logger.Debug("partition done", "partition", i, "packets", stats[i].Packets, "messages", stats[i].Messages)
		}(i, src)
	}
	wg.Wait()

	// every producer has returned; the consumer only has to catch up
	_ = ring.Shutdown(context.WithoutCancel(ctx))

	return stats
}
