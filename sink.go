package iextp

import (
	"iter"
	"sync"
)

// Sink receives decoded results.
//
// IMPORTANT: Results are handed over as values, but a Result's Message is
// shared with the caller. Implementations that retain results must not
// mutate the messages.
type Sink interface {
	Publish(...Result)
}

// Drain feeds every result into sink and returns how many were published.
func Drain(results iter.Seq[Result], sink Sink) int {
	n := 0
	for r := range results {
		sink.Publish(r)
		n++
	}
	return n
}

// MemorySink stores results in memory, useful for testing.
// It is safe for concurrent use.
type MemorySink struct {
	mu      sync.RWMutex
	Results []Result
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		Results: make([]Result, 0),
	}
}

// Publish appends results to the in-memory slice.
func (m *MemorySink) Publish(results ...Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = append(m.Results, results...)
}

// Count returns the number of results stored.
func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Results)
}

// Get returns the result at the specified index.
func (m *MemorySink) Get(index int) Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Results[index]
}

// All returns a copy of all results stored.
func (m *MemorySink) All() []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Result, len(m.Results))
	copy(out, m.Results)
	return out
}

// Messages returns the stored results of kind ResultMessage.
func (m *MemorySink) Messages() []Result {
	return m.filter(ResultMessage)
}

// Anomalies returns the stored results of kind ResultAnomaly.
func (m *MemorySink) Anomalies() []Result {
	return m.filter(ResultAnomaly)
}

// Errors returns the stored results of kind ResultError.
func (m *MemorySink) Errors() []Result {
	return m.filter(ResultError)
}

func (m *MemorySink) filter(kind ResultKind) []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Result, 0)
	for _, r := range m.Results {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// DiscardSink discards all results, useful for benchmarking.
type DiscardSink struct {
}

// NewDiscardSink creates a new DiscardSink.
func NewDiscardSink() *DiscardSink {
	return &DiscardSink{}
}

// Publish does nothing.
func (p *DiscardSink) Publish(results ...Result) {

}
