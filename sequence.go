package iextp

import "log/slog"

// SequenceTracker checks message sequence continuity for one feed session.
//
// It is plain state owned by the caller: not safe for concurrent use, and
// decoding independent captures concurrently needs one tracker per capture.
// The tracker never fails decoding; problems are returned as anomalies.
type SequenceTracker struct {
	started   bool
	channelID uint32
	sessionID uint32
	last      uint64
	resets    int
	logger    *slog.Logger // nil: package logger
}

// NewSequenceTracker creates a tracker with no session observed yet.
func NewSequenceTracker() *SequenceTracker {
	return &SequenceTracker{}
}

// Observe checks the message at index within the segment described by h and
// returns its sequence number, plus an anomaly when it does not follow the
// last accepted message.
func (t *SequenceTracker) Observe(h SegmentHeader, index int) (uint64, *Anomaly) {
	seq := h.SequenceAt(index)
	return seq, t.ObserveSequence(h.ChannelID, h.SessionID, seq)
}

// ObserveSequence applies one sequence number:
//   - first number of a session (or after a session/channel change): accepted
//   - last+1: accepted
//   - greater than last+1: SequenceGap, then resync to seq
//   - less than or equal to last: DuplicateOrOutOfOrder, last is kept
func (t *SequenceTracker) ObserveSequence(channelID, sessionID uint32, seq uint64) *Anomaly {
	if !t.started || t.sessionID != sessionID || t.channelID != channelID {
		if t.started {
			t.resets++
			t.log().Info("sequence session reset",
				"old_channel_id", t.channelID,
				"old_session_id", t.sessionID,
				"channel_id", channelID,
				"session_id", sessionID,
				"last_seq", t.last,
			)
		}
		t.started = true
		t.channelID = channelID
		t.sessionID = sessionID
		t.last = seq
		return nil
	}

	expected := t.last + 1
	switch {
	case seq == expected:
		t.last = seq
		return nil
	case seq > expected:
		a := &Anomaly{
			Kind:      AnomalySequenceGap,
			SessionID: sessionID,
			Sequence:  seq,
			Expected:  expected,
			Missing:   seq - expected,
		}
		t.last = seq
		return a
	default:
		return &Anomaly{
			Kind:      AnomalyDuplicateOrOutOfOrder,
			SessionID: sessionID,
			Sequence:  seq,
			Expected:  expected,
		}
	}
}

// SetLogger routes the tracker's log lines to l instead of the package logger.
func (t *SequenceTracker) SetLogger(l *slog.Logger) {
	t.logger = l
}

func (t *SequenceTracker) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return logger
}

// Last returns the last accepted sequence number, and false before the first
// observation.
func (t *SequenceTracker) Last() (uint64, bool) {
	return t.last, t.started
}

// Session returns the channel and session id currently tracked.
func (t *SequenceTracker) Session() (channelID, sessionID uint32) {
	return t.channelID, t.sessionID
}

// Resets returns how many times a new session replaced the tracked one.
func (t *SequenceTracker) Resets() int {
	return t.resets
}

// Reset forgets the tracked session. The logger is kept.
func (t *SequenceTracker) Reset() {
	*t = SequenceTracker{logger: t.logger}
}
