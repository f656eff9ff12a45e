package stream

import "time"

// delayCap bounds the linear backoff ramp. With the default 5s base the
// delay sequence is 5s, 10s, 15s, 20s, 25s, 25s, ...
const delayCap = 5

// Policy computes reconnect delays and the give-up threshold. It is pure:
// the same attempt counter always yields the same answer, no jitter.
type Policy struct {
	Base        time.Duration
	MaxAttempts uint32
}

// Delay returns how long to wait before the given reconnect attempt.
func (p Policy) Delay(attempt uint32) time.Duration {
	n := attempt
	if n > delayCap {
		n = delayCap
	}
	return p.Base * time.Duration(n)
}

// Exhausted reports whether the attempt counter has reached the ceiling.
func (p Policy) Exhausted(attempt uint32) bool {
	return attempt >= p.MaxAttempts
}
