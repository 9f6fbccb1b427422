package mailer

import "time"

// Backoff doubles the pause before each requeue while sends keep failing,
// up to Max. A success resets it.
type Backoff struct {
	Base     time.Duration
	Max      time.Duration
	failures int
}

func NewBackoff(base, maxWait time.Duration) *Backoff {
	return &Backoff{Base: base, Max: maxWait}
}

// Failure records a failed send and returns how long to wait before requeueing.
func (b *Backoff) Failure() time.Duration {
	d := b.Base << b.failures
	if d <= 0 || d > b.Max {
		d = b.Max
	} else {
		b.failures++
	}
	return d
}

func (b *Backoff) Success() { b.failures = 0 }
