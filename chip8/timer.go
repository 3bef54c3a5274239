package chip8

import (
	"sync"
	"time"
)

// TickInterval is the period at which a Timer decrements (60Hz).
const TickInterval = 16666667 * time.Nanosecond

// Timer is an 8-bit register that counts down to zero at 60Hz once set,
// independently of instruction execution. The zero value is a stopped
// timer holding zero. It is safe for concurrent use.
type Timer struct {
	mu    sync.Mutex
	value byte
	stop  chan struct{} // closed to retire the running decay goroutine
}

// Get returns the current value.
func (t *Timer) Get() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Set stores v and restarts the countdown from it. Any countdown already
// in progress is stopped first.
func (t *Timer) Set(v byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.value = v
	if v > 0 {
		t.stop = make(chan struct{})
		go t.decay(t.stop)
	}
}

func (t *Timer) decay(stop chan struct{}) {
	tick := time.NewTicker(TickInterval)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
		}
		t.mu.Lock()
		if t.stop != stop {
			// Superseded by Set between the tick and the lock.
			t.mu.Unlock()
			return
		}
		t.value--
		done := t.value == 0
		if done {
			t.stop = nil
		}
		t.mu.Unlock()
		if done {
			return
		}
	}
}
