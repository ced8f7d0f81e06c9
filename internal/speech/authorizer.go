package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"trackthething/internal/ports"
)

var (
	ErrUnavailable = errors.New("speech recognition is not available on this platform")
	ErrTimeout     = errors.New("speech authorization request timed out")
)

const defaultAuthTimeout = 30 * time.Second

// Authorizer gates access to the native speech authorization prompt. The
// underlying system permission is a process-wide one-shot: at most one
// request is in flight, and every concurrent caller waits on that single
// outcome and observes the same result.
type Authorizer struct {
	bridge  ports.SpeechBridge
	timeout time.Duration

	mu       sync.Mutex
	inflight bool
	waiters  []chan bool
}

func NewAuthorizer(bridge ports.SpeechBridge, timeout time.Duration) *Authorizer {
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}
	return &Authorizer{bridge: bridge, timeout: timeout}
}

// Available reports whether a native speech bridge exists.
func (a *Authorizer) Available() bool {
	return a.bridge.Available()
}

// Request resolves the system speech permission. The native callback might
// never fire (the prompt depends on the user), so the wait is bounded.
func (a *Authorizer) Request(ctx context.Context) (bool, error) {
	if !a.bridge.Available() {
		return false, ErrUnavailable
	}

	ch := make(chan bool, 1)

	a.mu.Lock()
	a.waiters = append(a.waiters, ch)
	launch := !a.inflight
	a.inflight = true
	a.mu.Unlock()

	if launch {
		a.bridge.RequestAuthorization(a.complete)
	}

	timer := time.NewTimer(a.timeout)
	defer timer.Stop()

	select {
	case authorized := <-ch:
		return authorized, nil
	case <-timer.C:
		a.drop(ch)
		return false, ErrTimeout
	case <-ctx.Done():
		a.drop(ch)
		return false, ctx.Err()
	}
}

// complete releases every waiter with the same outcome.
func (a *Authorizer) complete(authorized bool) {
	a.mu.Lock()
	waiters := a.waiters
	a.waiters = nil
	a.inflight = false
	a.mu.Unlock()

	for _, ch := range waiters {
		ch <- authorized
	}
}

func (a *Authorizer) drop(ch chan bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, w := range a.waiters {
		if w == ch {
			a.waiters = append(a.waiters[:i], a.waiters[i+1:]...)
			return
		}
	}
}
