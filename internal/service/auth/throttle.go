package auth

import (
	"sync"
	"time"
)

const (
	maxLoginFailures   = 5
	loginFailureWindow = time.Minute
)

type failureWindow struct {
	count   int
	started time.Time
}

// loginThrottle counts failed logins per client. A window opens with the
// first attempt seen for a client and resets once it is older than window;
// successful logins are not counted.
type loginThrottle struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	failures map[string]*failureWindow
	now      func() time.Time
}

func newLoginThrottle(max int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		max:      max,
		window:   window,
		failures: make(map[string]*failureWindow),
		now:      time.Now,
	}
}

// Allow reports whether client may attempt another login.
func (t *loginThrottle) Allow(client string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	fw := t.current(client)
	return fw.count < t.max
}

// Fail records a failed login for client.
func (t *loginThrottle) Fail(client string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current(client).count++
}

// current returns client's window, opening a fresh one when it expired.
// Expired windows of other clients are dropped on the way.
func (t *loginThrottle) current(client string) *failureWindow {
	now := t.now()
	for key, fw := range t.failures {
		if key != client && now.Sub(fw.started) > t.window {
			delete(t.failures, key)
		}
	}

	fw, ok := t.failures[client]
	if !ok || now.Sub(fw.started) > t.window {
		fw = &failureWindow{started: now}
		t.failures[client] = fw
	}
	return fw
}
