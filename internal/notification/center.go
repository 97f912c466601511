package notification

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("notification center closed")

const subscriberBuffer = 16

// Center is a concurrency-safe in-memory notification history with
// subscriber fan-out.
type Center struct {
	mu sync.RWMutex

	history []Notification // oldest first
	subs    map[chan Notification]struct{}
	closed  bool

	// retention configuration
	maxHistory int           // max notifications kept (<= 0 = unlimited)
	ttl        time.Duration // expiry stamped on each notification (0 = never)
}

// NewCenter creates a Center with optional limits.
func NewCenter(maxHistory int, ttl time.Duration) *Center {
	return &Center{
		subs:       make(map[chan Notification]struct{}),
		maxHistory: maxHistory,
		ttl:        ttl,
	}
}

// Notify records n and broadcasts it. It never blocks: a subscriber whose
// buffer is full misses the notification.
func (c *Center) Notify(n Notification) {
	if c.ttl > 0 && n.ExpiresAt == nil {
		exp := n.CreatedAt.Add(c.ttl)
		n.ExpiresAt = &exp
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.history = append(c.history, n)
	if c.maxHistory > 0 && len(c.history) > c.maxHistory {
		over := len(c.history) - c.maxHistory
		c.history = c.history[over:]
	}

	for ch := range c.subs {
		select {
		case ch <- n:
		default:
			log.Printf("WARN: notification subscriber buffer full; dropping %s %s", n.Kind, n.ID)
		}
	}
}

// List returns the history, newest first.
func (c *Center) List() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, len(c.history))
	for i, n := range c.history {
		out[len(c.history)-1-i] = n
	}
	return out
}

// Subscribe returns a channel receiving every subsequent notification and a
// cancel func that unsubscribes and closes the channel.
func (c *Center) Subscribe() (<-chan Notification, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil, ErrClosed
	}

	ch := make(chan Notification, subscriberBuffer)
	c.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[ch]; ok {
				delete(c.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

// PruneExpired drops notifications that expired at or before now and returns
// how many were removed.
func (c *Center) PruneExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.history[:0]
	for _, n := range c.history {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(c.history) - len(kept)
	clear(c.history[len(kept):])
	c.history = kept
	return removed
}

// Close closes every subscriber channel. Later notifications are discarded.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}
