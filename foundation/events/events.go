// Package events fans out blockchain event messages to subscribers such as
// websocket clients.
package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// messageBuffer is the number of messages a slow subscriber can fall behind
// before messages are dropped for it.
const messageBuffer = 100

// Events maintains the set of subscribed channels keyed by subscription id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
}

// New constructs an events value for subscribing and sending events.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Subscribe registers a new subscriber and returns its id and the channel
// that receives events. The channel is closed by Unsubscribe or Shutdown.
func (evt *Events) Subscribe() (string, <-chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan string, messageBuffer)
	evt.subs[id] = ch

	return id, ch
}

// Unsubscribe closes and removes the channel for the subscription id.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscription %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Count returns the number of active subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}

// Send signals a message to every subscriber. Send will not block waiting
// for a receiver, the message is dropped for any subscriber that is full.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Shutdown closes and removes every subscription.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}
