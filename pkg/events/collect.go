package events

import (
	"sync"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// Collector drains a subscription into memory. Useful for tests and run summaries.
type Collector struct {
	mu     sync.Mutex
	events []domain.Event
	done   chan struct{}
	cancel func()
}

// Collect subscribes to the bus and records every delivered event until Stop is called.
func Collect(b *Bus, buffer int) *Collector {
	ch, cancel := b.Subscribe(buffer)
	c := &Collector{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(c.done)
		for ev := range ch {
			c.mu.Lock()
			c.events = append(c.events, ev)
			c.mu.Unlock()
		}
	}()
	return c
}

// Stop unsubscribes and waits until every buffered event is recorded.
func (c *Collector) Stop() []domain.Event {
	c.cancel()
	<-c.done
	return c.Events()
}

// Events returns a copy of the events recorded so far.
func (c *Collector) Events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Logs returns the log events among the recorded events.
func (c *Collector) Logs() []domain.LogEvent {
	var logs []domain.LogEvent
	for _, ev := range c.Events() {
		if ev.Type == domain.EventLog && ev.Log != nil {
			logs = append(logs, *ev.Log)
		}
	}
	return logs
}

// Count returns how many recorded events have the given type.
func (c *Collector) Count(t domain.EventType) int {
	n := 0
	for _, ev := range c.Events() {
		if ev.Type == t {
			n++
		}
	}
	return n
}
