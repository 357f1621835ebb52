package observability

import (
	"context"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/events"
)

// Handler consumes one event.
type Handler func(domain.Event)

// Watch subscribes to bus and calls every handler, in order, for each event
// until ctx is done or the bus closes. The returned function unsubscribes and
// waits until the handlers have seen every event already delivered.
func Watch(ctx context.Context, bus *events.Bus, buffer int, handlers ...Handler) (stop func()) {
	ch, cancel := bus.Subscribe(buffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				for _, h := range handlers {
					h(ev)
				}
			case <-ctx.Done():
				cancel()
				// Drain what was already buffered.
				for ev := range ch {
					for _, h := range handlers {
						h(ev)
					}
				}
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
