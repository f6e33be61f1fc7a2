// Package signals turns process signals into events for a single consumer
// loop. SIGHUP requests a reload of the global config; SIGINT and SIGTERM
// request shutdown.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/tmpe/globalconfig/lib/util/logger"
)

var log = logger.GetLogger()

// Event is what a received signal asks the program to do.
type Event int

const (
	Reload Event = iota
	Shutdown
)

func (e Event) String() string {
	switch e {
	case Reload:
		return "reload"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Dispatcher receives process signals and forwards them as Events.
// Reload requests arriving while one is still pending are merged.
type Dispatcher struct {
	sigs     chan os.Signal
	events   chan Event
	stopOnce sync.Once
}

// New creates a Dispatcher subscribed to the platform's reload and shutdown
// signals. Call Stop to unsubscribe.
func New() *Dispatcher {
	d := newDispatcher()
	signal.Notify(d.sigs, watched...)
	return d
}

func newDispatcher() *Dispatcher {
	return &Dispatcher{
		// buffered so signals delivered while Run is busy are not lost
		sigs:   make(chan os.Signal, 1),
		events: make(chan Event, 1),
	}
}

// Events returns the channel the consumer selects on.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// Run forwards signals until ctx is done or Stop is called. It closes the
// Events channel on return.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.events)
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-d.sigs:
			if !ok {
				return
			}
			ev, known := classify(sig)
			if !known {
				log.WithField("signal", sig.String()).Debug("Ignoring unexpected signal")
				continue
			}
			log.WithFields(logger.Fields{
				"signal": sig.String(),
				"event":  ev.String(),
			}).Debug("Signal received")
			if !d.forward(ctx, ev) {
				return
			}
		}
	}
}

func (d *Dispatcher) forward(ctx context.Context, ev Event) bool {
	if ev == Reload {
		select {
		case d.events <- ev:
		default:
			log.Debug("Reload already pending")
		}
		return true
	}
	select {
	case d.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop unsubscribes from signals and makes Run return. Safe to call more than
// once.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		signal.Stop(d.sigs)
		close(d.sigs)
	})
}
