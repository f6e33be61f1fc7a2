//go:build !windows

package signals

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDispatcher(t *testing.T) (*Dispatcher, context.CancelFunc, chan struct{}) {
	t.Helper()
	d := newDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d, cancel, done
}

func receive(t *testing.T, d *Dispatcher) Event {
	t.Helper()
	select {
	case ev, ok := <-d.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return 0
	}
}

func TestClassify(t *testing.T) {
	ev, ok := classify(syscall.SIGHUP)
	assert.True(t, ok)
	assert.Equal(t, Reload, ev)

	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		ev, ok = classify(sig)
		assert.True(t, ok)
		assert.Equal(t, Shutdown, ev)
	}

	_, ok = classify(syscall.SIGUSR1)
	assert.False(t, ok)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "reload", Reload.String())
	assert.Equal(t, "shutdown", Shutdown.String())
	assert.Equal(t, "unknown", Event(7).String())
}

func TestRun_ForwardsEvents(t *testing.T) {
	d, _, _ := runDispatcher(t)

	d.sigs <- syscall.SIGHUP
	assert.Equal(t, Reload, receive(t, d))

	d.sigs <- syscall.SIGUSR1
	d.sigs <- syscall.SIGTERM
	assert.Equal(t, Shutdown, receive(t, d))
}

func TestRun_MergesPendingReloads(t *testing.T) {
	d, _, _ := runDispatcher(t)

	const hups = 5
	for i := 0; i < hups; i++ {
		d.sigs <- syscall.SIGHUP
	}
	d.sigs <- syscall.SIGINT

	// Nothing was consumed while the hangups arrived, so every one after the
	// first was merged, except possibly the last, which Run may still be
	// forwarding when the consumer starts reading.
	reloads := 0
	for {
		ev := receive(t, d)
		if ev == Shutdown {
			break
		}
		require.Equal(t, Reload, ev)
		reloads++
	}
	assert.GreaterOrEqual(t, reloads, 1)
	assert.LessOrEqual(t, reloads, 2)
}

func TestStop_EndsRun(t *testing.T) {
	d, _, done := runDispatcher(t)

	d.Stop()
	d.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	_, ok := <-d.Events()
	assert.False(t, ok)
}

func TestRun_ContextCancel(t *testing.T) {
	_, cancel, done := runDispatcher(t)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
