package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tmpe/globalconfig/lib/config"
	"github.com/tmpe/globalconfig/lib/lifecycle"
	"github.com/tmpe/globalconfig/lib/util/logger"
	"github.com/tmpe/globalconfig/lib/util/signals"
	"github.com/tmpe/globalconfig/lib/util/time/frames"
	"golang.org/x/time/rate"
)

func newWatchCmd() *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the global config live like the simulation does",
		Long: `Reads the global config once per frame, the way the simulation host does.
With --diagnostic, external edits are picked up a few seconds after they are
saved. SIGHUP forces a reload; SIGINT or SIGTERM stops watching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.CurrentSettings()
			clock := frames.NewClock(settings.FrameRate)
			svc, _, err := openService(clock)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			dispatcher := signals.New()
			defer dispatcher.Stop()
			go dispatcher.Run(ctx)

			ticker := time.NewTicker(clock.FrameDuration())
			defer ticker.Stop()

			w := &watcher{
				svc:     svc,
				limiter: newReloadLimiter(settings.ReloadMinInterval),
				out:     cmd.OutOrStdout(),
			}
			return w.run(ctx, dispatcher.Events(), ticker.C)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (default: until interrupted)")
	return cmd
}

func newReloadLimiter(minInterval time.Duration) *rate.Limiter {
	if minInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// watcher drives a Service from a frame ticker and signal events. All calls
// into the Service happen on the goroutine running run.
type watcher struct {
	svc     *lifecycle.Service
	limiter *rate.Limiter
	out     io.Writer
	seen    uint64
}

func (w *watcher) run(ctx context.Context, events <-chan signals.Event, ticks <-chan time.Time) error {
	w.svc.Init()
	w.report()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev {
			case signals.Shutdown:
				log.WithField("at", "watcher.run").Info("Shutdown requested")
				return nil
			case signals.Reload:
				w.forceReload()
			}
		case <-ticks:
			w.svc.Instance()
			w.report()
		}
	}
}

func (w *watcher) forceReload() {
	if !w.limiter.Allow() {
		log.WithFields(logger.Fields{
			"at":     "watcher.forceReload",
			"reason": "rate limited",
		}).Warn("Ignoring reload request")
		return
	}
	w.svc.Reload(false)
	w.report()
}

// report prints a line whenever the Service adopted a new payload.
func (w *watcher) report() {
	gen := w.svc.Generation()
	if gen == w.seen {
		return
	}
	w.seen = gen
	fmt.Fprintf(w.out, "global config generation %d (version %d, modified %s)\n",
		gen, w.svc.Instance().Version, w.svc.ModifiedTime().Format(time.RFC3339))
}
