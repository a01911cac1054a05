package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/swipeactions/internal/demo"
	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/render"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		scriptPath string
		fps        int
		settle     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a gesture script against the list in real time",
		Long: `simulate runs the card list on a frame loop and feeds it swipes, taps,
waits, insertions and removals read from a YAML script. Without --script
it swipes the purple card open, bookmarks it, then deletes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			script := demo.DefaultScript()
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return swipeerrors.Wrap("swipedemo.simulate", swipeerrors.KindInput, err)
				}
				if script, err = demo.ParseScript(data); err != nil {
					return err
				}
			}

			home, err := demo.NewHome(*a.cfg, demo.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer home.Dispose()

			interval := demo.DefaultFrameInterval
			if fps > 0 {
				interval = time.Second / time.Duration(fps)
			}
			runner := demo.NewRunner(home, a.cfg.Viewport.Size(), interval)
			runner.OnFrame(func(tree *render.Node) {
				if n := runner.Frames(); n%120 == 0 {
					a.logger.Debug().Int64("frame", n).Int("nodes", len(render.Find(tree, func(*render.Node) bool { return true }))).Msg("frame")
				}
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() { done <- runner.Run(runCtx) }()

			start := time.Now()
			playErr := demo.NewPlayer(runner, home, a.logger).Play(ctx, script)
			if playErr == nil {
				playErr = waitIdle(ctx, runner, settle)
			}

			var bookmarks, cards []string
			if playErr == nil {
				playErr = runner.Call(ctx, func() {
					bookmarks = home.Bookmarks()
					for _, c := range home.Cards() {
						cards = append(cards, c.Name)
					}
				})
			}
			cancel()
			if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if playErr != nil {
				if errors.Is(playErr, context.Canceled) {
					a.logger.Warn().Msg("simulation interrupted")
					return nil
				}
				return playErr
			}

			a.logger.Info().
				Int("steps", len(script.Steps)).
				Int64("frames", runner.Frames()).
				Dur("elapsed", time.Since(start)).
				Strs("cards", cards).
				Strs("bookmarks", bookmarks).
				Msg("simulation finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML gesture script (defaults to bookmark then delete)")
	cmd.Flags().IntVar(&fps, "fps", 60, "frames per second")
	cmd.Flags().DurationVar(&settle, "settle", 2*time.Second, "how long to wait for animations after the last step")
	return cmd
}

// waitIdle polls until the runner has no pending work or timeout passes.
func waitIdle(ctx context.Context, runner *demo.Runner, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		idle := false
		if err := runner.Call(ctx, func() { idle = !runner.NeedsFrame() }); err != nil {
			return err
		}
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}
