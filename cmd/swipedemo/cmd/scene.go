package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/swipeactions/internal/demo"
	"github.com/go-drift/swipeactions/pkg/graphics"
	swipetest "github.com/go-drift/swipeactions/pkg/testing"
)

// settleTimeout bounds how long a headless scene may animate.
const settleTimeout = 5 * time.Second

// sceneOptions select the state a headless frame is captured in.
type sceneOptions struct {
	open   []string
	scroll string
	remove []string
}

func (o *sceneOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.open, "open", nil, "cards to swipe open before capturing")
	cmd.Flags().StringVar(&o.scroll, "scroll-to", "", "card to scroll to before capturing")
	cmd.Flags().StringSliceVar(&o.remove, "remove", nil, "cards to remove before capturing")
}

// scene is a Home driven frame by frame on a fake clock, so captures are
// reproducible.
type scene struct {
	home   *demo.Home
	tester *swipetest.Tester
	size   graphics.Size
}

func (s *scene) Close() {
	s.tester.Cleanup()
	s.home.Dispose()
}

func (a *app) buildScene(opts sceneOptions) (*scene, error) {
	home, err := demo.NewHome(*a.cfg, demo.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	size := a.cfg.Viewport.Size()
	s := &scene{home: home, tester: swipetest.NewTester(home, size), size: size}

	for _, name := range opts.remove {
		home.Remove(name)
	}
	if opts.scroll != "" && !home.ScrollTo(opts.scroll) {
		s.Close()
		return nil, fmt.Errorf("no card %q to scroll to", opts.scroll)
	}
	for _, name := range opts.open {
		row, ok := home.Row(name)
		if !ok {
			s.Close()
			return nil, fmt.Errorf("no card %q to open", name)
		}
		row.Open()
	}
	if err := s.tester.PumpAndSettle(settleTimeout); err != nil {
		s.Close()
		return nil, err
	}
	a.logger.Debug().Int("cards", len(home.Cards())).Float64("scroll", home.ScrollOffset()).Msg("scene settled")
	return s, nil
}
