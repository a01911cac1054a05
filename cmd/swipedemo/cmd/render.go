package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		opts  sceneOptions
		out   string
		scale float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Rasterize one frame of the list to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.buildScene(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			img, err := render.Rasterize(s.tester.Tree(), s.size, scale)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return swipeerrors.Wrap("swipedemo.render", swipeerrors.KindRender, err)
			}
			if err := render.WritePNG(f, img); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return swipeerrors.Wrap("swipedemo.render", swipeerrors.KindRender, err)
			}
			a.logger.Info().Str("file", out).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("rendered")
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "swipedemo.png", "PNG file to write")
	cmd.Flags().Float64Var(&scale, "scale", 2, "device pixels per logical unit")
	cmd.PreRunE = func(*cobra.Command, []string) error {
		if scale <= 0 {
			return fmt.Errorf("--scale must be positive (got %v)", scale)
		}
		return nil
	}
	return cmd
}
