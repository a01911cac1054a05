package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/swipeactions/pkg/render"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		opts   sceneOptions
		update string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the render tree of one frame as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.buildScene(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			snap := render.Capture(s.tester.Tree(), s.size)
			if update != "" {
				if err := snap.UpdateFile(update); err != nil {
					return err
				}
				a.logger.Info().Str("file", update).Msg("snapshot written")
				return nil
			}
			data, err := snap.MarshalIndent()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&update, "write", "", "write the snapshot to this file instead of stdout")
	return cmd
}
