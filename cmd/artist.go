package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdArtist())
}

func cmdArtist() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "artist <name>",
		Short:        "Download an artist's full discography",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := newSession(cmd)
			if err != nil {
				return err
			}
			source, err := run.source(cmd)
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			tui.Anchorf("collecting discography of %s", name)
			tracks, err := source.Artist(cmd.Context(), name)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				tui.Wipe()
				tui.Printf("nothing found for %s", name)
				return nil
			}

			tui.Anchorf("processing %d tracks", len(tracks))
			summarize(run.pipe.Batch(cmd.Context(), tracks))
			return nil
		},
	}
	libraryFlags(cmd)
	sourceFlags(cmd)
	return cmd
}
