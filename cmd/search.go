package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/util"
)

func init() {
	cmdRoot.AddCommand(cmdSearch())
}

func cmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "search <query>",
		Short:        "Download a track (or album) found by name",
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

			var (
				query  = strings.Join(args, " ")
				tracks []*entity.Track
			)
			tui.Anchorf("searching %s", query)
			if util.ErrWrap(false)(cmd.Flags().GetBool("album")) {
				tracks, err = source.Album(cmd.Context(), query, decide(cmd))
			} else {
				var track *entity.Track
				if track, err = source.Track(cmd.Context(), query, decide(cmd)); track != nil {
					tracks = append(tracks, track)
				}
			}
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				tui.Wipe()
				tui.Printf("nothing found for %s", query)
				return nil
			}

			summarize(run.pipe.Batch(cmd.Context(), tracks))
			return nil
		},
	}
	libraryFlags(cmd)
	sourceFlags(cmd)
	cmd.Flags().BoolP("album", "a", false, "Search an album instead of a track")
	cmd.Flags().BoolP("manual", "m", false, "Confirm every candidate instead of taking the top result")
	return cmd
}
