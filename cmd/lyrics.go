package cmd

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/id3"
	"github.com/ezvezdov/musiclib/lyrics"
)

func init() {
	cmdRoot.AddCommand(cmdLyrics())
}

// cmdLyrics backfills lyrics into an already-organized library,
// leaving files that carry some alone.
func cmdLyrics() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lyrics",
		Short:        "Backfill lyrics for every track in the library",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := newSession(cmd)
			if err != nil {
				return err
			}

			var (
				composer = lyrics.NewComposer(run.ytm)
				found    int
				scanned  int
			)
			err = filepath.WalkDir(run.library.Root, func(path string, entry fs.DirEntry, err error) error {
				if err != nil || entry.IsDir() {
					return err
				}
				if !strings.HasSuffix(strings.ToLower(entry.Name()), "."+entity.TrackFormat) {
					return nil
				}

				scanned++
				tag, err := id3.Open(path)
				if err != nil {
					tui.Printf("unreadable tags in %s: %s", path, err)
					return nil
				}
				defer tag.Close()

				title, artists := tag.Title(), tag.Artists()
				if tag.Lyrics() != "" || title == "" || len(artists) == 0 {
					return nil
				}

				tui.Anchorf("resolving lyrics for %s", title)
				text := composer.Resolve(cmd.Context(), title, artists, tag.CatalogID())
				if text == "" {
					return nil
				}
				tag.SetLyrics(text)
				if err := tag.Save(); err != nil {
					tui.Printf("saving %s failed: %s", path, err)
					return nil
				}
				found++
				return nil
			})
			if err != nil {
				return err
			}

			tui.Wipe()
			tui.Printf("lyrics added to %d of %d tracks", found, scanned)
			return nil
		},
	}
	libraryFlags(cmd)
	return cmd
}
