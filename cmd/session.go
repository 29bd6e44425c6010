package cmd

import (
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/ezvezdov/musiclib/collector"
	"github.com/ezvezdov/musiclib/downloader"
	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/index"
	"github.com/ezvezdov/musiclib/lyrics"
	"github.com/ezvezdov/musiclib/pipeline"
	"github.com/ezvezdov/musiclib/spotify"
	"github.com/ezvezdov/musiclib/util"
	"github.com/ezvezdov/musiclib/ytmusic"
)

const (
	ledgerFile  = "downloaded.json"
	renamesFile = "renames.json"
)

// session owns the per-run state: ledger, rename table, catalog
// clients and the pipeline they feed. Everything is built once
// here and handed down explicitly.
type session struct {
	library entity.Layout
	ledger  *index.Ledger
	renames index.RenameTable
	ytm     *ytmusic.Client
	pipe    *pipeline.Pipeline
}

func newSession(cmd *cobra.Command) (*session, error) {
	library := util.ErrWrap(xdg.UserDirs.Music)(cmd.Flags().GetString("library"))

	// a run cannot proceed without its known state
	ledger, err := index.Open(util.DataFile(ledgerFile))
	if err != nil {
		return nil, err
	}
	renames, err := index.OpenRenames(util.DataFile(renamesFile))
	if err != nil {
		return nil, err
	}

	run := &session{
		library: entity.Layout{Root: library},
		ledger:  ledger,
		renames: renames,
		ytm:     ytmusic.New(),
	}
	run.pipe = &pipeline.Pipeline{
		Layout: run.library,
		Ledger: ledger,
		Fetch:  downloader.Fetch,
		Progress: func(track *entity.Track, state pipeline.State) {
			tui.Printf("%s: %s", state, track.Description())
		},
	}
	return run, nil
}

// source builds the metadata strategy selected on the command
// line.
func (run *session) source(cmd *cobra.Command) (collector.Source, error) {
	composer := lyrics.NewComposer(run.ytm)

	switch name := util.ErrWrap("ytmusic")(cmd.Flags().GetString("source")); name {
	case "ytmusic":
		return collector.NewYTMusic(run.ytm, composer, run.renames), nil
	case "spotify":
		client, err := spotify.Authenticate(cmd.Context())
		if err != nil {
			return nil, err
		}
		return collector.NewSpotify(client, run.ytm, composer, run.renames), nil
	default:
		return nil, fmt.Errorf("unknown metadata source %q", name)
	}
}

// decide returns the confirmation callback for ambiguous search
// candidates, nil in top-result mode.
func decide(cmd *cobra.Command) collector.DecideFunc {
	if !util.ErrWrap(false)(cmd.Flags().GetBool("manual")) {
		return nil
	}
	return func(description string) bool {
		answer := tui.Reads(fmt.Sprintf("download %s? [y/N] ", description))
		return strings.EqualFold(strings.TrimSpace(answer), "y")
	}
}

func libraryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("library", "l", xdg.UserDirs.Music, "Library root path")
}

func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "ytmusic", "Metadata source (ytmusic or spotify)")
}

func summarize(recorded, skipped, failed int) {
	tui.Wipe()
	tui.Printf("%d downloaded, %d already present, %d failed", recorded, skipped, failed)
}
