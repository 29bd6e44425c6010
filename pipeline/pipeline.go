// Package pipeline drives a track through its processing states:
//
//	DISCOVERED → SKIPPED (already in the ledger)
//	DISCOVERED → FETCHING → TAGGING → PLACING → RECORDED
//
// A failure at any stage aborts that track only; the ledger is
// written after the final stage, so an interrupted track is
// retried in full on the next run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/id3"
	"github.com/ezvezdov/musiclib/entity/index"
)

type State int

const (
	Discovered State = iota
	Skipped
	Fetching
	Tagging
	Placing
	Recorded
)

func (state State) String() string {
	switch state {
	case Skipped:
		return "skipped"
	case Fetching:
		return "fetching"
	case Tagging:
		return "tagging"
	case Placing:
		return "placing"
	case Recorded:
		return "recorded"
	default:
		return "discovered"
	}
}

// FetchFunc downloads the track's audio and artwork, returning
// the local path of the audio file.
type FetchFunc func(ctx context.Context, track *entity.Track) (string, error)

var errNoCatalogID = errors.New("track carries no catalog identifier")

type Pipeline struct {
	Layout entity.Layout
	Ledger *index.Ledger
	Fetch  FetchFunc
	// Progress, when set, observes every track's terminal state.
	Progress func(track *entity.Track, state State)
}

func (pipeline *Pipeline) notify(track *entity.Track, state State) {
	if pipeline.Progress != nil {
		pipeline.Progress(track, state)
	}
}

// Process runs a single track to completion. The returned state
// is the one the track ended in; anything but Skipped or
// Recorded comes with the error that stopped it there.
func (pipeline *Pipeline) Process(ctx context.Context, track *entity.Track) (State, error) {
	if err := track.Valid(); err != nil {
		return Discovered, err
	}
	if track.ID == "" {
		return Discovered, errNoCatalogID
	}
	if pipeline.Ledger.Contains(track.ID) {
		return Skipped, nil
	}
	return pipeline.run(ctx, track)
}

func (pipeline *Pipeline) run(ctx context.Context, track *entity.Track) (State, error) {
	path, err := pipeline.Fetch(ctx, track)
	if err != nil {
		return Fetching, err
	}

	if err := id3.Write(path, track); err != nil {
		return Tagging, fmt.Errorf("tag %s: %w", track.Description(), err)
	}

	target, err := pipeline.place(path, track)
	if err != nil {
		return Placing, fmt.Errorf("place %s: %w", track.Description(), err)
	}
	log.Printf("pipeline: %s installed at %s", track.Description(), target)

	if err := pipeline.Ledger.Record(track.ID, track.Description()); err != nil {
		return Recorded, fmt.Errorf("record %s: %w", track.ID, err)
	}
	return Recorded, nil
}

// Batch processes tracks sequentially, one at a time; a failing
// track is logged and the batch moves on.
func (pipeline *Pipeline) Batch(ctx context.Context, tracks []*entity.Track) (recorded, skipped, failed int) {
	for _, track := range tracks {
		state, err := pipeline.Process(ctx, track)
		pipeline.notify(track, state)
		switch {
		case err != nil:
			failed++
			log.Printf("pipeline: %s aborted while %s: %s", track.Description(), state, err)
		case state == Skipped:
			skipped++
		default:
			recorded++
		}
	}
	return recorded, skipped, failed
}
