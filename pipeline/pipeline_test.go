package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/index"
)

func testPipeline(t *testing.T, fetch FetchFunc) *Pipeline {
	t.Helper()
	root := t.TempDir()
	ledger, err := index.Open(filepath.Join(root, "downloaded.json"))
	require.NoError(t, err)
	return &Pipeline{
		Layout: entity.Layout{Root: filepath.Join(root, "library")},
		Ledger: ledger,
		Fetch:  fetch,
	}
}

// blankFetch simulates the audio fetch with an empty payload,
// counting invocations.
func blankFetch(t *testing.T, calls *int) FetchFunc {
	t.Helper()
	cache := t.TempDir()
	return func(_ context.Context, track *entity.Track) (string, error) {
		*calls++
		path := filepath.Join(cache, track.ID+".mp3")
		return path, os.WriteFile(path, make([]byte, 128), 0o644)
	}
}

func TestProcessIdempotent(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)
	track, err := entity.New("id1", "Song", []string{"A"}, "2014")
	require.NoError(t, err)

	state, err := pipeline.Process(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, Recorded, state)
	assert.FileExists(t, pipeline.Layout.TrackPath(track))

	// the second run must not touch the track again
	state, err = pipeline.Process(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, Skipped, state)
	assert.Equal(t, 1, calls)
}

func TestProcessRejectsMalformed(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)

	_, err := pipeline.Process(context.Background(), &entity.Track{ID: "id", Title: "Song"})
	assert.ErrorIs(t, err, entity.ErrNoArtists)

	_, err = pipeline.Process(context.Background(), &entity.Track{Title: "Song", Artists: []string{"A"}})
	assert.ErrorIs(t, err, errNoCatalogID)

	assert.Zero(t, calls)
}

func TestProcessFetchFailureIsTrackLocal(t *testing.T) {
	pipeline := testPipeline(t, func(context.Context, *entity.Track) (string, error) {
		return "", errors.New("stream gone")
	})
	track, err := entity.New("id1", "Song", []string{"A"}, "2014")
	require.NoError(t, err)

	state, err := pipeline.Process(context.Background(), track)
	assert.Error(t, err)
	assert.Equal(t, Fetching, state)
	assert.False(t, pipeline.Ledger.Contains("id1"))
}

func TestPlaceCollisionQuarantines(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)

	// distinct tracks converging on the same target path
	first, err := entity.New("id1", "Song", []string{"A"}, "2014")
	require.NoError(t, err)
	second, err := entity.New("id2", "Song", []string{"A"}, "2015")
	require.NoError(t, err)

	recorded, skipped, failed := pipeline.Batch(context.Background(), []*entity.Track{first, second})
	assert.Equal(t, 2, recorded)
	assert.Zero(t, skipped)
	assert.Zero(t, failed)

	assert.FileExists(t, pipeline.Layout.TrackPath(first))
	assert.FileExists(t, pipeline.Layout.DuplicatePath(second))
}

func TestBatchContinuesPastFailures(t *testing.T) {
	var calls int
	fetch := blankFetch(t, &calls)
	pipeline := testPipeline(t, func(ctx context.Context, track *entity.Track) (string, error) {
		if track.ID == "broken" {
			return "", errors.New("stream gone")
		}
		return fetch(ctx, track)
	})

	broken, err := entity.New("broken", "Gone", []string{"A"}, "2014")
	require.NoError(t, err)
	fine, err := entity.New("fine", "Here", []string{"A"}, "2014")
	require.NoError(t, err)

	recorded, _, failed := pipeline.Batch(context.Background(), []*entity.Track{broken, fine})
	assert.Equal(t, 1, recorded)
	assert.Equal(t, 1, failed)
	assert.True(t, pipeline.Ledger.Contains("fine"))
	assert.False(t, pipeline.Ledger.Contains("broken"))
}
