package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/id3"
)

func installTrack(t *testing.T, pipeline *Pipeline, track *entity.Track) string {
	t.Helper()
	path := pipeline.Layout.TrackPath(track)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0o644))
	require.NoError(t, id3.Write(path, track))
	return path
}

func TestBackup(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)
	single, err := entity.New("id1", "Song", []string{"A"}, "2014")
	require.NoError(t, err)
	grouped, err := entity.New("id2", "Opener", []string{"A"}, "2015")
	require.NoError(t, err)
	require.NoError(t, grouped.OnAlbum("Album", []string{"A"}, 1, 4))
	installTrack(t, pipeline, single)
	installTrack(t, pipeline, grouped)

	// quarantined duplicates stay out of the snapshot
	duplicate := filepath.Join(pipeline.Layout.Root, entity.DuplicateDir, "A", "A - Song.mp3")
	require.NoError(t, os.MkdirAll(filepath.Dir(duplicate), 0o755))
	require.NoError(t, os.WriteFile(duplicate, make([]byte, 128), 0o644))

	out, err := pipeline.Backup(t.TempDir())
	require.NoError(t, err)

	snapshot, err := ReadSnapshot(out)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	byID := map[string]*entity.Track{}
	for _, track := range snapshot {
		byID[track.ID] = track
		assert.Equal(t, pipeline.Layout.Relative(track), track.RelativePath)
	}
	assert.Equal(t, "Song", byID["id1"].Title)
	assert.Equal(t, "Album", byID["id2"].Album)
	assert.Equal(t, 4, byID["id2"].Total)
}

func TestBackupFillsAlbumArtists(t *testing.T) {
	track := &entity.Track{
		ID: "id", Title: "Song", Artists: []string{"A feat. B"},
		Album: "Album", Number: 1, Total: 2, ReleaseDate: "2014",
		RelativePath: "A/[2014] Album/1. A feat. B - Song.mp3",
	}
	fillAlbumArtists(track)
	assert.Equal(t, []string{"A"}, track.AlbumArtists)

	// explicit credits are never overridden
	credited := &entity.Track{
		Artists: []string{"A"}, AlbumArtists: []string{"Various"},
		Album: "Comp", Number: 1, Total: 2,
		RelativePath: "A/[2014] Comp/1. A - Song.mp3",
	}
	fillAlbumArtists(credited)
	assert.Equal(t, []string{"Various"}, credited.AlbumArtists)
}

func TestRestore(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)
	present, err := entity.New("present", "Here", []string{"A"}, "2014")
	require.NoError(t, err)
	installTrack(t, pipeline, present)
	present.RelativePath = pipeline.Layout.Relative(present)

	missing, err := entity.New("missing", "Gone", []string{"A"}, "2015")
	require.NoError(t, err)
	missing.RelativePath = pipeline.Layout.Relative(missing)

	snapshot := filepath.Join(t.TempDir(), "backup.json")
	data, err := json.Marshal([]*entity.Track{present, missing})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapshot, data, 0o644))

	require.NoError(t, pipeline.Restore(context.Background(), snapshot))

	// only the absent track is fetched, and its pinned spot honored
	assert.Equal(t, 1, calls)
	assert.FileExists(t, pipeline.Layout.TrackPath(missing))
	assert.True(t, pipeline.Ledger.Contains("missing"))
}

func TestRestoreBypassesLedger(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)
	track, err := entity.New("id", "Song", []string{"A"}, "2014")
	require.NoError(t, err)
	require.NoError(t, pipeline.Ledger.Record("id", track.Description()))

	snapshot := filepath.Join(t.TempDir(), "backup.json")
	data, err := json.Marshal([]*entity.Track{track})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapshot, data, 0o644))

	require.NoError(t, pipeline.Restore(context.Background(), snapshot))
	assert.Equal(t, 1, calls)
	assert.FileExists(t, pipeline.Layout.TrackPath(track))
}

func TestRestoreSkipsMalformed(t *testing.T) {
	var (
		calls    int
		pipeline = testPipeline(t, blankFetch(t, &calls))
	)
	fine, err := entity.New("fine", "Here", []string{"A"}, "2014")
	require.NoError(t, err)

	// an artist-less record with no pinned path must not derail
	// the records after it
	snapshot := filepath.Join(t.TempDir(), "backup.json")
	data, err := json.Marshal([]interface{}{
		map[string]string{"id": "x1", "title": "Song", "release_date": "2014"},
		fine,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapshot, data, 0o644))

	require.NoError(t, pipeline.Restore(context.Background(), snapshot))
	assert.Equal(t, 1, calls)
	assert.FileExists(t, pipeline.Layout.TrackPath(fine))
	assert.False(t, pipeline.Ledger.Contains("x1"))
}

func TestReadSnapshotLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"dQw4w9WgXcQ": {"title": "Song", "artists": ["A"], "release_date": "2014"}}`,
	), 0o644))

	snapshot, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "dQw4w9WgXcQ", snapshot[0].ID)
	assert.Equal(t, "Song", snapshot[0].Title)
}
