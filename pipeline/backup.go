package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/id3"
	"github.com/ezvezdov/musiclib/entity/index"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Backup walks the library and snapshots every track's full
// record, pinning each one to its current relative location so a
// restore reproduces the exact layout. The snapshot is a
// timestamped JSON file, separate from the ledger.
func (pipeline *Pipeline) Backup(outDir string) (string, error) {
	var snapshot []*entity.Track
	err := filepath.WalkDir(pipeline.Layout.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == entity.DuplicateDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), "."+entity.TrackFormat) {
			return nil
		}

		track, err := id3.Read(path)
		if err != nil {
			log.Printf("backup: unreadable tags in %s: %s", path, err)
			return nil
		}

		relative, err := filepath.Rel(pipeline.Layout.Root, path)
		if err != nil {
			return err
		}
		track.RelativePath = filepath.ToSlash(relative)
		fillAlbumArtists(track)
		snapshot = append(snapshot, track)
		return nil
	})
	if err != nil {
		return "", err
	}

	out := filepath.Join(outDir, fmt.Sprintf("backup-%s.json", time.Now().Format("20060102-150405")))
	if err := index.WriteFile(out, snapshot); err != nil {
		return "", err
	}
	log.Printf("backup: %d tracks snapshotted to %s", len(snapshot), out)
	return out, nil
}

// fillAlbumArtists derives the missing album-artist credit from
// the artist directory the file is filed under.
func fillAlbumArtists(track *entity.Track) {
	if !track.Grouped() || len(track.AlbumArtists) > 0 {
		return
	}
	parts := strings.Split(track.RelativePath, "/")
	if len(parts) == 3 { // artist / album / file
		track.AlbumArtists = []string{parts[0]}
	} else {
		track.AlbumArtists = track.Artists
	}
}

// Restore replays a snapshot through the per-track pipeline.
// Records whose pinned location is already occupied are left
// alone; everything else is fetched, tagged, placed and recorded
// again, ledger state notwithstanding — the snapshot, not the
// ledger, is the source of truth for what belongs on disk.
func (pipeline *Pipeline) Restore(ctx context.Context, path string) error {
	snapshot, err := ReadSnapshot(path)
	if err != nil {
		return err
	}

	for _, track := range snapshot {
		// path derivation needs a well-formed record
		if err := track.Valid(); err != nil || track.ID == "" {
			log.Printf("restore: skipping malformed record %q", track.CatalogTitle)
			continue
		}
		if target := pipeline.Layout.TrackPath(track); fileExists(target) {
			log.Printf("restore: %s already in place", track.Description())
			continue
		}
		if state, err := pipeline.run(ctx, track); err != nil {
			log.Printf("restore: %s aborted while %s: %s", track.Description(), state, err)
		}
	}
	return nil
}

// ReadSnapshot loads a backup file, accepting both the current
// array format and the legacy object keyed by catalog id.
func ReadSnapshot(path string) ([]*entity.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snapshot []*entity.Track
	if err := json.Unmarshal(data, &snapshot); err == nil {
		return snapshot, nil
	}

	var legacy map[string]*entity.Track
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	for id, track := range legacy {
		if track.ID == "" {
			track.ID = id
		}
		snapshot = append(snapshot, track)
	}
	return snapshot, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
