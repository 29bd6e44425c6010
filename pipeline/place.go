package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ezvezdov/musiclib/entity"
)

// place moves the audio file to its derived library location. An
// occupied target redirects the file under the DUPLICATE subtree
// at the equivalent relative path; a collision in there is not
// re-checked.
func (pipeline *Pipeline) place(source string, track *entity.Track) (string, error) {
	target := pipeline.Layout.TrackPath(track)
	if _, err := os.Stat(target); err == nil {
		target = pipeline.Layout.DuplicatePath(track)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	return target, move(source, target)
}

// move renames the file, degrading to copy-and-remove when the
// source and target sit on different filesystems.
func move(source, target string) error {
	if err := os.Rename(source, target); err == nil {
		return nil
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(source)
}
