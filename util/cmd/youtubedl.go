package cmd

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ezvezdov/musiclib/util"
)

const watchURL = "https://music.youtube.com/watch?v="

// YouTubeDl fetches the audio stream of the given catalog track
// into path, extracting it to the format implied by the path
// extension. Transient failures are retried by the tool itself.
func YouTubeDl(id, path string) error {
	var (
		output bytes.Buffer
		ext    = strings.TrimPrefix(filepath.Ext(path), ".")
		stem   = filepath.Join(filepath.Dir(path), util.FileBaseStem(path))
		cmd    = exec.Command("yt-dlp",
			"--format", "bestaudio",
			"--extract-audio",
			"--audio-format", ext,
			"--audio-quality", "0",
			"--output", stem+".%(ext)s",
			"--continue",
			"--no-overwrites",
			"--retry-sleep", "exp=1::2",
			"--sleep-interval", "5",
			watchURL+id,
		)
	)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return errors.New(util.First(strings.TrimSpace(output.String()), err.Error()))
	}
	return nil
}
