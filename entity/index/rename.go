package index

import (
	"fmt"
	"os"
)

// RenameTable maps artist names as spelled by the catalogs to
// the canonical spelling the library files under. The backing
// file is user-maintained and read-only for the whole run.
type RenameTable map[string]string

// OpenRenames loads the table from the given path. A missing
// file simply means no renames; a malformed one is an error, as
// proceeding would scatter a single artist across spellings.
func OpenRenames(path string) (RenameTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return RenameTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rename table: %w", err)
	}

	table := RenameTable{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse rename table %s: %w", path, err)
	}
	return table, nil
}

// Apply maps every artist name through the table, keeping order
// and leaving unknown names as they are.
func (table RenameTable) Apply(artists []string) []string {
	if len(table) == 0 {
		return artists
	}
	renamed := make([]string, len(artists))
	for i, artist := range artists {
		if canonical, ok := table[artist]; ok {
			artist = canonical
		}
		renamed[i] = artist
	}
	return renamed
}
