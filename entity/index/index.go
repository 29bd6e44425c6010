package index

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/thanhpk/randstr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ledger is the durable set of already-processed catalog
// identifiers, each mapped to a human-readable description.
// Entries are only ever added and every addition is persisted
// before Record returns, so an interrupted run loses at most
// the in-flight track.
type Ledger struct {
	path    string
	entries map[string]string
}

// Open loads the ledger from the given path, creating an empty
// one if the backing file does not exist yet.
func Open(path string) (*Ledger, error) {
	ledger := &Ledger{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ledger, ledger.flush()
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, &ledger.entries); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return ledger, nil
}

func (ledger *Ledger) Contains(id string) bool {
	_, ok := ledger.entries[id]
	return ok
}

// Record adds an entry and persists the whole mapping before
// returning.
func (ledger *Ledger) Record(id, description string) error {
	ledger.entries[id] = description
	return ledger.flush()
}

func (ledger *Ledger) Size() int {
	return len(ledger.entries)
}

func (ledger *Ledger) flush() error {
	return WriteFile(ledger.path, ledger.entries)
}

// WriteFile marshals the given value and renames it into place,
// so readers never observe a half-written file.
func WriteFile(path string, value interface{}) error {
	// jsoniter only indents with spaces
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	scratch := path + "." + randstr.Hex(8)
	if err := os.WriteFile(scratch, data, 0o644); err != nil {
		return err
	}
	return os.Rename(scratch, path)
}
