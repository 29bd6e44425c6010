package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ErrWrap flattens the common (value, error) pair into a value,
// falling back to the given default when the error is non-nil.
func ErrWrap[T any](fallback T) func(T, error) T {
	return func(value T, err error) T {
		if err != nil {
			return fallback
		}
		return value
	}
}

func ErrSuppress(err error) {
	_ = err
}

// First returns the first non-empty string of the given ones.
func First(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func FileBaseStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CacheFile returns the absolute path of the given file name
// within the application cache directory, creating the latter
// if it does not yet exist.
func CacheFile(name string) string {
	dir := filepath.Join(xdg.CacheHome, "musiclib")
	ErrSuppress(os.MkdirAll(dir, 0o755))
	return filepath.Join(dir, name)
}

// DataFile returns the absolute path of the given file name
// within the application data directory, creating the latter
// if it does not yet exist.
func DataFile(name string) string {
	dir := filepath.Join(xdg.DataHome, "musiclib")
	ErrSuppress(os.MkdirAll(dir, 0o755))
	return filepath.Join(dir, name)
}
