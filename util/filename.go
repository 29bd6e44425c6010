package util

import (
	"runtime"
	"strings"
)

// NamingStyle selects which character set is considered
// illegal in a single path component.
type NamingStyle int

const (
	StylePosix NamingStyle = iota
	StyleWindows
)

const (
	placeholder = '_'
	// division slash, visually close to the path separator
	// but harmless to the filesystem
	divisionSlash = "∕"
)

var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

func HostStyle() NamingStyle {
	if runtime.GOOS == "windows" {
		return StyleWindows
	}
	return StylePosix
}

// LegalizeFilename replaces characters the host filesystem
// does not accept within a single path component.
func LegalizeFilename(name string) string {
	return LegalizeFilenameStyle(name, HostStyle())
}

func LegalizeFilenameStyle(name string, style NamingStyle) string {
	var builder strings.Builder
	for _, char := range name {
		if illegalChar(char, style) {
			builder.WriteRune(placeholder)
			continue
		}
		builder.WriteRune(char)
	}

	legalized := builder.String()
	if style == StyleWindows {
		stem := strings.ToUpper(strings.SplitN(legalized, ".", 2)[0])
		if windowsReservedNames[stem] {
			legalized = string(placeholder) + legalized
		}
		legalized = strings.TrimRight(legalized, " .")
	}
	return legalized
}

func illegalChar(char rune, style NamingStyle) bool {
	if char == 0 || char == '/' {
		return true
	}
	if style != StyleWindows {
		return false
	}
	if char < 32 {
		return true
	}
	switch char {
	case '<', '>', ':', '"', '\\', '|', '?', '*':
		return true
	}
	return false
}

// EscapeSeparator makes a field value safe for use inside a path
// component by swapping the path separator for a lookalike rune.
func EscapeSeparator(text string) string {
	return strings.ReplaceAll(text, "/", divisionSlash)
}
