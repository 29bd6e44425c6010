package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegalizeFilenameWindows(t *testing.T) {
	assert.Equal(t, "A_B_C_D", LegalizeFilenameStyle("A/B:C*D", StyleWindows))
	assert.Equal(t, "_____", LegalizeFilenameStyle(`<>"\|`, StyleWindows))
	// trailing dots and spaces are not addressable on Windows
	assert.Equal(t, "name", LegalizeFilenameStyle("name. ", StyleWindows))
}

func TestLegalizeFilenamePosix(t *testing.T) {
	assert.Equal(t, "A_B:C*D", LegalizeFilenameStyle("A/B:C*D", StylePosix))
	assert.Equal(t, `<>"\|`, LegalizeFilenameStyle(`<>"\|`, StylePosix))
}

func TestLegalizeFilenameReservedNames(t *testing.T) {
	assert.Equal(t, "_CON", LegalizeFilenameStyle("CON", StyleWindows))
	assert.Equal(t, "_con.mp3", LegalizeFilenameStyle("con.mp3", StyleWindows))
	assert.Equal(t, "_LPT1", LegalizeFilenameStyle("LPT1", StyleWindows))
	assert.Equal(t, "console", LegalizeFilenameStyle("console", StyleWindows))
}

func TestEscapeSeparator(t *testing.T) {
	assert.Equal(t, "AC∕DC", EscapeSeparator("AC/DC"))
	assert.Equal(t, "plain", EscapeSeparator("plain"))
}
