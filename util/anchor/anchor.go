// Package anchor implements the two-lane console output the
// commands use: scrolling log lines above a single anchored
// status line that gets rewritten in place.
package anchor

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
)

const (
	Red    = color.FgRed
	Green  = color.FgGreen
	Yellow = color.FgYellow
	Cyan   = color.FgCyan
)

type Anchor struct {
	mu     sync.Mutex
	color  *color.Color
	status string
	stdin  *bufio.Reader
}

func New(attributes ...color.Attribute) *Anchor {
	return &Anchor{
		color: color.New(attributes...),
		stdin: bufio.NewReader(os.Stdin),
	}
}

// Printf emits a scrolling line, keeping the anchored status
// below it.
func (anchor *Anchor) Printf(format string, args ...interface{}) {
	anchor.mu.Lock()
	defer anchor.mu.Unlock()

	anchor.clear()
	fmt.Printf(format+"\n", args...)
	anchor.render()
}

// Anchorf replaces the anchored status line.
func (anchor *Anchor) Anchorf(format string, args ...interface{}) {
	anchor.mu.Lock()
	defer anchor.mu.Unlock()

	anchor.clear()
	anchor.status = fmt.Sprintf(format, args...)
	anchor.render()
}

// Wipe drops the anchored status line.
func (anchor *Anchor) Wipe() {
	anchor.mu.Lock()
	defer anchor.mu.Unlock()

	anchor.clear()
	anchor.status = ""
}

// Reads prompts on the anchor line and returns one line of user
// input, status restored afterwards.
func (anchor *Anchor) Reads(prompt string) string {
	anchor.mu.Lock()
	defer anchor.mu.Unlock()

	anchor.clear()
	anchor.color.Print(prompt)
	line, _ := anchor.stdin.ReadString('\n')
	anchor.render()
	return line
}

func (anchor *Anchor) clear() {
	if anchor.status == "" {
		return
	}
	cursor.HorizontalAbsolute(0)
	cursor.ClearLine()
}

func (anchor *Anchor) render() {
	if anchor.status == "" {
		return
	}
	anchor.color.Print(anchor.status)
}
