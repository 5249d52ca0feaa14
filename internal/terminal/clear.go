// Package terminal provides terminal helpers for prompts: hidden input and
// clearing what a prompt left on screen.
package terminal

import (
	"math"
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal width, or 80 when stdout is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// ClearPreviousLines clears text from the terminal that was previously printed.
// textLength is the number of characters of prompt plus user input; the line
// the cursor moved to after Enter is cleared as well.
func ClearPreviousLines(textLength int) {
	// ClearLinesUp clears the current line plus n above it
	cursor.ClearLinesUp(linesUsed(textLength, Width()) - 1)
	cursor.StartOfLine()
}

// linesUsed returns how many lines textLength characters occupied at width,
// plus the empty line left by Enter.
func linesUsed(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	total := int(math.Ceil(float64(textLength) / float64(width)))
	if total < 1 {
		total = 1
	}
	return total + 1
}
