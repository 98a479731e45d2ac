// Where: internal/app/selector.go
// What: Interactive confirmation helpers using huh library.
// Why: Gate the rebase behind an explicit prompt on interactive terminals.
package app

import (
	"os"

	"github.com/charmbracelet/huh"
)

var isTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	info, err := file.Stat()
	if err != nil {
		return false
	}
	// Check for character device (standard terminal detection)
	// and ensure it's not a pipe or redirect.
	return (info.Mode()&os.ModeCharDevice) != 0 && (fd == 0 || fd == 1 || fd == 2)
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Confirm(title string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Migrate").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
