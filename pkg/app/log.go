package app

import (
	"os"

	"github.com/byxorna/stopover/pkg/runtime"
	tea "github.com/charmbracelet/bubbletea"
)

// LogToRuntimeFile points the standard logger at an xdg runtime file for
// debugging; the TUI owns the terminal.
func LogToRuntimeFile() (*os.File, error) {
	path, err := runtime.File("debug.log")
	if err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "stopover")
}
