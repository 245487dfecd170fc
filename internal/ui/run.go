package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/jvx/pkg/value"
)

// Run starts the interactive explorer over root and blocks until the user
// quits. Width/height of 0 auto-detect the terminal size, falling back to
// 80x24. Extra ProgramOptions (e.g. custom IO) mirror tea.NewProgram.
func Run(root *value.Value, noColor bool, width, height int, opts ...tea.ProgramOption) error {
	m := NewModel(root)
	m.NoColor = noColor

	runW := width
	runH := height
	if runW <= 0 || runH <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if runW <= 0 {
				runW = w
			}
			if runH <= 0 {
				runH = h
			}
		}
	}
	if runW <= 0 {
		runW = 80
	}
	if runH <= 0 {
		runH = 24
	}
	m.width = runW
	m.height = runH
	if width > 0 || height > 0 {
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
