package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/runnerr0/findsite/internal/browser"
	"github.com/runnerr0/findsite/internal/tui"
)

// Execute implements the go-flags Commander interface for InteractiveCommand.
func (c *InteractiveCommand) Execute(args []string) error {
	if !isTerminal() {
		return errors.New("interactive mode needs a terminal; use \"findsite search\" instead")
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.searcher(0)
	if err != nil {
		if errors.Is(err, browser.ErrUnknownBrowser) {
			fmt.Println(emptyStateMessage(e, err))
			return nil
		}
		return err
	}

	p := tea.NewProgram(tui.NewModel(s.Search, e.browserName()), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "run interactive search")
	}

	m, ok := final.(tui.Model)
	if !ok || m.Selected() == "" {
		return nil
	}
	if c.Print {
		fmt.Println(m.Selected())
		return nil
	}
	if err := openURL(m.Selected()); err != nil {
		return errors.Wrapf(err, "open %s", m.Selected())
	}
	return nil
}
