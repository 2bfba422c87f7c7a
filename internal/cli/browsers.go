package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/runnerr0/findsite/internal/browser"
)

type browserJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Family    string `json:"family"`
	Path      string `json:"path"`
	Installed bool   `json:"installed"`
	Selected  bool   `json:"selected"`
}

// Execute implements the go-flags Commander interface for BrowsersCommand.
func (c *BrowsersCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e)
}

func (c *BrowsersCommand) executeWithEnv(_ context.Context, e *env) error {
	var rows []browserJSON
	for _, spec := range browser.Supported(e.goos) {
		f := browser.NewFactory(browser.Options{Browser: spec.ID, HomeDir: e.home, GOOS: e.goos})
		if f == nil {
			continue
		}
		rows = append(rows, browserJSON{
			ID:        string(spec.ID),
			Name:      spec.Name,
			Family:    string(spec.Family),
			Path:      f.DBSourcePath,
			Installed: f.Installed(),
			Selected:  spec.ID == e.browserID(),
		})
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "ID", "Browser", "Installed", "History"})
	for _, r := range rows {
		sel := ""
		if r.Selected {
			sel = "*"
		}
		installed := "no"
		if r.Installed {
			installed = "yes"
		}
		t.AppendRow(table.Row{sel, r.ID, r.Name, installed, r.Path})
	}
	t.Render()
	fmt.Printf("%d browsers supported on %s\n", len(rows), e.goos)
	return nil
}
