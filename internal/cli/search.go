package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/runnerr0/findsite/internal/browser"
	"github.com/runnerr0/findsite/internal/history"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e, args)
}

// executeWithEnv runs the search against a prepared env (for testing).
func (c *SearchCommand) executeWithEnv(ctx context.Context, e *env, args []string) error {
	query := strings.Join(args, " ")

	results, empty, err := e.search(ctx, c.Limit, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	views := history.RenderResults(results)
	if c.globals != nil && c.globals.JSON {
		return printJSON(searchOutput{
			Browser: string(e.browserID()),
			Query:   query,
			Count:   len(views),
			Message: empty,
			Results: views,
		})
	}

	if empty != "" {
		fmt.Println(empty)
		return nil
	}
	if len(views) == 0 {
		if query != "" {
			fmt.Printf("No matching websites for %q\n", query)
		} else {
			fmt.Println("No history yet")
		}
		return nil
	}

	if isTerminal() {
		printTable(views)
		return nil
	}
	printPlain(views)
	return nil
}

type searchOutput struct {
	Browser string              `json:"browser"`
	Query   string              `json:"query"`
	Count   int                 `json:"count"`
	Message string              `json:"message,omitempty"`
	Results []history.ViewModel `json:"results"`
}

func printTable(views []history.ViewModel) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "", "Title", "Site", "Visited", "URL"})

	for i, v := range views {
		t.AppendRow(table.Row{i + 1, marker(v.Icon), truncate(v.Title, 50), v.Subtitle, v.Accessory, truncate(v.URL, 60)})
	}
	t.Render()
}

// printPlain writes one tab-separated line per result for pipes and scripts.
func printPlain(views []history.ViewModel) {
	for i, v := range views {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", i+1, v.Section, v.Title, v.Accessory, v.URL)
	}
}

func marker(icon string) string {
	if icon == browser.IconStar {
		return "★"
	}
	return "↺"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
