package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/runnerr0/findsite/internal/browser"
)

// Execute implements the go-flags Commander interface for ProfilesCommand.
func (c *ProfilesCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e)
}

func (c *ProfilesCommand) executeWithEnv(_ context.Context, e *env) error {
	profiles, err := browser.Profiles(e.browserID(), e.home, e.goos)
	if err != nil {
		if errors.Is(err, browser.ErrUnknownBrowser) {
			fmt.Println(emptyStateMessage(e, err))
			return nil
		}
		return fmt.Errorf("list profiles: %w", err)
	}

	current := ""
	if f := e.factory(); f != nil {
		current = f.Profile
	}

	if c.globals != nil && c.globals.JSON {
		if profiles == nil {
			profiles = []string{}
		}
		return printJSON(map[string]any{
			"browser":  string(e.browserID()),
			"current":  current,
			"profiles": profiles,
		})
	}

	if len(profiles) == 0 {
		fmt.Printf("No profiles found for %s\n", e.browserName())
		return nil
	}
	for _, p := range profiles {
		mark := " "
		if p == current {
			mark = "*"
		}
		fmt.Printf("%s %s\n", mark, p)
	}
	return nil
}
