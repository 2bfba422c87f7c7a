package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Execute implements the go-flags Commander interface for OpenCommand.
func (c *OpenCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e, args, openURL)
}

// executeWithEnv resolves the selected result and hands its URL to open.
func (c *OpenCommand) executeWithEnv(ctx context.Context, e *env, args []string, open func(string) error) error {
	if c.Index < 1 {
		return fmt.Errorf("--index must be 1 or greater, got %d", c.Index)
	}

	query := strings.Join(args, " ")
	results, empty, err := e.search(ctx, 0, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if empty != "" {
		return errors.New(empty)
	}
	if c.Index > len(results) {
		return fmt.Errorf("no result #%d for %q (%d found)", c.Index, query, len(results))
	}

	target := results[c.Index-1]
	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{
			"url":    target.URL,
			"title":  target.Title,
			"opened": !c.Print,
		})
	}
	if c.Print {
		fmt.Println(target.URL)
		return nil
	}

	e.log.WithField("url", target.URL).Debug("opening result")
	if err := open(target.URL); err != nil {
		return errors.Wrapf(err, "open %s", target.URL)
	}
	fmt.Printf("Opened %s\n", target.URL)
	return nil
}

// openURL hands url to the platform opener.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
