package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e, os.Stdin)
}

// executeWithEnv reads the confirmation from in (for testing).
func (c *PurgeCommand) executeWithEnv(_ context.Context, e *env, in io.Reader) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	snaps, err := e.snapshotter()
	if err != nil {
		return err
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will delete every history snapshot in:")
		fmt.Printf("  %s\n", snaps.Dir)
		fmt.Println()
		fmt.Println("Browser history itself is never touched.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	removed, err := snaps.Purge()
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{
			"purged":  true,
			"removed": removed,
		})
	}

	fmt.Printf("Purged %d snapshots.\n", removed)
	return nil
}
