package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e, time.Now())
}

// executeWithEnv prunes snapshots relative to now (for testing).
func (c *PruneCommand) executeWithEnv(_ context.Context, e *env, now time.Time) error {
	d, err := parseDuration(c.OlderThan)
	if err != nil {
		return fmt.Errorf("invalid --older-than value %q: %w", c.OlderThan, err)
	}
	cutoff := now.Add(-d)

	snaps, err := e.snapshotter()
	if err != nil {
		return err
	}

	var names []string
	if c.DryRun {
		infos, err := snaps.List()
		if err != nil {
			return err
		}
		for _, info := range infos {
			if info.ModTime.Before(cutoff) {
				names = append(names, filepath.Base(info.Path))
			}
		}
	}

	removed := len(names)
	if !c.DryRun {
		removed, err = snaps.Prune(cutoff)
		if err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{
			"dry_run":    c.DryRun,
			"older_than": c.OlderThan,
			"removed":    removed,
		})
	}

	if c.DryRun {
		fmt.Printf("Would remove %d snapshots older than %s\n", removed, formatDurationHuman(d))
		for _, n := range names {
			fmt.Printf("  %s\n", n)
		}
		return nil
	}
	fmt.Printf("Removed %d snapshots older than %s\n", removed, formatDurationHuman(d))
	return nil
}
