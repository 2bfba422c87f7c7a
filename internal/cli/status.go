package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/findsite/internal/config"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	ConfigPath        string `json:"config_path"`
	Browser           string `json:"browser"`
	Profile           string `json:"profile,omitempty"`
	Supported         bool   `json:"supported"`
	Installed         bool   `json:"installed"`
	HistoryPath       string `json:"history_path,omitempty"`
	HistorySizeBytes  int64  `json:"history_size_bytes"`
	SnapshotDir       string `json:"snapshot_dir"`
	SnapshotCount     int    `json:"snapshot_count"`
	SnapshotSizeBytes int64  `json:"snapshot_size_bytes"`
	LastSnapshot      string `json:"last_snapshot,omitempty"`
	Limit             int    `json:"limit"`
	ExcludedDomains   int    `json:"excluded_domains"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(context.Background(), e)
}

// executeWithEnv gathers status from a prepared env (for testing).
func (c *StatusCommand) executeWithEnv(_ context.Context, e *env) error {
	out := statusJSON{
		Version:         c.version,
		ConfigPath:      config.DefaultPath(),
		Browser:         string(e.browserID()),
		Limit:           e.cfg.Search.Limit,
		ExcludedDomains: len(e.cfg.Search.ExcludedDomains()),
	}
	if c.globals != nil && c.globals.Config != "" {
		out.ConfigPath = c.globals.Config
	}

	if f := e.factory(); f != nil {
		out.Supported = true
		out.Profile = f.Profile
		out.HistoryPath = f.DBSourcePath
		out.Installed = f.Installed()
		if info, err := os.Stat(f.DBSourcePath); err == nil {
			out.HistorySizeBytes = info.Size()
		}
	}

	snaps, err := e.snapshotter()
	if err != nil {
		return err
	}
	out.SnapshotDir = snaps.Dir

	infos, err := snaps.List()
	if err != nil {
		return err
	}
	var newest time.Time
	for _, info := range infos {
		out.SnapshotCount++
		out.SnapshotSizeBytes += info.Size
		if info.ModTime.After(newest) {
			newest = info.ModTime
		}
	}
	if !newest.IsZero() {
		out.LastSnapshot = newest.UTC().Format(time.RFC3339)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	return c.printStatusHuman(e, out, newest)
}

func (c *StatusCommand) printStatusHuman(e *env, out statusJSON, newest time.Time) error {
	fmt.Println("findsite Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", out.Version)
	fmt.Printf("Config:        %s\n", out.ConfigPath)
	fmt.Printf("Browser:       %s\n", e.browserName())

	switch {
	case !out.Supported:
		fmt.Println("History:       not supported on this system")
	case out.Installed:
		if out.Profile != "" {
			fmt.Printf("Profile:       %s\n", out.Profile)
		}
		fmt.Printf("History:       %s (%s)\n", out.HistoryPath, formatBytes(out.HistorySizeBytes))
	default:
		fmt.Printf("History:       %s (not found)\n", out.HistoryPath)
	}

	fmt.Println()
	fmt.Printf("Snapshots:     %s\n", out.SnapshotDir)
	fmt.Printf("Cached:        %d (%s)\n", out.SnapshotCount, formatBytes(out.SnapshotSizeBytes))
	if !newest.IsZero() {
		fmt.Printf("Last copy:     %s ago\n", formatDurationHuman(time.Since(newest)))
	}

	fmt.Println()
	fmt.Printf("Limit:         %d per list\n", out.Limit)
	fmt.Printf("Excluded:      %d domains\n", out.ExcludedDomains)

	return nil
}
