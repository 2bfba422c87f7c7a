package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/runnerr0/findsite/internal/browser"
	"github.com/runnerr0/findsite/internal/config"
	"github.com/runnerr0/findsite/internal/history"
	"github.com/runnerr0/findsite/internal/logging"
)

// env is the resolved configuration one command runs against.
type env struct {
	cfg    *config.Config
	log    *logrus.Logger
	home   string
	goos   string
	closer io.Closer
}

// newEnv loads config, applies flag overrides and configures logging.
func newEnv(g *GlobalFlags) (*env, error) {
	if g == nil {
		g = &GlobalFlags{}
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	log := logrus.StandardLogger()
	closer, err := logging.Setup(log, cfg.Logging, g.Verbose)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		closer.Close()
		return nil, errors.Wrap(err, "resolve home directory")
	}

	return &env{cfg: cfg, log: log, home: home, goos: runtime.GOOS, closer: closer}, nil
}

func loadConfig(g *GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if g.Browser != "" {
		cfg.Browser.Name = g.Browser
	}
	if g.Profile != "" {
		cfg.Browser.Profile = g.Profile
	}
	return cfg, nil
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// browserID is the configured browser, lowercased.
func (e *env) browserID() browser.ID {
	return browser.ID(strings.ToLower(strings.TrimSpace(e.cfg.Browser.Name)))
}

// browserName is the display name of the configured browser.
func (e *env) browserName() string {
	if spec, ok := browser.Lookup(e.browserID()); ok {
		return spec.Name
	}
	return e.cfg.Browser.Name
}

// factory returns nil when the browser is unknown or unsupported here.
func (e *env) factory() *browser.Factory {
	return browser.NewFactory(browser.Options{
		Browser: e.browserID(),
		Profile: e.cfg.Browser.Profile,
		HomeDir: e.home,
		GOOS:    e.goos,
	})
}

func (e *env) snapshotter() (*history.Snapshotter, error) {
	dir, err := e.cfg.SnapshotDir()
	if err != nil {
		return nil, err
	}
	return history.NewSnapshotter(dir, e.log), nil
}

// searcher wires the configured browser, snapshot cache and exclusions.
// limit <= 0 uses the configured limit.
func (e *env) searcher(limit int) (*history.Searcher, error) {
	snaps, err := e.snapshotter()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = e.cfg.Search.Limit
	}
	exclusions := history.NewExclusions(e.cfg.Search.ExcludedDomains(), e.cfg.Search.ExcludePatterns, e.log)

	return history.NewSearcher(e.factory(), snaps,
		history.WithLimit(limit),
		history.WithExclusions(exclusions),
		history.WithLogger(e.log),
	)
}

// search runs one query. An unknown or uninstalled browser yields an empty
// state message instead of an error.
func (e *env) search(ctx context.Context, limit int, text string) ([]browser.Result, string, error) {
	s, err := e.searcher(limit)
	if err != nil {
		if errors.Is(err, browser.ErrUnknownBrowser) {
			return nil, emptyStateMessage(e, err), nil
		}
		return nil, "", err
	}

	results, err := s.Search(ctx, text)
	if errors.Is(err, history.ErrNotInstalled) {
		return nil, emptyStateMessage(e, err), nil
	}
	return results, "", err
}

func emptyStateMessage(e *env, err error) string {
	if errors.Is(err, browser.ErrUnknownBrowser) {
		if _, ok := browser.Lookup(e.browserID()); ok {
			return fmt.Sprintf("%s is not supported on %s", e.browserName(), e.goos)
		}
		return fmt.Sprintf("Unknown browser %q. Run \"findsite browsers\" to list supported ones.", e.cfg.Browser.Name)
	}
	return fmt.Sprintf("%s history not found. Is the browser installed?", e.browserName())
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	minutes := int(d.Minutes())
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
