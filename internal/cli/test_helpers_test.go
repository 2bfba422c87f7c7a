package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/findsite/internal/browser"
	"github.com/runnerr0/findsite/internal/browser/browsertest"
	"github.com/runnerr0/findsite/internal/config"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// captureStderr captures stderr during fn execution and returns it as a string.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestEnv returns an env rooted in temp dirs with Chrome on linux selected.
func newTestEnv(t *testing.T) *env {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Browser.Name = string(browser.Chrome)
	cfg.Storage.SnapshotDir = filepath.Join(t.TempDir(), "snapshots")

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &env{cfg: cfg, log: log, home: t.TempDir(), goos: "linux"}
}

// installChrome writes a Chrome history database under the env's home.
func installChrome(t *testing.T, e *env, visits ...browsertest.Visit) *browser.Factory {
	t.Helper()
	f := e.factory()
	require.NotNil(t, f)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.DBSourcePath), 0755))
	browsertest.Create(t, f.DBSourcePath, browser.FamilyChromium, visits...)
	return f
}

// exampleVisits is the two-site history used across command tests.
func exampleVisits() []browsertest.Visit {
	now := time.Now()
	return []browsertest.Visit{
		{ID: 1, Title: "Example Site", URL: "https://example.com/", VisitCount: 5, LastVisit: now.Add(-time.Minute)},
		{ID: 2, Title: "Other", URL: "https://other.com/", VisitCount: 50, LastVisit: now},
	}
}
