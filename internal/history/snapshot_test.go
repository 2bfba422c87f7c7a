package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/findsite/internal/browser"
)

func mkdirFor(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

func fakeFactory(t *testing.T, id browser.ID, profile string) *browser.Factory {
	t.Helper()
	f := browser.NewFactory(browser.Options{Browser: id, Profile: profile, HomeDir: t.TempDir(), GOOS: "linux"})
	require.NotNil(t, f)
	require.NoError(t, mkdirFor(f.DBSourcePath))
	return f
}

func TestSnapshotter_Path(t *testing.T) {
	s := NewSnapshotter("/cache", nil)
	f := &browser.Factory{Browser: browser.Chrome, Profile: "Profile 1"}
	assert.Equal(t, filepath.Join("/cache", "chrome-Profile_1.sqlite"), s.Path(f))

	f = &browser.Factory{Browser: browser.Opera}
	assert.Equal(t, filepath.Join("/cache", "opera.sqlite"), s.Path(f))
}

func TestSnapshotter_CopyOverwrites(t *testing.T) {
	f := fakeFactory(t, browser.Chrome, "")
	s := NewSnapshotter(filepath.Join(t.TempDir(), "snaps"), nil)

	require.NoError(t, os.WriteFile(f.DBSourcePath, []byte("first"), 0644))
	dst, err := s.Copy(context.Background(), f)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.NoError(t, os.WriteFile(f.DBSourcePath, []byte("second"), 0644))
	dst2, err := s.Copy(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, dst, dst2)
	data, err = os.ReadFile(dst2)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	leftovers, err := filepath.Glob(filepath.Join(s.Dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSnapshotter_CopiesAndClearsSidecars(t *testing.T) {
	f := fakeFactory(t, browser.Firefox, "p1")
	s := NewSnapshotter(t.TempDir(), nil)

	require.NoError(t, os.WriteFile(f.DBSourcePath, []byte("db"), 0644))
	require.NoError(t, os.WriteFile(f.DBSourcePath+"-wal", []byte("wal"), 0644))

	dst, err := s.Copy(context.Background(), f)
	require.NoError(t, err)
	wal, err := os.ReadFile(dst + "-wal")
	require.NoError(t, err)
	assert.Equal(t, "wal", string(wal))

	require.NoError(t, os.WriteFile(dst+"-shm", []byte("stale"), 0644))
	require.NoError(t, os.Remove(f.DBSourcePath+"-wal"))

	_, err = s.Copy(context.Background(), f)
	require.NoError(t, err)
	assert.NoFileExists(t, dst+"-wal")
	assert.NoFileExists(t, dst+"-shm")
}

func TestSnapshotter_MissingSource(t *testing.T) {
	f := fakeFactory(t, browser.Vivaldi, "")
	s := NewSnapshotter(t.TempDir(), nil)

	_, err := s.Copy(context.Background(), f)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestSnapshotter_PruneAndPurge(t *testing.T) {
	s := NewSnapshotter(t.TempDir(), nil)

	old := filepath.Join(s.Dir, "chrome-Default.sqlite")
	fresh := filepath.Join(s.Dir, "firefox-p.sqlite")
	for _, p := range []string{old, old + "-wal", fresh} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	past := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	infos, err := s.List()
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	n, err := s.Prune(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.NoFileExists(t, old+"-wal")
	assert.FileExists(t, fresh)

	n, err = s.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, fresh)
}
