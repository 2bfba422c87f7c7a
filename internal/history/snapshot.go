package history

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/findsite/internal/browser"
)

const snapshotExt = ".sqlite"

// Snapshotter copies live browser databases into a private directory so
// queries never contend with the browser's own locks.
type Snapshotter struct {
	Dir string
	log logrus.FieldLogger
}

// SnapshotInfo describes one snapshot file on disk.
type SnapshotInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// NewSnapshotter returns a Snapshotter writing into dir.
func NewSnapshotter(dir string, log logrus.FieldLogger) *Snapshotter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Snapshotter{Dir: dir, log: log}
}

var nameCleaner = strings.NewReplacer("/", "_", `\`, "_", " ", "_", ":", "_")

// Path returns the snapshot location for a factory's database. Each
// browser/profile pair has exactly one snapshot, overwritten on every copy.
func (s *Snapshotter) Path(f *browser.Factory) string {
	name := string(f.Browser)
	if f.Profile != "" {
		name += "-" + nameCleaner.Replace(f.Profile)
	}
	return filepath.Join(s.Dir, name+snapshotExt)
}

// Copy refreshes the snapshot of f's history database and returns its path.
// The write-ahead log is copied alongside the main file when the browser has
// one open, otherwise recent visits still sitting in the log would be lost.
func (s *Snapshotter) Copy(ctx context.Context, f *browser.Factory) (string, error) {
	src := f.DBSourcePath
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrNotInstalled, "%s history at %s", f.Browser, src)
		}
		return "", errors.Wrap(err, "stat history database")
	}

	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return "", errors.Wrap(err, "create snapshot directory")
	}

	dst := s.Path(f)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return copyFile(gctx, src, dst)
	})
	g.Go(func() error {
		return s.copySidecar(gctx, src+"-wal", dst+"-wal")
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	// A stale shared-memory index from an earlier copy would not match the
	// fresh log; SQLite rebuilds it on open.
	if err := os.Remove(dst + "-shm"); err != nil && !os.IsNotExist(err) {
		return "", errors.Wrap(err, "remove stale shm")
	}

	s.log.WithFields(logrus.Fields{
		"browser":  f.Browser,
		"src":      src,
		"dst":      dst,
		"duration": time.Since(start),
	}).Debug("snapshot copied")

	return dst, nil
}

func (s *Snapshotter) copySidecar(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
				return errors.Wrap(err, "remove stale sidecar")
			}
			return nil
		}
		return errors.Wrap(err, "stat sidecar")
	}
	return copyFile(ctx, src, dst)
}

// copyFile writes src to a temporary file next to dst and renames it into
// place, so readers never observe a half-written snapshot.
func copyFile(ctx context.Context, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: in}); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "copy %s", src)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp snapshot")
	}
	return errors.Wrap(os.Rename(tmp.Name(), dst), "install snapshot")
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// List returns every snapshot in the directory.
func (s *Snapshotter) List() ([]SnapshotInfo, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+snapshotExt))
	if err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}

	var infos []SnapshotInfo
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		infos = append(infos, SnapshotInfo{Path: m, Size: info.Size(), ModTime: info.ModTime()})
	}
	return infos, nil
}

// Prune deletes snapshots last written before olderThan and returns how many
// were removed.
func (s *Snapshotter) Prune(olderThan time.Time) (int, error) {
	infos, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, info := range infos {
		if !info.ModTime.Before(olderThan) {
			continue
		}
		if err := removeSnapshot(info.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Purge deletes every snapshot.
func (s *Snapshotter) Purge() (int, error) {
	return s.Prune(time.Now().Add(time.Hour))
}

func removeSnapshot(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove %s", p)
		}
	}
	return nil
}
