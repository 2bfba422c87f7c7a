package history

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/runnerr0/findsite/internal/browser"
)

// OpenFunc opens a snapshot database for querying.
type OpenFunc func(path string) (*sql.DB, error)

// openSQLite opens a snapshot as a query-only connection. Unlike mode=ro it
// can still create the -shm index needed to replay a copied write-ahead log.
func openSQLite(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path+"?_query_only=true")
}

// Searcher runs keystroke-driven searches for one browser profile. Runs are
// serialized because they share a snapshot file, and starting a new search
// cancels the one in flight: the latest query always wins.
type Searcher struct {
	factory    *browser.Factory
	snapshots  *Snapshotter
	exclusions *Exclusions
	limit      int
	open       OpenFunc
	log        logrus.FieldLogger

	run sync.Mutex // held for snapshot copy + queries

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLimit caps each of the two queries.
func WithLimit(n int) Option {
	return func(s *Searcher) { s.limit = n }
}

// WithExclusions hides matching results.
func WithExclusions(e *Exclusions) Option {
	return func(s *Searcher) { s.exclusions = e }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Searcher) { s.log = log }
}

// WithOpener replaces how snapshot databases are opened.
func WithOpener(open OpenFunc) Option {
	return func(s *Searcher) { s.open = open }
}

// NewSearcher returns a Searcher for f. A nil factory means the configured
// browser is unknown.
func NewSearcher(f *browser.Factory, snapshots *Snapshotter, opts ...Option) (*Searcher, error) {
	if f == nil {
		return nil, browser.ErrUnknownBrowser
	}
	s := &Searcher{
		factory:   f,
		snapshots: snapshots,
		limit:     browser.DefaultLimit,
		open:      openSQLite,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Factory returns the factory the searcher was built with.
func (s *Searcher) Factory() *browser.Factory {
	return s.factory
}

// Search snapshots the history database and returns recents matches
// followed by top-visited matches. It returns ErrSuperseded when a later
// call to Search started before this one finished.
func (s *Searcher) Search(ctx context.Context, searchText string) ([]browser.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	s.run.Lock()
	defer s.run.Unlock()

	results, err := s.search(ctx, searchText)
	if s.superseded(seq) {
		s.log.WithField("query", searchText).Debug("search superseded")
		return nil, ErrSuperseded
	}
	return results, err
}

func (s *Searcher) superseded(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq != seq
}

func (s *Searcher) search(ctx context.Context, searchText string) ([]browser.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	path, err := s.snapshots.Copy(ctx, s.factory)
	if err != nil {
		return nil, err
	}

	db, err := s.open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer db.Close()

	results, err := NewPipeline(s.factory, s.limit, searchText).Process(ctx, db)
	if err != nil {
		return nil, err
	}
	results = s.exclusions.Filter(results)

	s.log.WithFields(logrus.Fields{
		"browser":  s.factory.Browser,
		"query":    searchText,
		"results":  len(results),
		"duration": time.Since(start),
	}).Debug("search finished")

	return results, nil
}
