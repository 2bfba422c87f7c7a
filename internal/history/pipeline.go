// Package history runs browser history searches: it snapshots the live
// database, executes the recents and top-visited queries in order and merges
// their adapted rows into one list.
package history

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/runnerr0/findsite/internal/browser"
)

// Querier is the part of *sql.DB the pipeline needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Processor produces display results from a history database.
type Processor interface {
	Process(ctx context.Context, q Querier) ([]browser.Result, error)
}

// FinalStep runs one query and adapts every row. It ends a step chain.
type FinalStep struct {
	Query   string
	Adapter browser.Adapter
}

func (s FinalStep) Process(ctx context.Context, q Querier) ([]browser.Result, error) {
	records, err := scanRecords(ctx, q, s.Query)
	if err != nil {
		return nil, err
	}

	results := make([]browser.Result, len(records))
	for i, r := range records {
		results[i] = s.Adapter.Adapt(r, i)
	}
	return results, nil
}

// Step waits for Next, then runs its own query and places its results ahead
// of Next's. Queries run one after the other, never in parallel.
type Step struct {
	Query   string
	Adapter browser.Adapter
	Next    Processor
}

func (s Step) Process(ctx context.Context, q Querier) ([]browser.Result, error) {
	rest, err := s.Next.Process(ctx, q)
	if err != nil {
		return nil, err
	}

	own, err := FinalStep{Query: s.Query, Adapter: s.Adapter}.Process(ctx, q)
	if err != nil {
		return nil, err
	}

	merged := make([]browser.Result, 0, len(own)+len(rest))
	merged = append(merged, own...)
	return append(merged, rest...), nil
}

// NewPipeline chains the recents query in front of the top-visited query, so
// recent matches are always listed first.
func NewPipeline(f *browser.Factory, limit int, searchText string) Processor {
	return Step{
		Query:   f.QueryBuilder.QueryRecents(limit, searchText),
		Adapter: f.Recents,
		Next: FinalStep{
			Query:   f.QueryBuilder.QueryTopVisited(limit, searchText),
			Adapter: f.TopVisited,
		},
	}
}

// scanRecords executes query and scans rows selected with browser.Columns.
func scanRecords(ctx context.Context, q Querier, query string) ([]browser.Record, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query history")
	}
	defer rows.Close()

	records := []browser.Record{}
	for rows.Next() {
		var (
			r         browser.Record
			title     sql.NullString
			lastVisit sql.NullInt64
			visitTime sql.NullFloat64
			host      sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &r.URL, &title, &r.VisitCount, &lastVisit,
			&r.TypedCount, &host, &r.Hidden, &visitTime,
		); err != nil {
			return nil, errors.Wrap(err, "scan history row")
		}
		r.Title = title.String
		r.LastVisitTime = lastVisit.Int64
		r.VisitTime = visitTime.Float64
		r.Host = host.String
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate history rows")
	}
	return records, nil
}
