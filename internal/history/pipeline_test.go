package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/findsite/internal/browser"
)

func mockRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows(browser.Columns)
	for _, id := range ids {
		rows.AddRow(id, "https://site.test/"+string(rune('a'+id)), "Site", id*10, int64(13_350_000_000_000_000), int64(0), "", int64(0), 0.0)
	}
	return rows
}

func TestStep_RecentsBeforeTopVisited(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	f := browser.NewFactory(browser.Options{Browser: browser.Chrome, HomeDir: "/h", GOOS: "linux"})
	require.NotNil(t, f)

	// The top-visited step is awaited first, then recents runs.
	mock.ExpectQuery(f.QueryBuilder.QueryTopVisited(3, "site")).WillReturnRows(mockRows(5, 6, 7))
	mock.ExpectQuery(f.QueryBuilder.QueryRecents(3, "site")).WillReturnRows(mockRows(1, 2))

	results, err := NewPipeline(f, 3, "site").Process(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	var keys []string
	for _, r := range results {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"1-0_r", "2-1_r", "5-0_tv", "6-1_tv", "7-2_tv"}, keys)
}

func TestStep_EmptyRecents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("visit_count DESC").WillReturnRows(mockRows(3))
	mock.ExpectQuery("last_visit_time DESC").WillReturnRows(mockRows())

	step := Step{
		Query:   "SELECT recents ORDER BY last_visit_time DESC",
		Adapter: browser.RecentsAdapter{Family: browser.FamilyChromium},
		Next: FinalStep{
			Query:   "SELECT top ORDER BY visit_count DESC",
			Adapter: browser.TopVisitedAdapter{Family: browser.FamilyChromium},
		},
	}
	results, err := step.Process(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasSuffix(results[0].Key, browser.TopVisitedKeySuffix))
}

func TestStep_QueryErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("no such table: urls")
	mock.ExpectQuery("top").WillReturnError(boom)

	step := Step{
		Query:   "recents",
		Adapter: browser.RecentsAdapter{},
		Next:    FinalStep{Query: "top", Adapter: browser.TopVisitedAdapter{}},
	}
	_, err = step.Process(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "query history")
}

func TestFinalStep_NullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(browser.Columns).
		AddRow(int64(4), "https://null.test", nil, int64(2), nil, int64(0), nil, false, nil)
	mock.ExpectQuery("q").WillReturnRows(rows)

	results, err := FinalStep{Query: "q", Adapter: browser.RecentsAdapter{Family: browser.FamilyFirefox}}.
		Process(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://null.test", results[0].Title)
	assert.Empty(t, results[0].Accessories)
}
