package browser

import (
	"fmt"
	"strings"
)

// DefaultLimit is used when a builder is asked for a non-positive limit.
const DefaultLimit = 10

// QueryBuilder produces the SQL text for the two searches run against a
// browser's history database.
type QueryBuilder interface {
	QueryRecents(limit int, searchText string) string
	QueryTopVisited(limit int, searchText string) string
}

// Columns is the alias list every builder selects, in scan order.
var Columns = []string{
	"id", "url", "title", "visit_count", "last_visit_time",
	"typed_count", "host", "hidden", "visit_time",
}

// dialect holds the per-family pieces of the query template.
type dialect struct {
	selectList   string
	from         string
	titleColumn  string
	hostColumn   string
	filters      []string
	groupBy      string
	recentsOrder string
	topOrder     string
}

func (d dialect) build(order string, limit int, searchText string) string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var where []string
	where = append(where, d.filters...)
	if match := matchClause(searchText, d.titleColumn, d.hostColumn); match != "" {
		where = append(where, match)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(d.selectList)
	b.WriteString(" FROM ")
	b.WriteString(d.from)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	if d.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(d.groupBy)
	}
	fmt.Fprintf(&b, " ORDER BY %s DESC LIMIT %d", order, limit)
	return b.String()
}

// matchClause builds ((title LIKE w1 AND ...) OR (host LIKE w1 AND ...)).
// Every token must match within a column; either column may match.
func matchClause(searchText, titleColumn, hostColumn string) string {
	words := strings.Fields(searchText)
	if len(words) == 0 {
		return ""
	}
	return "((" + likeAll(titleColumn, words) + ") OR (" + likeAll(hostColumn, words) + "))"
}

func likeAll(column string, words []string) string {
	preds := make([]string, len(words))
	for i, w := range words {
		preds[i] = column + " LIKE " + likePattern(w) + ` ESCAPE '\'`
	}
	return strings.Join(preds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `'`, `''`)

// likePattern quotes word as a '%word%' literal. Quotes are doubled and LIKE
// wildcards escaped, so the word is always matched literally.
func likePattern(word string) string {
	return "'%" + likeEscaper.Replace(word) + "%'"
}

var chromiumDialect = dialect{
	selectList: "id, url, title, visit_count, last_visit_time, typed_count, " +
		"'' AS host, hidden, 0.0 AS visit_time",
	from:         "urls",
	titleColumn:  "title",
	hostColumn:   "url",
	filters:      []string{"hidden = 0"},
	recentsOrder: "last_visit_time",
	topOrder:     "visit_count",
}

var firefoxDialect = dialect{
	selectList: "id, url, title, visit_count, last_visit_date AS last_visit_time, " +
		"typed AS typed_count, '' AS host, hidden, 0.0 AS visit_time",
	from:         "moz_places",
	titleColumn:  "title",
	hostColumn:   "url",
	filters:      []string{"hidden = 0", "last_visit_date IS NOT NULL"},
	recentsOrder: "last_visit_date",
	topOrder:     "visit_count",
}

// Safari keeps titles and timestamps per visit. Each item is joined to its
// newest visit only, so the search filter never picks an older title; the
// GROUP BY collapses visits sharing the newest timestamp.
var safariDialect = dialect{
	selectList: "i.id AS id, i.url AS url, v.title AS title, i.visit_count AS visit_count, " +
		"0 AS last_visit_time, 0 AS typed_count, COALESCE(i.domain_expansion, '') AS host, " +
		"0 AS hidden, MAX(v.visit_time) AS visit_time",
	from: "history_items i INNER JOIN history_visits v ON v.history_item = i.id " +
		"AND v.visit_time = (SELECT MAX(visit_time) FROM history_visits WHERE history_item = i.id)",
	titleColumn:  "v.title",
	hostColumn:   "i.url",
	groupBy:      "i.id",
	recentsOrder: "visit_time",
	topOrder:     "visit_count",
}

// ChromiumQueryBuilder queries the `urls` table shared by Chrome, Chromium,
// Arc, Brave, Vivaldi, Opera and Edge.
type ChromiumQueryBuilder struct{}

func (ChromiumQueryBuilder) QueryRecents(limit int, searchText string) string {
	return chromiumDialect.build(chromiumDialect.recentsOrder, limit, searchText)
}

func (ChromiumQueryBuilder) QueryTopVisited(limit int, searchText string) string {
	return chromiumDialect.build(chromiumDialect.topOrder, limit, searchText)
}

// FirefoxQueryBuilder queries `moz_places` for Firefox and Zen.
type FirefoxQueryBuilder struct{}

func (FirefoxQueryBuilder) QueryRecents(limit int, searchText string) string {
	return firefoxDialect.build(firefoxDialect.recentsOrder, limit, searchText)
}

func (FirefoxQueryBuilder) QueryTopVisited(limit int, searchText string) string {
	return firefoxDialect.build(firefoxDialect.topOrder, limit, searchText)
}

// SafariQueryBuilder joins `history_items` with `history_visits`.
type SafariQueryBuilder struct{}

func (SafariQueryBuilder) QueryRecents(limit int, searchText string) string {
	return safariDialect.build(safariDialect.recentsOrder, limit, searchText)
}

func (SafariQueryBuilder) QueryTopVisited(limit int, searchText string) string {
	return safariDialect.build(safariDialect.topOrder, limit, searchText)
}
