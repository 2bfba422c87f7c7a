package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allBuilders() map[Family]QueryBuilder {
	return map[Family]QueryBuilder{
		FamilyChromium: ChromiumQueryBuilder{},
		FamilyFirefox:  FirefoxQueryBuilder{},
		FamilySafari:   SafariQueryBuilder{},
	}
}

func TestQueryBuilders_SingleOrderBy(t *testing.T) {
	recentsOrder := map[Family]string{
		FamilyChromium: "ORDER BY last_visit_time DESC",
		FamilyFirefox:  "ORDER BY last_visit_date DESC",
		FamilySafari:   "ORDER BY visit_time DESC",
	}

	for family, qb := range allBuilders() {
		recents := qb.QueryRecents(5, "golang")
		top := qb.QueryTopVisited(5, "golang")

		assert.True(t, strings.HasPrefix(recents, "SELECT "), "%s recents", family)
		assert.True(t, strings.HasPrefix(top, "SELECT "), "%s top", family)
		assert.Equal(t, 1, strings.Count(recents, "ORDER BY"), "%s recents", family)
		assert.Equal(t, 1, strings.Count(top, "ORDER BY"), "%s top", family)
		assert.Contains(t, recents, recentsOrder[family], "%s recents", family)
		assert.Contains(t, top, "ORDER BY visit_count DESC", "%s top", family)
		assert.True(t, strings.HasSuffix(recents, "LIMIT 5"), "%s recents", family)
	}
}

func TestQueryBuilders_PredicatesPerToken(t *testing.T) {
	for family, qb := range allBuilders() {
		for n, text := range map[int]string{
			1: "go",
			2: "go docs",
			3: "  go   docs\tspec ",
		} {
			q := qb.QueryRecents(10, text)
			// Two branches (title, host), each with one LIKE per token.
			assert.Equal(t, 2*n, strings.Count(q, " LIKE "), "%s %q", family, text)
			assert.Equal(t, 1, strings.Count(q, ") OR ("), "%s %q", family, text)
			assert.Equal(t, 2*(n-1), strings.Count(q, "%' ESCAPE '\\' AND "), "%s %q", family, text)
		}
	}
}

func TestQueryBuilders_EmptySearchHasNoMatchClause(t *testing.T) {
	for family, qb := range allBuilders() {
		q := qb.QueryTopVisited(3, "   ")
		assert.NotContains(t, q, "LIKE", family)
	}
}

func TestQueryBuilders_DefaultLimit(t *testing.T) {
	q := ChromiumQueryBuilder{}.QueryRecents(0, "")
	assert.True(t, strings.HasSuffix(q, "LIMIT 10"))
}

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `'%it''s%'`, likePattern("it's"))
	assert.Equal(t, `'%100\%%'`, likePattern("100%"))
	assert.Equal(t, `'%a\_b%'`, likePattern("a_b"))
	assert.Equal(t, `'%c:\\dir%'`, likePattern(`c:\dir`))
}

func TestQueryBuilders_QuoteDoesNotEscapeLiteral(t *testing.T) {
	q := ChromiumQueryBuilder{}.QueryRecents(10, "x' OR 1=1 --")
	assert.Contains(t, q, `title LIKE '%x''%'`)
	assert.Contains(t, q, `title LIKE '%--%'`)
}
