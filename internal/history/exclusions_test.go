package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnerr0/findsite/internal/browser"
)

func TestExclusions_Domains(t *testing.T) {
	e := NewExclusions([]string{"chase.com", " .Example.org "}, nil, nil)

	assert.True(t, e.Excluded("https://chase.com/"))
	assert.True(t, e.Excluded("https://secure.chase.com/login"))
	assert.True(t, e.Excluded("https://www.example.org/a"))
	assert.False(t, e.Excluded("https://notchase.com"))
	assert.False(t, e.Excluded("https://chase.com.evil.test"))
}

func TestExclusions_Patterns(t *testing.T) {
	e := NewExclusions(nil, []string{`.*\.xxx$`, `([invalid`}, nil)

	assert.False(t, e.Empty())
	assert.True(t, e.Excluded("https://site.xxx/page"))
	assert.False(t, e.Excluded("https://site.xyz/page"))
}

func TestExclusions_Filter(t *testing.T) {
	e := NewExclusions([]string{"b.test"}, nil, nil)
	in := []browser.Result{{Key: "1", URL: "https://a.test"}, {Key: "2", URL: "https://b.test"}, {Key: "3", URL: "https://c.test"}}

	out := e.Filter(in)
	assert.Equal(t, []browser.Result{{Key: "1", URL: "https://a.test"}, {Key: "3", URL: "https://c.test"}}, out)
	assert.Len(t, in, 3, "input untouched")
}

func TestExclusions_NilIsEmpty(t *testing.T) {
	var e *Exclusions
	assert.True(t, e.Empty())
	assert.False(t, e.Excluded("https://a.test"))
	in := []browser.Result{{Key: "1"}}
	assert.Equal(t, in, e.Filter(in))
}
