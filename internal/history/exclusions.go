package history

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/runnerr0/findsite/internal/browser"
)

// Exclusions hide results whose host is on a domain list or matches one of
// a set of patterns.
type Exclusions struct {
	domains  []string
	patterns []*regexp.Regexp
}

// NewExclusions compiles the rules. Invalid patterns are logged and skipped.
func NewExclusions(domains, patterns []string, log logrus.FieldLogger) *Exclusions {
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := &Exclusions{}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d != "" {
			e.domains = append(e.domains, d)
		}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.WithError(err).WithField("pattern", p).Warn("skipping invalid exclusion pattern")
			continue
		}
		e.patterns = append(e.patterns, re)
	}
	return e
}

// Empty reports whether no rule is configured.
func (e *Exclusions) Empty() bool {
	return e == nil || (len(e.domains) == 0 && len(e.patterns) == 0)
}

// Excluded reports whether rawURL's host is blocked. A domain rule also
// covers its subdomains.
func (e *Exclusions) Excluded(rawURL string) bool {
	if e.Empty() {
		return false
	}

	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	host = strings.ToLower(host)

	for _, d := range e.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	for _, re := range e.patterns {
		if re.MatchString(host) {
			return true
		}
	}
	return false
}

// Filter returns results minus excluded ones, keeping order.
func (e *Exclusions) Filter(results []browser.Result) []browser.Result {
	if e.Empty() {
		return results
	}
	kept := make([]browser.Result, 0, len(results))
	for _, r := range results {
		if !e.Excluded(r.URL) {
			kept = append(kept, r)
		}
	}
	return kept
}
