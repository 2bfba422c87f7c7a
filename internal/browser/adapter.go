package browser

import (
	"fmt"
	"net/url"
	"time"
)

// Adapter maps a history record to a display result. Implementations are
// pure: the same record and index always give the same result.
type Adapter interface {
	Adapt(r Record, index int) Result
}

const (
	// Seconds between 1601-01-01 and 1970-01-01.
	chromiumEpochOffset = 11644473600
	// Seconds between 1970-01-01 and 2001-01-01.
	safariEpochOffset = 978307200
)

// LastVisited converts a record's native timestamp to wall time. The second
// return is false when the record carries no timestamp.
func LastVisited(f Family, r Record) (time.Time, bool) {
	switch f {
	case FamilyChromium:
		if r.LastVisitTime <= 0 {
			return time.Time{}, false
		}
		return time.UnixMicro(r.LastVisitTime - chromiumEpochOffset*1_000_000).UTC(), true
	case FamilyFirefox:
		if r.LastVisitTime <= 0 {
			return time.Time{}, false
		}
		return time.UnixMicro(r.LastVisitTime).UTC(), true
	case FamilySafari:
		if r.VisitTime <= 0 {
			return time.Time{}, false
		}
		sec := r.VisitTime + safariEpochOffset
		whole := int64(sec)
		nanos := int64((sec - float64(whole)) * 1e9)
		return time.Unix(whole, nanos).UTC(), true
	}
	return time.Time{}, false
}

// RecentsAdapter frames records as "recently visited": history icon and a
// last-visit date accessory.
type RecentsAdapter struct {
	Family Family
}

func (a RecentsAdapter) Adapt(r Record, index int) Result {
	res := baseResult(r, index, RecentsKeySuffix)
	res.Icon = Icon{Source: IconHistory, Tooltip: "Recently visited"}
	if ts, ok := LastVisited(a.Family, r); ok {
		res.Accessories = []Accessory{{Date: &ts, Tooltip: "Last visited"}}
	} else {
		res.Accessories = []Accessory{}
	}
	return res
}

// TopVisitedAdapter frames records as "frequently visited": star icon and a
// visit count accessory.
type TopVisitedAdapter struct {
	Family Family
}

func (a TopVisitedAdapter) Adapt(r Record, index int) Result {
	res := baseResult(r, index, TopVisitedKeySuffix)
	res.Icon = Icon{Source: IconStar, Tooltip: "Frequently visited"}
	res.Accessories = []Accessory{{Text: visitsText(r.VisitCount), Tooltip: "Visit count"}}
	return res
}

func baseResult(r Record, index int, suffix string) Result {
	title := r.Title
	if title == "" {
		title = r.URL
	}
	return Result{
		Key:      fmt.Sprintf("%d-%d%s", r.ID, index, suffix),
		Title:    title,
		Subtitle: subtitle(r),
		URL:      r.URL,
	}
}

func subtitle(r Record) string {
	if u, err := url.Parse(r.URL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	if r.Host != "" {
		return r.Host
	}
	return r.URL
}

func visitsText(n int64) string {
	if n == 1 {
		return "1 visit"
	}
	return fmt.Sprintf("%d visits", n)
}
