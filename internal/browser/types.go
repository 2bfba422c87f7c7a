package browser

import "time"

// Record is one row of a browser history query. Every query builder selects
// the same column aliases, so a Record can hold any family's row; fields a
// family does not have stay zero.
type Record struct {
	ID         int64
	URL        string
	Title      string // empty when the browser stored NULL
	VisitCount int64

	// LastVisitTime is in the browser's native unit: microseconds since
	// 1601-01-01 for Chromium, microseconds since 1970-01-01 for Firefox.
	LastVisitTime int64
	TypedCount    int64
	Host          string
	Hidden        bool

	// VisitTime is Safari's CFAbsoluteTime (seconds since 2001-01-01).
	VisitTime float64
}

// Icon names a result icon and its tooltip.
type Icon struct {
	Source  string `json:"source"`
	Tooltip string `json:"tooltip"`
}

// Accessory is a small tag rendered next to a result.
type Accessory struct {
	Text    string     `json:"text,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Tooltip string     `json:"tooltip,omitempty"`
}

// Result is the display model of one history record.
type Result struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Icon        Icon        `json:"icon"`
	Accessories []Accessory `json:"accessories"`
	URL         string      `json:"url"`
}

// Icon sources used by the adapters.
const (
	IconHistory = "history"
	IconStar    = "star"
)

// Key suffixes that keep recents and top-visited results distinct once merged.
const (
	RecentsKeySuffix    = "_r"
	TopVisitedKeySuffix = "_tv"
)
