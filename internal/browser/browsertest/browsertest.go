// Package browsertest builds small history databases in each browser's
// on-disk schema for tests.
package browsertest

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/findsite/internal/browser"
)

// Visit is a family-neutral history row. Empty Title is stored as NULL.
type Visit struct {
	ID         int64
	URL        string
	Title      string
	VisitCount int64
	LastVisit  time.Time
	Hidden     bool
}

var schemas = map[browser.Family][]string{
	browser.FamilyChromium: {
		`CREATE TABLE urls (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			url             LONGVARCHAR,
			title           LONGVARCHAR,
			visit_count     INTEGER DEFAULT 0 NOT NULL,
			typed_count     INTEGER DEFAULT 0 NOT NULL,
			last_visit_time INTEGER NOT NULL,
			hidden          INTEGER DEFAULT 0 NOT NULL
		)`,
	},
	browser.FamilyFirefox: {
		`CREATE TABLE moz_places (
			id              INTEGER PRIMARY KEY,
			url             LONGVARCHAR,
			title           LONGVARCHAR,
			rev_host        LONGVARCHAR,
			visit_count     INTEGER DEFAULT 0,
			hidden          INTEGER DEFAULT 0 NOT NULL,
			typed           INTEGER DEFAULT 0 NOT NULL,
			frecency        INTEGER DEFAULT -1 NOT NULL,
			last_visit_date INTEGER,
			guid            TEXT
		)`,
	},
	browser.FamilySafari: {
		`CREATE TABLE history_items (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			url                TEXT NOT NULL UNIQUE,
			domain_expansion   TEXT NULL,
			visit_count        INTEGER NOT NULL,
			daily_visit_counts BLOB NOT NULL DEFAULT x''
		)`,
		`CREATE TABLE history_visits (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			history_item    INTEGER NOT NULL REFERENCES history_items(id) ON DELETE CASCADE,
			visit_time      REAL NOT NULL,
			title           TEXT NULL,
			load_successful BOOLEAN NOT NULL DEFAULT 1
		)`,
	},
}

// Create writes a history database for family at path and seeds it.
func Create(t testing.TB, path string, family browser.Family, visits ...Visit) {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	Schema(t, db, family)
	Seed(t, db, family, visits...)
}

// Schema creates family's history tables in db.
func Schema(t testing.TB, db *sql.DB, family browser.Family) {
	t.Helper()
	for _, stmt := range schemas[family] {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create %s schema: %v", family, err)
		}
	}
}

// Seed inserts visits converted to family's native columns and units.
func Seed(t testing.TB, db *sql.DB, family browser.Family, visits ...Visit) {
	t.Helper()
	for _, v := range visits {
		var err error
		switch family {
		case browser.FamilyChromium:
			_, err = db.Exec(
				`INSERT INTO urls (id, url, title, visit_count, last_visit_time, hidden) VALUES (?, ?, ?, ?, ?, ?)`,
				v.ID, v.URL, nullable(v.Title), v.VisitCount, ChromiumTime(v.LastVisit), v.Hidden,
			)
		case browser.FamilyFirefox:
			_, err = db.Exec(
				`INSERT INTO moz_places (id, url, title, visit_count, last_visit_date, hidden) VALUES (?, ?, ?, ?, ?, ?)`,
				v.ID, v.URL, nullable(v.Title), v.VisitCount, v.LastVisit.UnixMicro(), v.Hidden,
			)
		case browser.FamilySafari:
			_, err = db.Exec(
				`INSERT INTO history_items (id, url, visit_count) VALUES (?, ?, ?)`,
				v.ID, v.URL, v.VisitCount,
			)
			if err == nil {
				_, err = db.Exec(
					`INSERT INTO history_visits (history_item, visit_time, title) VALUES (?, ?, ?)`,
					v.ID, SafariTime(v.LastVisit), nullable(v.Title),
				)
			}
		}
		if err != nil {
			t.Fatalf("seed %s row %d: %v", family, v.ID, err)
		}
	}
}

// ChromiumTime converts t to microseconds since 1601-01-01.
func ChromiumTime(t time.Time) int64 {
	return t.UnixMicro() + 11644473600*1_000_000
}

// SafariTime converts t to seconds since 2001-01-01.
func SafariTime(t time.Time) float64 {
	return float64(t.UnixMicro())/1e6 - 978307200
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
