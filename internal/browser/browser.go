// Package browser knows where each supported browser keeps its history
// database, how to query it and how to turn its rows into display results.
package browser

import (
	"path/filepath"
	"sort"
)

// ID identifies a supported browser.
type ID string

const (
	Chrome   ID = "chrome"
	Chromium ID = "chromium"
	Arc      ID = "arc"
	Brave    ID = "brave"
	Vivaldi  ID = "vivaldi"
	Opera    ID = "opera"
	Edge     ID = "edge"
	Safari   ID = "safari"
	Firefox  ID = "firefox"
	Zen      ID = "zen"
)

// Family groups browsers that share a history schema.
type Family string

const (
	FamilyChromium Family = "chromium"
	FamilySafari   Family = "safari"
	FamilyFirefox  Family = "firefox"
)

// DefaultChromiumProfile is the profile folder Chromium browsers create first.
const DefaultChromiumProfile = "Default"

// location describes where a browser stores history on one OS. Dir is
// relative to the home directory. When Profiled is set the profile folder
// sits between Dir and File.
type location struct {
	Dir      string
	File     string
	Profiled bool
}

// Info is the static description of a supported browser.
type Info struct {
	ID        ID
	Name      string
	Family    Family
	locations map[string]location
}

// HistoryFile returns the database file name (History, places.sqlite, History.db).
func (s Info) HistoryFile(goos string) string {
	return s.locations[goos].File
}

// Profiled reports whether the browser keeps one history database per profile.
func (s Info) Profiled(goos string) bool {
	return s.locations[goos].Profiled
}

// Root returns the directory holding the browser's profiles (or its history
// database for unprofiled browsers).
func (s Info) Root(home, goos string) (string, bool) {
	loc, ok := s.locations[goos]
	if !ok {
		return "", false
	}
	return filepath.Join(home, filepath.FromSlash(loc.Dir)), true
}

func chromiumAt(darwin, linux string) map[string]location {
	locs := map[string]location{}
	if darwin != "" {
		locs["darwin"] = location{Dir: darwin, File: "History", Profiled: true}
	}
	if linux != "" {
		locs["linux"] = location{Dir: linux, File: "History", Profiled: true}
	}
	return locs
}

func firefoxAt(darwin, linux string) map[string]location {
	return map[string]location{
		"darwin": {Dir: darwin, File: "places.sqlite", Profiled: true},
		"linux":  {Dir: linux, File: "places.sqlite", Profiled: true},
	}
}

var registry = map[ID]Info{
	Chrome: {ID: Chrome, Name: "Google Chrome", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/Google/Chrome", ".config/google-chrome")},
	Chromium: {ID: Chromium, Name: "Chromium", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/Chromium", ".config/chromium")},
	Arc: {ID: Arc, Name: "Arc", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/Arc/User Data", "")},
	Brave: {ID: Brave, Name: "Brave", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/BraveSoftware/Brave-Browser", ".config/BraveSoftware/Brave-Browser")},
	Vivaldi: {ID: Vivaldi, Name: "Vivaldi", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/Vivaldi", ".config/vivaldi")},
	Opera: {ID: Opera, Name: "Opera", Family: FamilyChromium,
		locations: map[string]location{
			"darwin": {Dir: "Library/Application Support/com.operasoftware.Opera", File: "History"},
			"linux":  {Dir: ".config/opera", File: "History"},
		}},
	Edge: {ID: Edge, Name: "Microsoft Edge", Family: FamilyChromium,
		locations: chromiumAt("Library/Application Support/Microsoft Edge", ".config/microsoft-edge")},
	Safari: {ID: Safari, Name: "Safari", Family: FamilySafari,
		locations: map[string]location{
			"darwin": {Dir: "Library/Safari", File: "History.db"},
		}},
	Firefox: {ID: Firefox, Name: "Firefox", Family: FamilyFirefox,
		locations: firefoxAt("Library/Application Support/Firefox/Profiles", ".mozilla/firefox")},
	Zen: {ID: Zen, Name: "Zen", Family: FamilyFirefox,
		locations: firefoxAt("Library/Application Support/zen/Profiles", ".zen")},
}

// Lookup returns the registry entry for a browser identifier.
func Lookup(id ID) (Info, bool) {
	s, ok := registry[id]
	return s, ok
}

// Supported lists the browsers that have a known history location on goos,
// sorted by identifier.
func Supported(goos string) []Info {
	var specs []Info
	for _, s := range registry {
		if _, ok := s.locations[goos]; ok {
			specs = append(specs, s)
		}
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
