package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Options select the browser and profile a search runs against.
type Options struct {
	Browser ID
	Profile string
	HomeDir string
	GOOS    string // defaults to runtime.GOOS
}

// Factory bundles everything a single search needs for one browser.
type Factory struct {
	Browser      ID
	Family       Family
	Profile      string
	QueryBuilder QueryBuilder
	DBSourcePath string
	Recents      Adapter
	TopVisited   Adapter
}

// NewFactory resolves opts into a Factory. It returns nil when the browser
// is unknown or has no history location on the target OS; it never fails
// on a missing database, which callers detect with Installed.
func NewFactory(opts Options) *Factory {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	spec, ok := Lookup(ID(strings.ToLower(string(opts.Browser))))
	if !ok {
		return nil
	}
	root, ok := spec.Root(opts.HomeDir, goos)
	if !ok {
		return nil
	}

	profile := ""
	path := filepath.Join(root, spec.HistoryFile(goos))
	if spec.Profiled(goos) {
		profile = opts.Profile
		if profile == "" {
			profile = defaultProfile(spec, root)
		}
		path = filepath.Join(root, profile, spec.HistoryFile(goos))
	}

	return &Factory{
		Browser:      spec.ID,
		Family:       spec.Family,
		Profile:      profile,
		QueryBuilder: builderFor(spec.Family),
		DBSourcePath: path,
		Recents:      RecentsAdapter{Family: spec.Family},
		TopVisited:   TopVisitedAdapter{Family: spec.Family},
	}
}

// Installed reports whether the factory's history database exists.
func (f *Factory) Installed() bool {
	if f == nil {
		return false
	}
	info, err := os.Stat(f.DBSourcePath)
	return err == nil && !info.IsDir()
}

func builderFor(f Family) QueryBuilder {
	switch f {
	case FamilySafari:
		return SafariQueryBuilder{}
	case FamilyFirefox:
		return FirefoxQueryBuilder{}
	default:
		return ChromiumQueryBuilder{}
	}
}

// defaultProfile picks the profile used when none is configured. Chromium
// browsers always create "Default". Firefox profile folders carry a random
// prefix, so the first default-release profile wins, then any default one.
func defaultProfile(spec Info, root string) string {
	if spec.Family != FamilyFirefox {
		return DefaultChromiumProfile
	}
	for _, pattern := range []string{"*.default-release", "*.default*", "*"} {
		matches, _ := filepath.Glob(filepath.Join(root, pattern))
		sort.Strings(matches)
		for _, m := range matches {
			if fileExists(filepath.Join(m, "places.sqlite")) {
				return filepath.Base(m)
			}
		}
	}
	return ""
}

// Profiles lists the profile folders of a browser that contain a history
// database. Unprofiled browsers return nil.
func Profiles(id ID, home, goos string) ([]string, error) {
	spec, ok := Lookup(id)
	if !ok {
		return nil, ErrUnknownBrowser
	}
	root, ok := spec.Root(home, goos)
	if !ok || !spec.Profiled(goos) {
		return nil, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var profiles []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if fileExists(filepath.Join(root, e.Name(), spec.HistoryFile(goos))) {
			profiles = append(profiles, e.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
