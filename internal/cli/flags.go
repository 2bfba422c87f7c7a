package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
	Browser string `short:"b" long:"browser" description:"Browser to search (overrides config)"`
	Profile string `short:"p" long:"profile" description:"Browser profile folder (overrides config)"`
}

// SearchCommand: search browser history by title or URL.
type SearchCommand struct {
	Limit int `short:"n" long:"limit" description:"Maximum results per list (default from config)"`

	globals *GlobalFlags
	version string
}

// InteractiveCommand: search-as-you-type in the terminal.
type InteractiveCommand struct {
	Print bool `long:"print" description:"Print the selected URL instead of opening it"`

	globals *GlobalFlags
	version string
}

// OpenCommand: open the N-th result of a search.
type OpenCommand struct {
	Index int  `short:"i" long:"index" description:"1-based result to open" default:"1"`
	Print bool `long:"print" description:"Print the URL instead of opening it"`

	globals *GlobalFlags
	version string
}

// BrowsersCommand: list supported browsers and whether their history exists.
type BrowsersCommand struct {
	globals *GlobalFlags
	version string
}

// ProfilesCommand: list profile folders for the configured browser.
type ProfilesCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand: show configured browser, source database and snapshot state.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand: remove snapshot copies older than a duration.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Remove snapshots older than duration (e.g., 7d)" default:"7d"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand: delete every snapshot copy with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}
