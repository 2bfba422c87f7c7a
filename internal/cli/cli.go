package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Search      *SearchCommand
	Interactive *InteractiveCommand
	Open        *OpenCommand
	Browsers    *BrowsersCommand
	Profiles    *ProfilesCommand
	Status      *StatusCommand
	Prune       *PruneCommand
	Purge       *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	// Errors are returned to main, which prints them once.
	parser := goflags.NewParser(&globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "findsite"
	parser.LongDescription = "Search your local browser history by title or URL."

	cmds := &commands{
		Search:      &SearchCommand{globals: &globals, version: version},
		Interactive: &InteractiveCommand{globals: &globals, version: version},
		Open:        &OpenCommand{globals: &globals, version: version},
		Browsers:    &BrowsersCommand{globals: &globals, version: version},
		Profiles:    &ProfilesCommand{globals: &globals, version: version},
		Status:      &StatusCommand{globals: &globals, version: version},
		Prune:       &PruneCommand{globals: &globals, version: version},
		Purge:       &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("search", "Search browser history", "Search history by title or URL. Recently visited matches are listed before frequently visited ones.", cmds.Search)
	parser.AddCommand("interactive", "Search as you type", "Open a terminal search box that refreshes results on every keystroke.", cmds.Interactive)
	parser.AddCommand("open", "Open a search result", "Run a search and open the selected result in the default browser.", cmds.Open)
	parser.AddCommand("browsers", "List supported browsers", "List supported browsers with their history location and installed state.", cmds.Browsers)
	parser.AddCommand("profiles", "List browser profiles", "List profile folders for the configured browser.", cmds.Profiles)
	parser.AddCommand("status", "Show configuration and snapshot state", "Show the configured browser, its history database and the snapshot cache.", cmds.Status)
	parser.AddCommand("prune", "Remove old snapshots", "Remove history snapshots older than a duration.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL snapshots", "Delete every history snapshot. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the findsite CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("findsite %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				fmt.Println(flagsErr.Message)
				return nil
			}
		}
		return err
	}

	return nil
}
