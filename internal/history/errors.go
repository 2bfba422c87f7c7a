package history

import "github.com/pkg/errors"

var (
	// ErrNotInstalled means the browser's history database does not exist.
	ErrNotInstalled = errors.New("browser history not found")

	// ErrSuperseded is returned by a search cancelled by a newer one.
	ErrSuperseded = errors.New("search superseded by a newer query")
)
