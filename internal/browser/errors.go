package browser

import "github.com/pkg/errors"

// ErrUnknownBrowser is returned for identifiers missing from the registry.
var ErrUnknownBrowser = errors.New("unknown browser")
