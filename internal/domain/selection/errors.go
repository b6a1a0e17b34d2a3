package selection

import "errors"

// ErrInvalidSuggestion marks an externally suggested composition that breaks
// the squad invariants.
var ErrInvalidSuggestion = errors.New("invalid suggestion")
