package pyramid

import "errors"

// ErrNoLoader is raised by New if constructed without a loader: a pyramid
// with nothing to fetch tiles is a construction error, not a runtime one
// (spec.md §7, "Construction with no layer: fatal, raised immediately").
var ErrNoLoader = errors.New("pyramid: no loader provided")
