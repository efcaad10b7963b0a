package gencache

import "errors"

// ErrClosed is returned by wait-gated operations invoked after Close.
// Synchronous operations on a closed cache degrade to no-ops instead
// (see Cache.Close).
var ErrClosed = errors.New("gencache: cache closed")
