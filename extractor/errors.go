package extractor

import "errors"

var (
	// ErrRenderUnavailable means the render provider failed or timed
	// out; extraction for the catalog is aborted with an empty result.
	ErrRenderUnavailable = errors.New("render provider unavailable")

	// ErrNoSellersFound marks an extraction run in which every
	// strategy came back empty. It is a normal outcome, not a failure;
	// callers use it to decide whether to capture a diagnostic.
	ErrNoSellersFound = errors.New("no sellers recovered")

	// ErrMalformedFeed means the structured seller feed returned data
	// that could not be parsed. The feed strategy is skipped and the
	// pipeline moves on.
	ErrMalformedFeed = errors.New("malformed seller feed response")
)
