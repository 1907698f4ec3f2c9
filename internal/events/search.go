package events

import "time"

// SearchStart is emitted before a search walks its root.
type SearchStart struct {
	Item         string
	Verbosity    int
	ExcludePaths int
	ExcludeTypes int
}

// SearchFinish is emitted after the walk completes.
type SearchFinish struct {
	Item          string
	MatchedPaths  int
	MatchedValues int
	Unprocessed   int
	Advisories    int
	Duration      time.Duration
}

// UnorderedCollection is emitted when a set is walked with positional paths.
// At most the search's advisory limit of these is emitted per search.
type UnorderedCollection struct {
	Path string
}
