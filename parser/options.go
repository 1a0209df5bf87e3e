package parser

import (
	"time"
)

const (
	// Default bound on an expanded cluster list (64GiB of 4KiB
	// clusters).
	DEFAULT_MAX_CLUSTERS = 1 << 24
)

type Options struct {
	// Timestamps are rendered in this location. Decoding always
	// works in UTC.
	Location *time.Location

	// Treat fixup signature mismatches as fatal instead of
	// reporting them as warnings.
	StrictFixups bool

	// Maximum number of clusters a run list may expand to. When 0
	// the limit is the number of clusters in the volume, capped at
	// DEFAULT_MAX_CLUSTERS.
	MaxClusters int64
}

func GetDefaultOptions() Options {
	return Options{
		Location: time.UTC,
	}
}
