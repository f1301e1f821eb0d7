package gallery

import "github.com/nonibytes/gallery/gallery/ops"

const (
	DefaultLimit            = ops.DefaultLimit
	DefaultMaxSubsetQueries = ops.DefaultMaxSubsetQueries
	DefaultRankConcurrency  = ops.DefaultRankConcurrency
	DefaultDiscoverTop      = 20
)
