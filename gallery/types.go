package gallery

import (
	"log/slog"

	"github.com/nonibytes/gallery/gallery/ops"
)

// CatalogOptions configures catalog behavior
type CatalogOptions struct {
	// MaxSubsetQueries caps the queries one partial-match search may issue.
	MaxSubsetQueries int
	// RankConcurrency bounds parallel subset queries.
	RankConcurrency int
	Logger          *slog.Logger
}

// DefaultCatalogOptions returns sensible defaults
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{
		MaxSubsetQueries: DefaultMaxSubsetQueries,
		RankConcurrency:  DefaultRankConcurrency,
		Logger:           slog.Default(),
	}
}

// SearchOptions configures a search operation
type SearchOptions struct {
	Limit   int
	Offset  int
	Explain bool
}

// SearchResultPage is a page of search results
type SearchResultPage struct {
	SearchID string           `json:"search_id,omitempty"`
	Rows     []ops.ArtworkRow `json:"rows"`
	Total    int              `json:"total"`
	// Partial is set when results were ranked by match:partial.
	Partial       bool     `json:"partial,omitempty"`
	Truncated     bool     `json:"truncated,omitempty"`
	SubsetQueries int      `json:"subset_queries,omitempty"`
	ExplainSQL    string   `json:"explain_sql,omitempty"`
	ExplainSteps  []string `json:"explain_steps,omitempty"`
}

type (
	ArtworkRow     = ops.ArtworkRow
	ArtworkDoc     = ops.ArtworkDoc
	ArtworkDetails = ops.ArtworkDetails
	Category       = ops.Category
	TagCount       = ops.TagCount
	StatsResult    = ops.StatsResult
)
