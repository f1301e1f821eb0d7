package ops

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nonibytes/gallery/gallery/planner"
	"github.com/nonibytes/gallery/gallery/query"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

const (
	// DefaultMaxSubsetQueries bounds the subset queries one partial-match
	// search may issue. Eight tags (255 subsets) already exceed it.
	DefaultMaxSubsetQueries = 128
	DefaultRankConcurrency  = 4
)

// ArtworkQuerier runs a compiled WHERE clause against the artwork store.
type ArtworkQuerier interface {
	QueryArtworks(ctx context.Context, where string, args []any) ([]ArtworkRow, error)
}

// RankOptions configures RankPartial
type RankOptions struct {
	Limit            int
	Offset           int
	MaxSubsetQueries int
	Concurrency      int
	Logger           *slog.Logger
}

// RankResult is one page of partial-match results
type RankResult struct {
	Rows []ArtworkRow
	// Total is the number of distinct artworks collected before paging.
	Total         int
	SubsetQueries int
	// Levels lists the subset sizes that were evaluated, largest first.
	Levels    []int
	Truncated bool
}

type subsetResult struct {
	rows []ArtworkRow
}

// RankPartial ranks artworks by how many of terms they satisfy.
//
// Subsets of size k are evaluated only after every larger size. Within a
// size, subset queries run concurrently but their rows are merged in
// combination order, so the outcome does not depend on scheduling. An
// artwork keeps the score of the first (largest) subset that matched it.
// Descent stops once a level added rows and offset+limit artworks have
// been collected, or when the subset query budget runs out.
func RankPartial(ctx context.Context, q ArtworkQuerier, style sqlbuilder.PlaceholderStyle, terms []query.TagTerm, opts RankOptions) (*RankResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := max(opts.Offset, 0)
	budget := opts.MaxSubsetQueries
	if budget <= 0 {
		budget = DefaultMaxSubsetQueries
	}
	workers := opts.Concurrency
	if workers <= 0 {
		workers = DefaultRankConcurrency
	}

	res := &RankResult{}
	n := len(terms)
	want := offset + limit
	seen := make(map[int64]bool)
	var ranked []ArtworkRow

	for k := n; k >= 1; k-- {
		remaining := budget - res.SubsetQueries
		if remaining <= 0 {
			res.Truncated = true
			break
		}

		var subsets [][]int
		combos := newCombinations(n, k)
		for len(subsets) < remaining {
			idx, ok := combos.Next()
			if !ok {
				break
			}
			subsets = append(subsets, idx)
		}
		if _, more := combos.Next(); more {
			res.Truncated = true
		}

		results := make([]subsetResult, len(subsets))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, idx := range subsets {
			g.Go(func() error {
				rows, err := runSubset(gctx, q, style, pick(terms, idx))
				if err != nil {
					return err
				}
				results[i] = subsetResult{rows: rows}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		res.SubsetQueries += len(subsets)
		res.Levels = append(res.Levels, k)

		added := 0
		for _, sr := range results {
			for _, row := range sr.rows {
				if seen[row.ID] {
					continue
				}
				seen[row.ID] = true
				row.MatchScore = k
				ranked = append(ranked, row)
				added++
			}
		}
		logger.Debug("partial match level", "size", k, "subsets", len(subsets), "added", added, "collected", len(ranked))

		if res.Truncated {
			logger.Warn("partial match subset budget exhausted",
				"terms", n,
				"budget", budget,
				"stopped_at_size", k,
				"level_subsets", binomial(n, k, math.MaxInt32),
			)
			break
		}
		if added > 0 && len(ranked) >= want {
			break
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	res.Total = len(ranked)
	if offset < len(ranked) {
		end := min(offset+limit, len(ranked))
		res.Rows = ranked[offset:end]
	}
	return res, nil
}

func runSubset(ctx context.Context, q ArtworkQuerier, style sqlbuilder.PlaceholderStyle, subset []query.TagTerm) ([]ArtworkRow, error) {
	text := planner.SubsetQuery(subset)
	compiled, err := planner.CompileInto(text, sqlbuilder.New(style))
	if err != nil {
		return nil, fmt.Errorf("compile subset %q: %w", text, err)
	}
	rows, err := q.QueryArtworks(ctx, compiled.WhereClause, compiled.Parameters)
	if err != nil {
		return nil, fmt.Errorf("query subset %q: %w", text, err)
	}
	return rows, nil
}

func pick(terms []query.TagTerm, idx []int) []query.TagTerm {
	out := make([]query.TagTerm, len(idx))
	for i, j := range idx {
		out[i] = terms[j]
	}
	return out
}
