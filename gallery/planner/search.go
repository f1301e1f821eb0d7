package planner

import (
	"strings"

	"github.com/nonibytes/gallery/gallery/query"
	"github.com/nonibytes/gallery/gallery/storage"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

// CompileResult is a search string compiled to a WHERE clause
type CompileResult struct {
	WhereClause      string
	Parameters       []any
	HasVersionFilter bool
	PartialMatch     bool
	// TagQueries holds the tag terms in source order, lowercased, with
	// group-tag pairs kept as one "group-tag" string.
	TagQueries []string
	Terms      []query.TagTerm
	Steps      []string
}

// ParseSearchQuery compiles a search string using $n placeholders numbered from 1.
func ParseSearchQuery(q string) (*CompileResult, error) {
	return CompileInto(q, sqlbuilder.New(sqlbuilder.PlaceholderDollar))
}

// CompileInto compiles a search string, allocating placeholders from b so
// the caller can keep numbering for the rest of its statement. Parameters
// holds only the values this call added.
func CompileInto(q string, b storage.Builder) (*CompileResult, error) {
	if strings.TrimSpace(q) == "" {
		return &CompileResult{
			WhereClause: "1=1",
			Parameters:  []any{},
			TagQueries:  []string{},
		}, nil
	}

	parsed, err := query.Parse(q)
	if err != nil {
		return nil, err
	}

	cond, info, err := Lower(parsed.Expr)
	if err != nil {
		return nil, err
	}

	start := b.Len()
	where := Render(cond, b)
	params := append([]any{}, b.Args()[start:]...)

	tagQueries := parsed.TagQueries
	if tagQueries == nil {
		tagQueries = []string{}
	}

	return &CompileResult{
		WhereClause:      where,
		Parameters:       params,
		HasVersionFilter: info.HasVersionFilter,
		PartialMatch:     parsed.PartialMatch,
		TagQueries:       tagQueries,
		Terms:            parsed.Terms,
		Steps:            info.Steps,
	}, nil
}

// SubsetQuery joins tag terms with AND into query text that compiles to
// the conjunction of exactly those terms.
func SubsetQuery(terms []query.TagTerm) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Source()
	}
	return strings.Join(parts, " AND ")
}
