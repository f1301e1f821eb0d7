package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunSearch(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("search", g)
	var where string
	var limit, offset int
	var explain bool
	fs.StringVarP(&where, "where", "w", "", "search query (or pass it as arguments)")
	fs.IntVar(&limit, "limit", g.DefaultLimit, "page size")
	fs.IntVar(&offset, "offset", 0, "rows to skip")
	fs.BoolVar(&explain, "explain", false, "include compile steps and SQL")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	q := queryArg(where, fs.Args())

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	start := time.Now()
	page, err := cat.Search(ctx, q, gallery.SearchOptions{Limit: limit, Offset: offset, Explain: explain})
	if err != nil {
		return fail(g.Stderr, err)
	}
	printSearch(g.Stdout, cliutil.ParseOutputFormat(g.Format), page, offset, time.Since(start))
	return 0
}

func printSearch(w io.Writer, fmtOut cliutil.OutputFormat, page gallery.SearchResultPage, offset int, dur time.Duration) {
	if fmtOut == cliutil.FormatJSON {
		cliutil.PrintJSON(w, page)
		return
	}

	fmt.Fprintf(w, "Found %d artworks in %dms", page.Total, dur.Milliseconds())
	if page.Partial {
		fmt.Fprintf(w, " (partial match, %d subset queries)", page.SubsetQueries)
	}
	fmt.Fprintln(w)
	for _, r := range page.Rows {
		line := fmt.Sprintf("- #%d %s", r.ID, r.Name)
		if r.Artist != "" {
			line += " by " + r.Artist
		}
		if r.Year != nil {
			line += fmt.Sprintf(" (%d)", *r.Year)
		}
		if page.Partial {
			line += fmt.Sprintf(" [score %d]", r.MatchScore)
		}
		fmt.Fprintln(w, line)
	}
	if shown := offset + len(page.Rows); shown < page.Total {
		fmt.Fprintf(w, "\nshowing %d-%d, next: --offset %d\n", offset+1, shown, shown)
	}
	if page.Truncated {
		fmt.Fprintln(w, "\nranking stopped early: subset query budget exhausted")
	}
	printExplain(w, page)
}

func printExplain(w io.Writer, page gallery.SearchResultPage) {
	if len(page.ExplainSteps) > 0 {
		fmt.Fprintln(w, "\nExplanation:")
		for _, s := range page.ExplainSteps {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
	if page.ExplainSQL != "" {
		fmt.Fprintf(w, "\nQuery:\n%s\n", strings.TrimSpace(page.ExplainSQL))
	}
}
