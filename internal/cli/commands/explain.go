package commands

import (
	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunExplain(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("explain", g)
	var where string
	var limit, offset int
	fs.StringVarP(&where, "where", "w", "", "search query (or pass it as arguments)")
	fs.IntVar(&limit, "limit", g.DefaultLimit, "page size")
	fs.IntVar(&offset, "offset", 0, "rows to skip")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cat, err := cliutil.OpenCatalog(background(), g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	page, err := cat.Explain(queryArg(where, fs.Args()), gallery.SearchOptions{Limit: limit, Offset: offset})
	if err != nil {
		return fail(g.Stderr, err)
	}
	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, page)
		return 0
	}
	printExplain(g.Stdout, page)
	return 0
}
