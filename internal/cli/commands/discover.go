package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunDiscover(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("discover", g)
	var where string
	var top int
	fs.StringVarP(&where, "where", "w", "", "filter query (or pass it as arguments)")
	fs.IntVar(&top, "top", 20, "number of tags to return")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	counts, err := cat.DiscoverTags(ctx, queryArg(where, fs.Args()), top)
	if err != nil {
		return fail(g.Stderr, err)
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, counts)
		return 0
	}
	for _, c := range counts {
		fmt.Fprintf(g.Stdout, "  %s-%s (%s): %d\n", c.Group, c.Tag, c.Category, c.Count)
	}
	return 0
}
