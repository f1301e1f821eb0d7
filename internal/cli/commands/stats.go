package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunStats(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("stats", g)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	st, err := cat.Stats(ctx)
	if err != nil {
		return fail(g.Stderr, err)
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, st)
		return 0
	}
	fmt.Fprintf(g.Stdout, "Catalog %s:\n", cat.Adapter().CatalogID())
	fmt.Fprintf(g.Stdout, "  Artworks: %d\n", st.Artworks)
	fmt.Fprintf(g.Stdout, "  Images: %d\n", st.Images)
	fmt.Fprintf(g.Stdout, "  Tags: %d\n", st.Tags)
	return 0
}
