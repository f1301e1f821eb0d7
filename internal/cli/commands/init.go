package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunInit(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("init", g)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cat, err := cliutil.OpenCatalog(background(), g, true)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	fmt.Fprintf(g.Stdout, "initialized catalog %s\n", cat.Adapter().CatalogID())
	return 0
}
