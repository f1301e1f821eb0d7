package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/gallery/export"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

const exportPageSize = 500

func RunExport(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("export", g)
	var where, out, to string
	fs.StringVarP(&where, "where", "w", "", "search query (or pass it as arguments)")
	fs.StringVarP(&out, "output", "o", "", "output file (required)")
	fs.StringVar(&to, "to", "", "jsonl|parquet|avro (default: from the output extension)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if out == "" {
		fmt.Fprintln(g.Stderr, "missing --output")
		return 2
	}
	if to == "" {
		to = filepath.Ext(out)
	}
	format, err := export.ParseFormat(to)
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	q := queryArg(where, fs.Args())
	var rows []gallery.ArtworkRow
	for offset := 0; ; offset += exportPageSize {
		page, err := cat.Search(ctx, q, gallery.SearchOptions{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return fail(g.Stderr, err)
		}
		rows = append(rows, page.Rows...)
		if len(page.Rows) < exportPageSize || offset+len(page.Rows) >= page.Total {
			break
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fail(g.Stderr, err)
	}
	if err := export.Write(f, format, rows); err != nil {
		f.Close()
		return fail(g.Stderr, err)
	}
	if err := f.Close(); err != nil {
		return fail(g.Stderr, err)
	}
	fmt.Fprintf(g.Stdout, "exported %d artworks to %s (%s)\n", len(rows), out, format)
	return 0
}
