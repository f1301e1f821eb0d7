package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunGet(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("get", g)
	var imageID int64
	fs.Int64Var(&imageID, "image", 0, "image whose tags are listed (default: primary image)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(g.Stderr, "usage: gallery get <artwork-id> [--image <image-id>]")
		return 2
	}
	id, err := parseID(fs.Arg(0))
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

	d, err := cat.Artwork(ctx, id, imageID)
	if err != nil {
		if gallery.IsKind(err, gallery.ErrNotFound) {
			fmt.Fprintln(g.Stderr, err)
			return 1
		}
		return fail(g.Stderr, err)
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, d)
		return 0
	}

	fmt.Fprintf(g.Stdout, "#%d %s\n", d.ID, d.Name)
	if d.Artist != "" {
		fmt.Fprintf(g.Stdout, "Artist: %s\n", d.Artist)
	}
	if d.Year != nil {
		fmt.Fprintf(g.Stdout, "Year: %d\n", *d.Year)
	}
	if d.Description != "" {
		fmt.Fprintf(g.Stdout, "\n%s\n", d.Description)
	}
	fmt.Fprintln(g.Stdout, "\nImages:")
	for _, img := range d.Images {
		mark := " "
		if img.ID == d.SelectedImage {
			mark = "*"
		}
		fmt.Fprintf(g.Stdout, " %s %d. %s (image %d)\n", mark, img.DisplayOrder, img.File, img.ID)
	}
	fmt.Fprintln(g.Stdout, "\nTags:")
	for _, t := range d.Tags {
		fmt.Fprintf(g.Stdout, "  %s / %s / %s\n", t.Category, t.Group, t.Name)
	}
	return 0
}
