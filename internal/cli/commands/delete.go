package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("delete", g)
	var imageID int64
	fs.Int64Var(&imageID, "image", 0, "delete a single image instead of artworks")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.Changed("image") {
		if fs.NArg() != 0 || imageID <= 0 {
			fmt.Fprintln(g.Stderr, "usage: gallery delete --image <image-id>")
			return 2
		}
		return deleteImage(g, imageID)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(g.Stderr, "usage: gallery delete <artwork-id>... | --image <image-id>")
		return 2
	}

	batch := gallery.NewBatch()
	for _, arg := range fs.Args() {
		id, err := parseID(arg)
		if err != nil {
			fmt.Fprintln(g.Stderr, err)
			return 2
		}
		if err := batch.Delete(id); err != nil {
			return fail(g.Stderr, err)
		}
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	if batch.Len() == 1 {
		id, _ := parseID(fs.Arg(0))
		found, err := cat.Delete(ctx, id)
		if err != nil {
			return fail(g.Stderr, err)
		}
		if !found {
			fmt.Fprintf(g.Stderr, "artwork not found: %d\n", id)
			return 1
		}
		fmt.Fprintf(g.Stdout, "deleted %d\n", id)
		return 0
	}

	count, err := batch.Execute(ctx, cat)
	if err != nil {
		return fail(g.Stderr, err)
	}
	fmt.Fprintf(g.Stdout, "deleted %d of %d\n", count, batch.Len())
	return 0
}

func deleteImage(g cliopt.GlobalOptions, imageID int64) int {
	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	found, err := cat.DeleteImage(ctx, imageID)
	if err != nil {
		return fail(g.Stderr, err)
	}
	if !found {
		fmt.Fprintf(g.Stderr, "image not found: %d\n", imageID)
		return 1
	}
	fmt.Fprintf(g.Stdout, "deleted image %d\n", imageID)
	return 0
}
