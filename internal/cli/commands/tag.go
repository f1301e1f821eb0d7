package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

// parseTagRefs reads repeated --tag values
func parseTagRefs(values []string) ([]gallery.TagRef, error) {
	refs := make([]gallery.TagRef, 0, len(values))
	for _, v := range values {
		ref, err := gallery.ParseTagRef(v)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RunTag attaches tags to one image, every image of an artwork, or several artworks at once.
func RunTag(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("tag", g)
	var (
		tags    []string
		imageID int64
	)
	fs.StringArrayVar(&tags, "tag", nil, "tag as group/name or category/group/name (repeatable)")
	fs.Int64Var(&imageID, "image", 0, "only this image of the artwork")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() == 0 || len(tags) == 0 {
		fmt.Fprintln(g.Stderr, "usage: gallery tag <artwork-id>... --tag group/name [--image id]")
		return 2
	}
	if imageID != 0 && fs.NArg() > 1 {
		fmt.Fprintln(g.Stderr, "--image needs exactly one artwork id")
		return 2
	}
	ids, err := parseIDs(fs.Args())
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return 2
	}
	refs, err := parseTagRefs(tags)
	if err != nil {
		return fail(g.Stderr, err)
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	var res *gallery.TagUpdate
	if len(ids) == 1 {
		res, err = cat.TagImages(ctx, ids[0], imageID, refs)
	} else {
		res, err = cat.TagArtworks(ctx, ids, refs)
	}
	if err != nil {
		return fail(g.Stderr, err)
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, res)
		return 0
	}
	fmt.Fprintf(g.Stdout, "tagged %d image(s) with %d tag(s)\n", len(res.ImageIDs), len(res.TagIDs))
	return 0
}

func RunUntag(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("untag", g)
	var (
		tags    []string
		imageID int64
	)
	fs.StringArrayVar(&tags, "tag", nil, "tag as group/name or category/group/name (repeatable)")
	fs.Int64Var(&imageID, "image", 0, "only this image of the artwork")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 || len(tags) == 0 {
		fmt.Fprintln(g.Stderr, "usage: gallery untag <artwork-id> --tag group/name [--image id]")
		return 2
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return 2
	}
	refs, err := parseTagRefs(tags)
	if err != nil {
		return fail(g.Stderr, err)
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	removed, err := cat.UntagImages(ctx, id, imageID, refs)
	if err != nil {
		return fail(g.Stderr, err)
	}
	fmt.Fprintf(g.Stdout, "removed %d tag link(s)\n", removed)
	return 0
}
