package commands

import (
	"fmt"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

// RunUpdate edits artwork metadata; only the flags given are changed.
func RunUpdate(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("update", g)
	var (
		title, artist, description string
		year                       int64
		noYear                     bool
	)
	fs.StringVar(&title, "title", "", "artwork title")
	fs.StringVar(&artist, "artist", "", "artist name (empty clears it)")
	fs.Int64Var(&year, "year", 0, "year of creation")
	fs.BoolVar(&noYear, "no-year", false, "clear the year")
	fs.StringVar(&description, "description", "", "free text description")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(g.Stderr, "usage: gallery update <artwork-id> [--title t] [--artist a] [--year y | --no-year] [--description d]")
		return 2
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return 2
	}
	if fs.Changed("year") && noYear {
		fmt.Fprintln(g.Stderr, "--year and --no-year are mutually exclusive")
		return 2
	}

	var patch gallery.ArtworkPatch
	if fs.Changed("title") {
		patch.Title = &title
	}
	if fs.Changed("artist") {
		patch.Artist = &artist
	}
	if fs.Changed("year") {
		patch.Year = &year
	}
	patch.ClearYear = noYear
	if fs.Changed("description") {
		patch.Description = &description
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	if err := cat.UpdateArtwork(ctx, id, patch); err != nil {
		return fail(g.Stderr, err)
	}
	fmt.Fprintf(g.Stdout, "updated %d\n", id)
	return 0
}
