package commands

import (
	"fmt"
	"strings"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunTags(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) > 0 {
		switch argv[0] {
		case "create":
			return runTagsCreate(g, argv[1:], false)
		case "create-group":
			return runTagsCreate(g, argv[1:], true)
		case "describe":
			return runTagsDescribe(g, argv[1:], false)
		case "describe-group":
			return runTagsDescribe(g, argv[1:], true)
		}
	}

	fs := newFlagSet("tags", g)
	var used bool
	fs.BoolVar(&used, "used", false, "only tags attached to at least one image")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	var cats []gallery.Category
	if used {
		cats, err = cat.UsedTags(ctx)
	} else {
		cats, err = cat.AllTags(ctx)
	}
	if err != nil {
		return fail(g.Stderr, err)
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(g.Stdout, cats)
		return 0
	}
	for _, c := range cats {
		fmt.Fprintf(g.Stdout, "%s\n", c.Name)
		for _, grp := range c.Groups {
			fmt.Fprintf(g.Stdout, "  %s\n", grp.Name)
			for _, t := range grp.Tags {
				fmt.Fprintf(g.Stdout, "    %s\n", t.Name)
			}
		}
	}
	return 0
}

// parseGroupRef reads "group" or "category/group"
func parseGroupRef(s string) (category, group string, err error) {
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		group = parts[0]
	case 2:
		category, group = parts[0], parts[1]
	default:
		return "", "", gallery.New(gallery.ErrInvalid, "tag group must be group or category/group: "+s)
	}
	return category, group, nil
}

func runTagsCreate(g cliopt.GlobalOptions, argv []string, isGroup bool) int {
	name := "tags create"
	usage := "usage: gallery tags create <group/name> [--description text]"
	if isGroup {
		name = "tags create-group"
		usage = "usage: gallery tags create-group <category/group> [--description text]"
	}
	fs := newFlagSet(name, g)
	var description string
	fs.StringVar(&description, "description", "", "description shown in tag listings")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(g.Stderr, usage)
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	var id int64
	if isGroup {
		category, group, err := parseGroupRef(fs.Arg(0))
		if err != nil {
			return fail(g.Stderr, err)
		}
		id, err = cat.CreateTagGroup(ctx, category, group, description)
		if err != nil {
			return fail(g.Stderr, err)
		}
	} else {
		ref, err := gallery.ParseTagRef(fs.Arg(0))
		if err != nil {
			return fail(g.Stderr, err)
		}
		id, err = cat.CreateTag(ctx, ref, description)
		if err != nil {
			return fail(g.Stderr, err)
		}
	}
	fmt.Fprintf(g.Stdout, "created %s %d\n", fs.Arg(0), id)
	return 0
}

func runTagsDescribe(g cliopt.GlobalOptions, argv []string, isGroup bool) int {
	name := "tags describe"
	if isGroup {
		name = "tags describe-group"
	}
	fs := newFlagSet(name, g)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(g.Stderr, "usage: gallery %s <ref> <description>...\n", name)
		return 2
	}
	description := strings.Join(fs.Args()[1:], " ")

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	if isGroup {
		category, group, err := parseGroupRef(fs.Arg(0))
		if err != nil {
			return fail(g.Stderr, err)
		}
		err = cat.SetTagGroupDescription(ctx, category, group, description)
		if err != nil {
			return fail(g.Stderr, err)
		}
	} else {
		ref, err := gallery.ParseTagRef(fs.Arg(0))
		if err != nil {
			return fail(g.Stderr, err)
		}
		if err := cat.SetTagDescription(ctx, ref, description); err != nil {
			return fail(g.Stderr, err)
		}
	}
	fmt.Fprintf(g.Stdout, "described %s\n", fs.Arg(0))
	return 0
}
