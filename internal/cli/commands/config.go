package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nonibytes/gallery/internal/config"
)

// RunConfig handles "config init"; it needs no catalog or loaded config.
func RunConfig(argv []string) int {
	if len(argv) == 0 || argv[0] != "init" {
		fmt.Fprintln(os.Stderr, "usage: gallery config init [--path gallery.yaml] [--force]")
		return 2
	}
	fs := pflag.NewFlagSet("config init", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var path string
	var force bool
	fs.StringVar(&path, "path", config.FileName, "where to write the config")
	fs.BoolVar(&force, "force", false, "overwrite an existing file")
	if err := fs.Parse(argv[1:]); err != nil {
		return 2
	}

	if err := config.WriteStarter(path, force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	return 0
}
