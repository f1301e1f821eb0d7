package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nonibytes/gallery/internal/cli/commands"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/config"
	"github.com/nonibytes/gallery/internal/logging"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := pflag.NewFlagSet("gallery", pflag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	globalFS.SetInterspersed(false)
	config.BindFlags(globalFS)

	if err := globalFS.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			PrintRootHelp(os.Stdout)
			return 0
		}
		// pflag already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "config":
		// runs before loading so a broken gallery.yaml can be regenerated
		return commands.RunConfig(rest)
	}

	cfg, err := config.Load(globalFS)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger, err := logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	g := cliopt.FromConfig(cfg, logger)

	switch verb {
	case "init":
		return commands.RunInit(g, rest)
	case "put":
		return commands.RunPut(g, rest)
	case "get":
		return commands.RunGet(g, rest)
	case "delete":
		return commands.RunDelete(g, rest)
	case "search":
		return commands.RunSearch(g, rest)
	case "explain":
		return commands.RunExplain(g, rest)
	case "tags":
		return commands.RunTags(g, rest)
	case "tag":
		return commands.RunTag(g, rest)
	case "untag":
		return commands.RunUntag(g, rest)
	case "update":
		return commands.RunUpdate(g, rest)
	case "discover":
		return commands.RunDiscover(g, rest)
	case "export":
		return commands.RunExport(g, rest)
	case "stats":
		return commands.RunStats(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
