package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
)

func newFlagSet(name string, g cliopt.GlobalOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(g.Stderr)
	return fs
}

// queryArg joins positional words so unquoted queries work: gallery search flowers NOT red
func queryArg(where string, args []string) string {
	if where != "" {
		return where
	}
	return strings.Join(args, " ")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid artwork id: %s", s)
	}
	return id, nil
}

// fail prints err and maps it to an exit code: 2 for bad input, 1 otherwise.
func fail(w io.Writer, err error) int {
	fmt.Fprintln(w, err)
	if gallery.IsKind(err, gallery.ErrQueryParse) || gallery.IsKind(err, gallery.ErrSchema) || gallery.IsKind(err, gallery.ErrInvalid) {
		return 2
	}
	return 1
}

func background() context.Context {
	return context.Background()
}
