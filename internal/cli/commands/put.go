package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/internal/cliopt"
	"github.com/nonibytes/gallery/internal/cliutil"
)

func RunPut(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("put", g)
	var file, importPath string
	var jsonStdin bool
	fs.StringVarP(&file, "file", "f", "", "artwork JSON document (- for stdin)")
	fs.BoolVar(&jsonStdin, "json", false, "read JSON lines from stdin")
	fs.StringVar(&importPath, "import", "", "import JSONL file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	cat, err := cliutil.OpenCatalog(ctx, g, false)
	if err != nil {
		return fail(g.Stderr, err)
	}
	defer cat.Close()

	// single doc mode
	if file != "" {
		var data []byte
		if file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return fail(g.Stderr, err)
		}
		id, err := cat.PutJSON(ctx, data)
		if err != nil {
			return fail(g.Stderr, err)
		}
		if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
			cliutil.PrintJSON(g.Stdout, map[string]int64{"artwork_id": id})
		} else {
			fmt.Fprintf(g.Stdout, "put artwork %d\n", id)
		}
		return 0
	}

	// import/jsonl mode
	var r io.Reader
	if importPath != "" {
		f, err := os.Open(importPath)
		if err != nil {
			return fail(g.Stderr, err)
		}
		defer f.Close()
		r = f
	} else if jsonStdin {
		r = os.Stdin
	} else {
		fmt.Fprintln(g.Stderr, "provide --file or --json or --import")
		return 2
	}

	batch, err := readBatch(r)
	if err != nil {
		return fail(g.Stderr, err)
	}
	count, err := cat.Batch(ctx, batch)
	if err != nil {
		return fail(g.Stderr, err)
	}
	fmt.Fprintf(g.Stdout, "imported %d\n", count)
	return 0
}

func readBatch(r io.Reader) (gallery.Batch, error) {
	batch := gallery.NewBatch()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		doc := bytes.TrimSpace(scanner.Bytes())
		if len(doc) == 0 {
			continue
		}
		if err := batch.PutJSON(doc); err != nil {
			return batch, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return batch, scanner.Err()
}
