package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `gallery: art catalog with tag search and partial-match ranking

USAGE
  gallery [global flags] <command> [args]

GLOBAL FLAGS
  --config <file>          config file (default ./gallery.yaml if present)
  --backend sqlite|postgres
  --sqlite-path <file|dir>
  --pg-dsn <dsn>
  --pg-schema <name>
  --log-level debug|info|warn|error
  --log-format text|json
  --format pretty|json

  Every setting can also come from GALLERY_* environment variables,
  e.g. GALLERY_BACKEND or GALLERY_SEARCH_MAX_SUBSET_QUERIES.

COMMANDS
  init                         create the catalog tables
  put [-f doc.json | --json | --import file.jsonl]
  get <artwork-id> [--image <image-id>]
  delete <artwork-id>... | --image <image-id>
  update <artwork-id> [--title t] [--artist a] [--year y | --no-year] [--description d]
  tag <artwork-id>... --tag group/name [--image <image-id>]
  untag <artwork-id> --tag group/name [--image <image-id>]
  search <query> [--limit N] [--offset N] [--explain]
  explain <query> [--limit N] [--offset N]
  tags [--used]
  tags create <group/name> [--description d]
  tags create-group <category/group> [--description d]
  tags describe <group/name> <text>
  tags describe-group <category/group> <text>
  discover [<query>] [--top N]
  export <query> -o <file> [--to jsonl|parquet|avro]
  stats
  config init [--path gallery.yaml] [--force]

QUERY SYNTAX
  flowers                      artworks with an image tagged "flowers"
  style-baroque                tag "baroque" in group "style"
  a b, a AND b, a OR b, NOT a, (a OR b) c
  name:lilies  artist:monet  year:>1900  year<=1950  version:primary
  match:partial                rank artworks by how many tags they match`)
}
