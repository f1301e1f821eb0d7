// Package export writes search results as JSON lines, Parquet or Avro.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"

	"github.com/nonibytes/gallery/gallery/ops"
)

type Format string

const (
	FormatJSONL   Format = "jsonl"
	FormatParquet Format = "parquet"
	FormatAvro    Format = "avro"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jsonl", "ndjson", "json":
		return FormatJSONL, nil
	case "parquet", "pq":
		return FormatParquet, nil
	case "avro":
		return FormatAvro, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want jsonl, parquet or avro)", s)
	}
}

// Record is the flat row layout shared by every format
type Record struct {
	ArtworkID     int64  `json:"artwork_id" parquet:"artwork_id"`
	Name          string `json:"artwork_name" parquet:"artwork_name"`
	Artist        string `json:"artist" parquet:"artist"`
	Year          *int64 `json:"year" parquet:"year"`
	Description   string `json:"description" parquet:"description"`
	MatchedImages int64  `json:"matched_images" parquet:"matched_images"`
	MatchScore    int32  `json:"match_score" parquet:"match_score"`
}

func toRecords(rows []ops.ArtworkRow) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record{
			ArtworkID:     r.ID,
			Name:          r.Name,
			Artist:        r.Artist,
			Year:          r.Year,
			Description:   r.Description,
			MatchedImages: r.MatchedImages,
			MatchScore:    int32(r.MatchScore),
		}
	}
	return out
}

// Write encodes rows to w in the given format.
func Write(w io.Writer, format Format, rows []ops.ArtworkRow) error {
	records := toRecords(rows)
	switch format {
	case FormatJSONL:
		return writeJSONL(w, records)
	case FormatParquet:
		return writeParquet(w, records)
	case FormatAvro:
		return writeAvro(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode jsonl: %w", err)
		}
	}
	return nil
}

func writeParquet(w io.Writer, records []Record) error {
	pw := parquet.NewGenericWriter[Record](w)
	if _, err := pw.Write(records); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet: %w", err)
	}
	return nil
}

// AvroSchema is the record schema of Avro exports
const AvroSchema = `{
  "type": "record",
  "name": "Artwork",
  "namespace": "gallery",
  "fields": [
    {"name": "artwork_id", "type": "long"},
    {"name": "artwork_name", "type": "string"},
    {"name": "artist", "type": "string"},
    {"name": "year", "type": ["null", "long"], "default": null},
    {"name": "description", "type": "string"},
    {"name": "matched_images", "type": "long"},
    {"name": "match_score", "type": "int"}
  ]
}`

func writeAvro(w io.Writer, records []Record) error {
	ocfw, err := goavro.NewOCFWriter(goavro.OCFConfig{W: w, Schema: AvroSchema})
	if err != nil {
		return fmt.Errorf("create avro writer: %w", err)
	}

	data := make([]any, 0, len(records))
	for _, r := range records {
		var year any
		if r.Year != nil {
			year = goavro.Union("long", *r.Year)
		}
		data = append(data, map[string]any{
			"artwork_id":     r.ArtworkID,
			"artwork_name":   r.Name,
			"artist":         r.Artist,
			"year":           year,
			"description":    r.Description,
			"matched_images": r.MatchedImages,
			"match_score":    r.MatchScore,
		})
	}
	if len(data) == 0 {
		return nil
	}
	if err := ocfw.Append(data); err != nil {
		return fmt.Errorf("append avro: %w", err)
	}
	return nil
}
