package planner

import (
	"fmt"

	"github.com/nonibytes/gallery/gallery/storage"
)

const artworkJoins = `FROM artwork a
LEFT JOIN artist ar ON a.artist_id = ar.artist_id
JOIN image i2 ON i2.artwork_id = a.artwork_id`

const artworkColumns = `a.artwork_id, a.artwork_name, COALESCE(ar.name, '') AS artist_name, a.year, COALESCE(a.description, '') AS description, COUNT(DISTINCT i2.image_id) AS matched_images`

const artworkGroupBy = `GROUP BY a.artwork_id, a.artwork_name, ar.name, a.year, a.description`

// BuildMatchSQL selects every artwork with at least one image satisfying where.
// Rows come back in artwork id order with no limit.
func BuildMatchSQL(where string) string {
	return fmt.Sprintf(`SELECT %s
%s
WHERE %s
%s
ORDER BY a.artwork_id ASC`, artworkColumns, artworkJoins, where, artworkGroupBy)
}

// BuildSearchSQL is BuildMatchSQL with LIMIT/OFFSET bound through builder.
func BuildSearchSQL(where string, limit, offset int, builder storage.Builder) string {
	phLimit := builder.Arg(limit)
	phOffset := builder.Arg(offset)
	return fmt.Sprintf("%s\nLIMIT %s OFFSET %s", BuildMatchSQL(where), phLimit, phOffset)
}

// BuildCountSQL counts distinct artworks matching where.
func BuildCountSQL(where string) string {
	return fmt.Sprintf(`SELECT COUNT(DISTINCT a.artwork_id)
%s
WHERE %s`, artworkJoins, where)
}

// BuildDiscoverSQL counts, per tag, the matching artworks carrying it.
// The inner select applies where; the outer query looks at every image of
// those artworks.
func BuildDiscoverSQL(where string, top int, builder storage.Builder) string {
	phTop := builder.Arg(top)
	return fmt.Sprintf(`SELECT COALESCE(c.name, '') AS category, tg.name AS group_name, t.name AS tag_name, COUNT(DISTINCT im.artwork_id) AS artworks
FROM image_tags it
JOIN tag t ON it.tag_id = t.tag_id
JOIN tag_group tg ON t.group_id = tg.group_id
LEFT JOIN category c ON tg.category_id = c.category_id
JOIN image im ON im.image_id = it.image_id
WHERE im.artwork_id IN (
  SELECT a.artwork_id
  %s
  WHERE %s
)
GROUP BY c.name, tg.name, t.name
ORDER BY artworks DESC, category ASC, group_name ASC, tag_name ASC
LIMIT %s`, artworkJoins, where, phTop)
}
