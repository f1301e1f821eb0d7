package postgres

import "github.com/nonibytes/gallery/gallery/storage"

var SQLTemplates = storage.SQL{
	GetMeta: "SELECT value FROM meta WHERE key = $1",
	SetMeta: "INSERT INTO meta(key,value) VALUES($1,$2) ON CONFLICT(key) DO UPDATE SET value=EXCLUDED.value",

	InsertCategory: "INSERT INTO category(name) VALUES($1) ON CONFLICT(name) DO NOTHING",
	GetCategoryID:  "SELECT category_id FROM category WHERE name = $1",
	InsertTagGroup: "INSERT INTO tag_group(category_id, name) VALUES($1, $2) ON CONFLICT(category_id, name) DO NOTHING",
	GetTagGroupID:  "SELECT group_id FROM tag_group WHERE category_id = $1 AND name = $2",
	InsertTag:      "INSERT INTO tag(group_id, name) VALUES($1, $2) ON CONFLICT(group_id, name) DO NOTHING",
	GetTagID:       "SELECT tag_id FROM tag WHERE group_id = $1 AND name = $2",
	InsertArtist:   "INSERT INTO artist(name) VALUES($1) ON CONFLICT(name) DO NOTHING",
	GetArtistID:    "SELECT artist_id FROM artist WHERE name = $1",

	InsertArtwork:  "INSERT INTO artwork(artwork_name, artist_id, year, description) VALUES($1, $2, $3, $4) RETURNING artwork_id",
	InsertImage:    "INSERT INTO image(artwork_id, display_order, file_name) VALUES($1, $2, $3) RETURNING image_id",
	InsertImageTag: "INSERT INTO image_tags(image_id, tag_id) VALUES($1, $2) ON CONFLICT(image_id, tag_id) DO NOTHING",

	GetArtwork: `SELECT a.artwork_id, a.artwork_name, COALESCE(ar.name, ''), a.year, COALESCE(a.description, '')
		FROM artwork a LEFT JOIN artist ar ON a.artist_id = ar.artist_id
		WHERE a.artwork_id = $1`,
	ListImagesByArtwork: "SELECT image_id, display_order, file_name FROM image WHERE artwork_id = $1 ORDER BY display_order ASC, image_id ASC",
	ListTagsByImage: `SELECT c.name, tg.name, t.name
		FROM image_tags it
		JOIN tag t ON it.tag_id = t.tag_id
		JOIN tag_group tg ON t.group_id = tg.group_id
		JOIN category c ON tg.category_id = c.category_id
		WHERE it.image_id = $1
		ORDER BY c.name, tg.name, t.name`,
	DeleteTagsByArtwork:   "DELETE FROM image_tags WHERE image_id IN (SELECT image_id FROM image WHERE artwork_id = $1)",
	DeleteImagesByArtwork: "DELETE FROM image WHERE artwork_id = $1",
	DeleteArtwork:         "DELETE FROM artwork WHERE artwork_id = $1",

	ListUsedTags: `SELECT c.category_id, c.name, tg.group_id, tg.name, COALESCE(tg.description, ''), t.tag_id, t.name, COALESCE(t.description, '')
		FROM tag t
		JOIN tag_group tg ON t.group_id = tg.group_id
		JOIN category c ON tg.category_id = c.category_id
		WHERE EXISTS (SELECT 1 FROM image_tags it WHERE it.tag_id = t.tag_id)
		ORDER BY c.name, tg.name, t.name`,
	ListAllTags: `SELECT c.category_id, c.name, tg.group_id, tg.name, COALESCE(tg.description, ''), t.tag_id, t.name, COALESCE(t.description, '')
		FROM tag t
		JOIN tag_group tg ON t.group_id = tg.group_id
		JOIN category c ON tg.category_id = c.category_id
		ORDER BY c.name, tg.name, t.name`,

	ArtworkExists:         "SELECT 1 FROM artwork WHERE artwork_id = $1",
	ListImageIDsByArtwork: "SELECT image_id FROM image WHERE artwork_id = $1 ORDER BY display_order ASC, image_id ASC",
	GetImageArtwork:       "SELECT artwork_id FROM image WHERE image_id = $1",
	UpdateArtwork:         "UPDATE artwork SET artwork_name = $1, artist_id = $2, year = $3, description = $4 WHERE artwork_id = $5",
	DeleteTagsByImage:     "DELETE FROM image_tags WHERE image_id = $1",
	DeleteImage:           "DELETE FROM image WHERE image_id = $1",
	DeleteImageTag:        "DELETE FROM image_tags WHERE image_id = $1 AND tag_id = $2",
	DeleteTagFromArtwork:  "DELETE FROM image_tags WHERE tag_id = $1 AND image_id IN (SELECT image_id FROM image WHERE artwork_id = $2)",
	FindTagID: `SELECT t.tag_id
		FROM tag t
		JOIN tag_group tg ON t.group_id = tg.group_id
		JOIN category c ON tg.category_id = c.category_id
		WHERE c.name = $1 AND tg.name = $2 AND t.name = $3`,
	FindTagGroupID: `SELECT tg.group_id
		FROM tag_group tg
		JOIN category c ON tg.category_id = c.category_id
		WHERE c.name = $1 AND tg.name = $2`,
	SetTagDescription:      "UPDATE tag SET description = $1 WHERE tag_id = $2",
	SetTagGroupDescription: "UPDATE tag_group SET description = $1 WHERE group_id = $2",

	CountArtworks: "SELECT COUNT(*) FROM artwork",
	CountImages:   "SELECT COUNT(*) FROM image",
	CountTags:     "SELECT COUNT(*) FROM tag",
}
