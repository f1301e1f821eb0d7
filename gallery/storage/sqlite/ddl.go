package sqlite

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS category (
  category_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name        TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS tag_group (
  group_id    INTEGER PRIMARY KEY AUTOINCREMENT,
  category_id INTEGER NOT NULL REFERENCES category(category_id) ON DELETE CASCADE,
  name        TEXT NOT NULL,
  description TEXT,
  UNIQUE (category_id, name)
);

CREATE TABLE IF NOT EXISTS tag (
  tag_id   INTEGER PRIMARY KEY AUTOINCREMENT,
  group_id INTEGER NOT NULL REFERENCES tag_group(group_id) ON DELETE CASCADE,
  name     TEXT NOT NULL,
  description TEXT,
  UNIQUE (group_id, name)
);
CREATE INDEX IF NOT EXISTS idx_tag_name ON tag(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS artist (
  artist_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name      TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS artwork (
  artwork_id   INTEGER PRIMARY KEY AUTOINCREMENT,
  artwork_name TEXT NOT NULL,
  artist_id    INTEGER REFERENCES artist(artist_id),
  year         INTEGER,
  description  TEXT
);

CREATE TABLE IF NOT EXISTS image (
  image_id      INTEGER PRIMARY KEY AUTOINCREMENT,
  artwork_id    INTEGER NOT NULL REFERENCES artwork(artwork_id) ON DELETE CASCADE,
  display_order INTEGER NOT NULL,
  file_name     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_image_artwork ON image(artwork_id, display_order);

CREATE TABLE IF NOT EXISTS image_tags (
  image_id INTEGER NOT NULL REFERENCES image(image_id) ON DELETE CASCADE,
  tag_id   INTEGER NOT NULL REFERENCES tag(tag_id) ON DELETE CASCADE,
  PRIMARY KEY (image_id, tag_id)
);
CREATE INDEX IF NOT EXISTS idx_image_tags_tag ON image_tags(tag_id, image_id);
`
