package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/gallery/gallery/storage"
)

// Category is the top of the tag hierarchy
type Category struct {
	ID     int64      `json:"category_id"`
	Name   string     `json:"name"`
	Groups []TagGroup `json:"groups"`
}

// TagGroup is a named collection of tags within a category
type TagGroup struct {
	ID          int64  `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
}

// Tag is a leaf label
type Tag struct {
	ID          int64  `json:"tag_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UsedTags lists the hierarchy restricted to tags attached to at least one image.
func UsedTags(ctx context.Context, db *sql.DB, sqlt storage.SQL) ([]Category, error) {
	return listHierarchy(ctx, db, sqlt.ListUsedTags)
}

// AllTags lists every tag with its group and category.
func AllTags(ctx context.Context, db *sql.DB, sqlt storage.SQL) ([]Category, error) {
	return listHierarchy(ctx, db, sqlt.ListAllTags)
}

// listHierarchy folds flat rows ordered by category, group and tag into a tree.
func listHierarchy(ctx context.Context, db *sql.DB, querySQL string) ([]Category, error) {
	rows, err := db.QueryContext(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var (
			catID, groupID, tagID       int64
			catName, groupName, tagName string
			groupDesc, tagDesc          string
		)
		if err := rows.Scan(&catID, &catName, &groupID, &groupName, &groupDesc, &tagID, &tagName, &tagDesc); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}

		if len(out) == 0 || out[len(out)-1].ID != catID {
			out = append(out, Category{ID: catID, Name: catName})
		}
		cat := &out[len(out)-1]
		if len(cat.Groups) == 0 || cat.Groups[len(cat.Groups)-1].ID != groupID {
			cat.Groups = append(cat.Groups, TagGroup{ID: groupID, Name: groupName, Description: groupDesc})
		}
		group := &cat.Groups[len(cat.Groups)-1]
		group.Tags = append(group.Tags, Tag{ID: tagID, Name: tagName, Description: tagDesc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return out, nil
}
