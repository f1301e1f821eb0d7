package planner

import (
	"strings"

	"github.com/nonibytes/gallery/gallery/query"
	"github.com/nonibytes/gallery/gallery/storage"
)

// Cond is a typed boolean condition over the artwork/image join.
// Values stay Go values until Render hands them to a Builder.
type Cond interface {
	render(b storage.Builder) string
}

// Render writes cond as a SQL boolean expression, allocating placeholders
// from b in left-to-right order.
func Render(cond Cond, b storage.Builder) string {
	if cond == nil {
		return "1=1"
	}
	return cond.render(b)
}

// And requires both sides
type And struct{ Left, Right Cond }

// Or requires either side
type Or struct{ Left, Right Cond }

// Not negates Inner
type Not struct{ Inner Cond }

// True is the neutral condition
type True struct{}

func (c And) render(b storage.Builder) string {
	left := c.Left.render(b)
	right := c.Right.render(b)
	return "(" + left + ") AND (" + right + ")"
}

func (c Or) render(b storage.Builder) string {
	left := c.Left.render(b)
	right := c.Right.render(b)
	return "(" + left + ") OR (" + right + ")"
}

func (c Not) render(b storage.Builder) string {
	return "NOT (" + c.Inner.render(b) + ")"
}

func (True) render(storage.Builder) string { return "1=1" }

const tagSubquery = "i2.image_id IN (SELECT DISTINCT it.image_id FROM image_tags it JOIN tag t ON it.tag_id = t.tag_id"

// HasTag matches images carrying a tag named Tag in any group
type HasTag struct {
	Tag string
}

func (c HasTag) render(b storage.Builder) string {
	ph := b.Arg(strings.ToLower(c.Tag))
	return tagSubquery + " WHERE LOWER(t.name) = " + ph + ")"
}

// HasGroupTag matches images carrying tag Tag of tag group Group
type HasGroupTag struct {
	Group string
	Tag   string
}

func (c HasGroupTag) render(b storage.Builder) string {
	phGroup := b.Arg(strings.ToLower(c.Group))
	phTag := b.Arg(strings.ToLower(c.Tag))
	return tagSubquery + " JOIN tag_group tg ON t.group_id = tg.group_id WHERE LOWER(tg.name) = " +
		phGroup + " AND LOWER(t.name) = " + phTag + ")"
}

// TextContains is a case-insensitive substring match on a text column.
type TextContains struct {
	Column string
	Value  string
}

func (c TextContains) render(b storage.Builder) string {
	ph := b.Arg("%" + escapeLike(c.Value) + "%")
	return "LOWER(" + c.Column + ") LIKE LOWER(" + ph + ") ESCAPE '\\'"
}

// TextCompare orders a text column against Value, case-insensitively.
type TextCompare struct {
	Column string
	Op     query.CmpOp
	Value  string
}

func (c TextCompare) render(b storage.Builder) string {
	ph := b.Arg(c.Value)
	return "LOWER(" + c.Column + ") " + c.Op.String() + " LOWER(" + ph + ")"
}

// IntCompare compares an integer column against Value
type IntCompare struct {
	Column string
	Op     query.CmpOp
	Value  int64
}

func (c IntCompare) render(b storage.Builder) string {
	ph := b.Arg(c.Value)
	return c.Column + " " + c.Op.String() + " " + ph
}

// PrimaryImage selects the first-ordered image of each artwork
type PrimaryImage struct{}

func (PrimaryImage) render(storage.Builder) string { return "i2.display_order = 1" }
