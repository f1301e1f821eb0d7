package planner

import (
	"fmt"
	"strings"

	"github.com/nonibytes/gallery/gallery/query"
)

// Info is what lowering learned about the expression besides its condition
type Info struct {
	HasVersionFilter bool
	Steps            []string
}

// compiler walks the AST once per call; nothing is shared between calls.
type compiler struct {
	hasVersionFilter bool
	steps            []string
}

// Lower turns a parsed expression into a typed condition tree.
// A nil expression lowers to True.
func Lower(expr query.Expr) (Cond, Info, error) {
	c := &compiler{}
	if expr == nil {
		return True{}, Info{}, nil
	}

	cond, err := c.lower(expr)
	if err != nil {
		return nil, Info{}, err
	}
	return cond, Info{HasVersionFilter: c.hasVersionFilter, Steps: c.steps}, nil
}

func (c *compiler) lower(expr query.Expr) (Cond, error) {
	switch e := expr.(type) {
	case query.Binary:
		left, err := c.lower(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.lower(e.Right)
		if err != nil {
			return nil, err
		}
		c.steps = append(c.steps, e.Op.String())
		if e.Op == query.OpOr {
			return Or{Left: left, Right: right}, nil
		}
		return And{Left: left, Right: right}, nil

	case query.Unary:
		inner, err := c.lower(e.Operand)
		if err != nil {
			return nil, err
		}
		c.steps = append(c.steps, "NOT")
		return Not{Inner: inner}, nil

	case query.TagQuery:
		c.steps = append(c.steps, fmt.Sprintf("TAG %s", e.Value))
		return HasTag{Tag: e.Value}, nil

	case query.GroupTagQuery:
		c.steps = append(c.steps, fmt.Sprintf("GROUP-TAG %s-%s", strings.ToLower(e.Group), strings.ToLower(e.Tag)))
		return HasGroupTag{Group: e.Group, Tag: e.Tag}, nil

	case query.FieldQuery:
		return c.lowerField(e)

	case query.MatchPartial:
		c.steps = append(c.steps, "MATCH partial")
		return True{}, nil

	default:
		return nil, fmt.Errorf("unknown expression type: %T", expr)
	}
}

func (c *compiler) lowerField(f query.FieldQuery) (Cond, error) {
	switch strings.ToLower(f.Field) {
	case "name":
		return c.lowerText("NAME", "a.artwork_name", f), nil

	case "artist":
		return c.lowerText("ARTIST", "ar.name", f), nil

	case "year":
		year, ok := parseYear(f.Value)
		if !ok {
			return nil, query.NewSyntaxError(fmt.Sprintf("Invalid year value: %s", f.Value))
		}
		c.steps = append(c.steps, fmt.Sprintf("YEAR %s %d", f.Op, year))
		return IntCompare{Column: "a.year", Op: f.Op, Value: year}, nil

	case "version":
		if !strings.EqualFold(f.Value, "primary") {
			return nil, query.NewSyntaxError(fmt.Sprintf("Unknown version value: %s. Use 'primary' for primary images.", f.Value))
		}
		c.hasVersionFilter = true
		c.steps = append(c.steps, "VERSION primary")
		return PrimaryImage{}, nil

	default:
		return nil, query.NewSyntaxError(fmt.Sprintf("Unknown field: %s", f.Field))
	}
}

func (c *compiler) lowerText(label, column string, f query.FieldQuery) Cond {
	if f.Op == query.CmpEq {
		c.steps = append(c.steps, fmt.Sprintf("%s CONTAINS %q", label, f.Value))
		return TextContains{Column: column, Value: f.Value}
	}
	c.steps = append(c.steps, fmt.Sprintf("%s %s %q", label, f.Op, f.Value))
	return TextCompare{Column: column, Op: f.Op, Value: f.Value}
}
