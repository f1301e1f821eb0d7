package query

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Parsed {
	t.Helper()
	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", input, err)
	}
	return parsed
}

func TestParseBareTag(t *testing.T) {
	parsed := mustParse(t, "Impressionism")
	tag, ok := parsed.Expr.(TagQuery)
	if !ok {
		t.Fatalf("expected TagQuery, got %T", parsed.Expr)
	}
	if tag.Value != "impressionism" {
		t.Errorf("expected lowercased tag, got %q", tag.Value)
	}
	if len(parsed.TagQueries) != 1 || parsed.TagQueries[0] != "impressionism" {
		t.Errorf("unexpected tag queries: %v", parsed.TagQueries)
	}
}

func TestParseExplicitAnd(t *testing.T) {
	parsed := mustParse(t, "a AND b")
	bin, ok := parsed.Expr.(Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", parsed.Expr)
	}
	if bin.Op != OpAnd {
		t.Errorf("expected AND, got %s", bin.Op)
	}
}

func TestParseImplicitAnd(t *testing.T) {
	explicit := mustParse(t, "a AND b")
	implicit := mustParse(t, "a b")
	if explicit.Expr != implicit.Expr {
		t.Errorf("expected implicit AND to equal explicit: %#v vs %#v", explicit.Expr, implicit.Expr)
	}
}

func TestParseLeftAssociative(t *testing.T) {
	parsed := mustParse(t, "a OR b AND c")
	top, ok := parsed.Expr.(Binary)
	if !ok || top.Op != OpAnd {
		t.Fatalf("expected top-level AND, got %#v", parsed.Expr)
	}
	left, ok := top.Left.(Binary)
	if !ok || left.Op != OpOr {
		t.Fatalf("expected left OR, got %#v", top.Left)
	}
}

func TestParseNot(t *testing.T) {
	parsed := mustParse(t, "NOT a")
	un, ok := parsed.Expr.(Unary)
	if !ok {
		t.Fatalf("expected Unary, got %T", parsed.Expr)
	}
	if _, ok := un.Operand.(TagQuery); !ok {
		t.Errorf("expected TagQuery operand, got %T", un.Operand)
	}
}

func TestParseDoubleNot(t *testing.T) {
	parsed := mustParse(t, "NOT NOT a")
	outer, ok := parsed.Expr.(Unary)
	if !ok {
		t.Fatalf("expected Unary, got %T", parsed.Expr)
	}
	if _, ok := outer.Operand.(Unary); !ok {
		t.Fatalf("expected nested Unary, got %T", outer.Operand)
	}
}

func TestParseNotBindsToSingleTerm(t *testing.T) {
	parsed := mustParse(t, "NOT a b")
	bin, ok := parsed.Expr.(Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", parsed.Expr)
	}
	if _, ok := bin.Left.(Unary); !ok {
		t.Errorf("expected NOT on the left term only, got %T", bin.Left)
	}
}

func TestParseParentheses(t *testing.T) {
	parsed := mustParse(t, "(a OR b) AND NOT c")
	bin, ok := parsed.Expr.(Binary)
	if !ok || bin.Op != OpAnd {
		t.Fatalf("expected And, got %#v", parsed.Expr)
	}
	if left, ok := bin.Left.(Binary); !ok || left.Op != OpOr {
		t.Fatalf("expected left to be Or, got %#v", bin.Left)
	}
	if _, ok := bin.Right.(Unary); !ok {
		t.Fatalf("expected right to be Not, got %T", bin.Right)
	}
}

func TestParseGroupTagBare(t *testing.T) {
	parsed := mustParse(t, "Style-Baroque")
	gt, ok := parsed.Expr.(GroupTagQuery)
	if !ok {
		t.Fatalf("expected GroupTagQuery, got %T", parsed.Expr)
	}
	if gt.Group != "style" || gt.Tag != "baroque" {
		t.Errorf("expected style-baroque, got %s-%s", gt.Group, gt.Tag)
	}
	if parsed.TagQueries[0] != "style-baroque" {
		t.Errorf("unexpected tag queries: %v", parsed.TagQueries)
	}
}

func TestParseGroupTagQuotedKeepsCase(t *testing.T) {
	parsed := mustParse(t, `"group A"-"tag B"`)
	gt, ok := parsed.Expr.(GroupTagQuery)
	if !ok {
		t.Fatalf("expected GroupTagQuery, got %T", parsed.Expr)
	}
	if gt.Group != "group A" || gt.Tag != "tag B" {
		t.Errorf("expected case preserved, got %q-%q", gt.Group, gt.Tag)
	}
	if parsed.TagQueries[0] != "group a-tag b" {
		t.Errorf("expected lowercased tag query, got %v", parsed.TagQueries)
	}
	term := parsed.Terms[0]
	if !term.Grouped || term.Source() != `"group A"-"tag B"` {
		t.Errorf("unexpected term: %#v source=%s", term, term.Source())
	}
}

func TestParseQuotedTagWithHyphenStaysATag(t *testing.T) {
	parsed := mustParse(t, `"pre-raphaelite"`)
	tag, ok := parsed.Expr.(TagQuery)
	if !ok {
		t.Fatalf("expected TagQuery, got %T", parsed.Expr)
	}
	if tag.Value != "pre-raphaelite" {
		t.Errorf("unexpected tag %q", tag.Value)
	}
	if parsed.Terms[0].Grouped {
		t.Errorf("quoted hyphenated tag must not become a group-tag pair")
	}
}

func TestParseFieldQuery(t *testing.T) {
	parsed := mustParse(t, "artist:monet")
	fq, ok := parsed.Expr.(FieldQuery)
	if !ok {
		t.Fatalf("expected FieldQuery, got %T", parsed.Expr)
	}
	if fq.Field != "artist" || fq.Op != CmpEq || fq.Value != "monet" {
		t.Errorf("unexpected field query: %#v", fq)
	}
	if len(parsed.TagQueries) != 0 {
		t.Errorf("field queries must not be recorded as tags: %v", parsed.TagQueries)
	}
}

func TestParseFieldQueryOperators(t *testing.T) {
	cases := map[string]CmpOp{
		"year:>1900":  CmpGt,
		"year:<1900":  CmpLt,
		"year:>=1900": CmpGte,
		"year:<=1900": CmpLte,
		"year:=1900":  CmpEq,
		"year:1900":   CmpEq,
		"year>1900":   CmpGt,
		"year<=1900":  CmpLte,
	}
	for input, want := range cases {
		parsed := mustParse(t, input)
		fq, ok := parsed.Expr.(FieldQuery)
		if !ok {
			t.Fatalf("%s: expected FieldQuery, got %T", input, parsed.Expr)
		}
		if fq.Op != want || fq.Value != "1900" {
			t.Errorf("%s: expected op %s value 1900, got %s %s", input, want, fq.Op, fq.Value)
		}
	}
}

func TestParseFieldQueryQuotedValue(t *testing.T) {
	parsed := mustParse(t, `name:"Water Lilies"`)
	fq := parsed.Expr.(FieldQuery)
	if fq.Value != "Water Lilies" {
		t.Errorf("expected quoted value verbatim, got %q", fq.Value)
	}
}

func TestParseMatchPartial(t *testing.T) {
	parsed := mustParse(t, "x y MATCH:Partial")
	if !parsed.PartialMatch {
		t.Fatalf("expected partial match flag")
	}
	bin := parsed.Expr.(Binary)
	if _, ok := bin.Right.(MatchPartial); !ok {
		t.Errorf("expected MatchPartial node, got %T", bin.Right)
	}
	if strings.Join(parsed.TagQueries, ",") != "x,y" {
		t.Errorf("unexpected tag queries: %v", parsed.TagQueries)
	}
}

func TestParseMatchPartialAlone(t *testing.T) {
	parsed := mustParse(t, "match:partial")
	if !parsed.PartialMatch {
		t.Fatalf("expected partial match flag")
	}
	if len(parsed.TagQueries) != 0 {
		t.Errorf("expected no tag queries, got %v", parsed.TagQueries)
	}
}

func TestParseTagQueriesInSourceOrder(t *testing.T) {
	parsed := mustParse(t, `b AND (a OR NOT "G"-t) c`)
	want := []string{"b", "a", "g-t", "c"}
	if strings.Join(parsed.TagQueries, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, parsed.TagQueries)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"(a AND b":   "Missing closing parenthesis",
		"a AND":      "Unexpected end of query",
		"NOT":        "Unexpected end of query",
		"a )":        "Unexpected token: RPAREN",
		"()":         "Unexpected token: RPAREN",
		"-a":         "Unexpected token: HYPHEN",
		"year:":      "Expected value after operator for field year",
		"year:>(":    "Expected string or identifier after operator for field year",
		"a OR OR b":  "Unexpected token: OR",
		"year:> AND": "Expected string or identifier after operator for field year",
	}
	for input, want := range cases {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q): expected error", input)
			continue
		}
		if !IsSyntaxError(err) {
			t.Errorf("Parse(%q): expected *SyntaxError, got %T", input, err)
		}
		if !strings.HasPrefix(err.Error(), "Search syntax error: ") {
			t.Errorf("Parse(%q): missing prefix: %v", input, err)
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Parse(%q): expected %q in %q", input, want, err.Error())
		}
	}
}

func TestTagTermSourceRoundTrip(t *testing.T) {
	for _, input := range []string{`"and"`, `"Old Masters"-"still life"`, `cat`, `"a-b"`} {
		first := mustParse(t, input)
		again := mustParse(t, first.Terms[0].Source())
		if first.Terms[0] != again.Terms[0] {
			t.Errorf("%s: round trip changed term: %#v -> %#v", input, first.Terms[0], again.Terms[0])
		}
	}
}
