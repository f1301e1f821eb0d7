package planner

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/nonibytes/gallery/gallery/query"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func mustCompile(t *testing.T, q string) *CompileResult {
	t.Helper()
	res, err := ParseSearchQuery(q)
	if err != nil {
		t.Fatalf("ParseSearchQuery(%q): %v", q, err)
	}
	return res
}

// checkPlaceholders verifies $1..$n appear in order with n == len(params).
func checkPlaceholders(t *testing.T, res *CompileResult) {
	t.Helper()
	matches := placeholderRe.FindAllStringSubmatch(res.WhereClause, -1)
	if len(matches) != len(res.Parameters) {
		t.Fatalf("expected %d placeholders, got %d in %q", len(res.Parameters), len(matches), res.WhereClause)
	}
	for i, m := range matches {
		if m[1] != strconv.Itoa(i+1) {
			t.Fatalf("placeholder %d is $%s in %q", i+1, m[1], res.WhereClause)
		}
	}
}

func TestBlankQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		res := mustCompile(t, q)
		if res.WhereClause != "1=1" {
			t.Errorf("%q: expected 1=1, got %q", q, res.WhereClause)
		}
		if len(res.Parameters) != 0 || len(res.TagQueries) != 0 {
			t.Errorf("%q: expected no params or tags, got %v %v", q, res.Parameters, res.TagQueries)
		}
		if res.PartialMatch || res.HasVersionFilter {
			t.Errorf("%q: expected flags off", q)
		}
	}
}

func TestTagCompilesToSubquery(t *testing.T) {
	res := mustCompile(t, "Cubism")
	want := "i2.image_id IN (SELECT DISTINCT it.image_id FROM image_tags it JOIN tag t ON it.tag_id = t.tag_id WHERE LOWER(t.name) = $1)"
	if res.WhereClause != want {
		t.Fatalf("unexpected clause:\n%s", res.WhereClause)
	}
	if len(res.Parameters) != 1 || res.Parameters[0] != "cubism" {
		t.Fatalf("unexpected params: %v", res.Parameters)
	}
}

func TestImplicitAndMatchesExplicit(t *testing.T) {
	explicit := mustCompile(t, "tag1 AND tag2")
	implicit := mustCompile(t, "tag1 tag2")
	if explicit.WhereClause != implicit.WhereClause {
		t.Fatalf("clauses differ:\n%s\n%s", explicit.WhereClause, implicit.WhereClause)
	}
	if len(explicit.Parameters) != 2 || len(implicit.Parameters) != 2 {
		t.Fatalf("expected 2 params each")
	}
	checkPlaceholders(t, implicit)
}

func TestNotWrapping(t *testing.T) {
	single := mustCompile(t, "NOT tag1")
	if !strings.HasPrefix(single.WhereClause, "NOT (i2.image_id IN") || !strings.HasSuffix(single.WhereClause, "))") {
		t.Fatalf("unexpected NOT clause: %s", single.WhereClause)
	}

	double := mustCompile(t, "NOT NOT tag1")
	if !strings.HasPrefix(double.WhereClause, "NOT (NOT (i2.image_id IN") {
		t.Fatalf("unexpected NOT NOT clause: %s", double.WhereClause)
	}
}

func TestGroupTagQuotedParameters(t *testing.T) {
	res := mustCompile(t, `"group A"-"tag B"`)
	if len(res.Parameters) != 2 {
		t.Fatalf("expected 2 params, got %v", res.Parameters)
	}
	if res.Parameters[0] != "group a" || res.Parameters[1] != "tag b" {
		t.Fatalf("expected group then tag, lowercased: %v", res.Parameters)
	}
	if !strings.Contains(res.WhereClause, "LOWER(tg.name) = $1 AND LOWER(t.name) = $2") {
		t.Fatalf("unexpected clause: %s", res.WhereClause)
	}
	if len(res.TagQueries) != 1 || res.TagQueries[0] != "group a-tag b" {
		t.Fatalf("unexpected tag queries: %v", res.TagQueries)
	}
}

func TestYearComparison(t *testing.T) {
	res := mustCompile(t, "year>2000")
	if res.WhereClause != "a.year > $1" {
		t.Fatalf("unexpected clause: %s", res.WhereClause)
	}
	if len(res.Parameters) != 1 || res.Parameters[0] != int64(2000) {
		t.Fatalf("expected int64 2000, got %#v", res.Parameters)
	}
}

func TestYearRejectsNonNumeric(t *testing.T) {
	_, err := ParseSearchQuery("year>abc")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !query.IsSyntaxError(err) {
		t.Fatalf("expected syntax error, got %T", err)
	}
	if err.Error() != "Search syntax error: Invalid year value: abc" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestNameAndArtist(t *testing.T) {
	res := mustCompile(t, `name:"50%_off" artist:<Monet`)
	want := `(LOWER(a.artwork_name) LIKE LOWER($1) ESCAPE '\') AND (LOWER(ar.name) < LOWER($2))`
	if res.WhereClause != want {
		t.Fatalf("unexpected clause:\n%s\nwant:\n%s", res.WhereClause, want)
	}
	if res.Parameters[0] != `%50\%\_off%` {
		t.Fatalf("expected escaped LIKE pattern, got %v", res.Parameters[0])
	}
	if res.Parameters[1] != "Monet" {
		t.Fatalf("expected value bound as typed, got %v", res.Parameters[1])
	}
}

func TestVersionFilter(t *testing.T) {
	res := mustCompile(t, "version:PRIMARY")
	if !res.HasVersionFilter {
		t.Fatalf("expected version filter flag")
	}
	if res.WhereClause != "i2.display_order = 1" || len(res.Parameters) != 0 {
		t.Fatalf("unexpected result: %s %v", res.WhereClause, res.Parameters)
	}

	_, err := ParseSearchQuery("version:latest")
	if err == nil || err.Error() != "Search syntax error: Unknown version value: latest. Use 'primary' for primary images." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnknownField(t *testing.T) {
	_, err := ParseSearchQuery("foo:bar")
	if err == nil || err.Error() != "Search syntax error: Unknown field: foo" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFieldNamesAreCaseInsensitive(t *testing.T) {
	res := mustCompile(t, "YEAR:1900")
	if res.WhereClause != "a.year = $1" {
		t.Fatalf("unexpected clause: %s", res.WhereClause)
	}
}

func TestPrecedenceShape(t *testing.T) {
	res := mustCompile(t, "(a OR b) AND NOT c")
	tag := func(n int) string {
		return "i2.image_id IN (SELECT DISTINCT it.image_id FROM image_tags it JOIN tag t ON it.tag_id = t.tag_id WHERE LOWER(t.name) = $" + strconv.Itoa(n) + ")"
	}
	want := "((" + tag(1) + ") OR (" + tag(2) + ")) AND (NOT (" + tag(3) + "))"
	if res.WhereClause != want {
		t.Fatalf("unexpected clause:\n%s\nwant:\n%s", res.WhereClause, want)
	}
	if res.Parameters[0] != "a" || res.Parameters[1] != "b" || res.Parameters[2] != "c" {
		t.Fatalf("unexpected parameter order: %v", res.Parameters)
	}
}

func TestMatchPartialFlags(t *testing.T) {
	alone := mustCompile(t, "match:partial")
	if !alone.PartialMatch || len(alone.TagQueries) != 0 || alone.WhereClause != "1=1" {
		t.Fatalf("unexpected result: %+v", alone)
	}

	withTags := mustCompile(t, "x y z match:partial")
	if !withTags.PartialMatch {
		t.Fatalf("expected partial flag")
	}
	if strings.Join(withTags.TagQueries, ",") != "x,y,z" {
		t.Fatalf("unexpected tag queries: %v", withTags.TagQueries)
	}
	checkPlaceholders(t, withTags)
}

func TestPlaceholderNumberingIsSequential(t *testing.T) {
	for _, q := range []string{
		`tag1 AND (tag2 OR NOT "group name"-tag) AND year>2000 AND match:partial`,
		`a-b OR name:x OR artist:>=y OR year<=3`,
		`NOT (NOT (x y) OR z)`,
	} {
		checkPlaceholders(t, mustCompile(t, q))
	}
}

func TestSyntaxErrorsPropagate(t *testing.T) {
	_, err := ParseSearchQuery("(tag1 AND tag2")
	if err == nil || !strings.Contains(err.Error(), "Missing closing parenthesis") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Search syntax error: ") {
		t.Fatalf("missing prefix: %v", err)
	}
}

func TestCompileIntoContinuesNumbering(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderDollar)
	b.Arg("already bound")
	res, err := CompileInto("a b", b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.WhereClause, "$2") || !strings.Contains(res.WhereClause, "$3") {
		t.Fatalf("expected numbering to continue: %s", res.WhereClause)
	}
	if len(res.Parameters) != 2 || b.Len() != 3 {
		t.Fatalf("expected 2 own params and 3 total, got %v / %d", res.Parameters, b.Len())
	}
}

func TestCompileIntoQuestionStyle(t *testing.T) {
	res, err := CompileInto("a OR year:2001", sqlbuilder.New(sqlbuilder.PlaceholderQuestion))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.WhereClause, "$") || strings.Count(res.WhereClause, "?") != 2 {
		t.Fatalf("unexpected clause: %s", res.WhereClause)
	}
}

func TestSubsetQueryRoundTrip(t *testing.T) {
	res := mustCompile(t, `x "Old Masters"-"still life" and_more`)
	sub := SubsetQuery(res.Terms[:2])
	again := mustCompile(t, sub)
	if strings.Join(again.TagQueries, ",") != "x,old masters-still life" {
		t.Fatalf("unexpected round trip: %s -> %v", sub, again.TagQueries)
	}
}

func TestBuildSearchSQLBindsPaging(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderDollar)
	res, err := CompileInto("x", b)
	if err != nil {
		t.Fatal(err)
	}
	sql := BuildSearchSQL(res.WhereClause, 20, 40, b)
	if !strings.HasSuffix(sql, "LIMIT $2 OFFSET $3") {
		t.Fatalf("unexpected paging: %s", sql)
	}
	if b.Args()[1] != 20 || b.Args()[2] != 40 {
		t.Fatalf("unexpected args: %v", b.Args())
	}
	if !strings.Contains(BuildCountSQL(res.WhereClause), "COUNT(DISTINCT a.artwork_id)") {
		t.Fatalf("count sql missing distinct count")
	}
}
