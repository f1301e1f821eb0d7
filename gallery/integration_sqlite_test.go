package gallery_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/gallery/ops"
	"github.com/nonibytes/gallery/gallery/storage/sqlite"
)

func newCatalog(t *testing.T) *gallery.Catalog {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	c, err := gallery.Create(context.Background(), sqlite.New(dbPath), gallery.DefaultCatalogOptions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func tag(group, name string) ops.TagRef {
	return ops.TagRef{Group: group, Name: name}
}

func put(t *testing.T, c *gallery.Catalog, doc ops.ArtworkDoc) int64 {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	id, err := c.PutJSON(context.Background(), b)
	if err != nil {
		t.Fatalf("PutJSON(%s): %v", doc.Title, err)
	}
	return id
}

func year(y int64) *int64 { return &y }

// seed stores four artworks; ids are 1..4 in this order.
func seed(t *testing.T, c *gallery.Catalog) {
	t.Helper()
	put(t, c, ops.ArtworkDoc{
		Title: "Water Lilies", Artist: "Claude Monet", Year: year(1906),
		Images: []ops.ImageDoc{{File: "lilies.jpg", Tags: []ops.TagRef{
			tag("Style", "Impressionism"), tag("Subject", "Water"), tag("Subject", "Flowers"),
		}}},
	})
	put(t, c, ops.ArtworkDoc{
		Title: "Impression, Sunrise", Artist: "Claude Monet", Year: year(1872),
		Images: []ops.ImageDoc{{File: "sunrise.jpg", Tags: []ops.TagRef{
			tag("Style", "Impressionism"), tag("Subject", "Water"),
		}}},
	})
	put(t, c, ops.ArtworkDoc{
		Title: "The Night Watch", Artist: "Rembrandt", Year: year(1642),
		Images: []ops.ImageDoc{{File: "watch.jpg", Tags: []ops.TagRef{
			tag("Style", "Baroque"), tag("Subject", "Portrait"),
		}}},
	})
	put(t, c, ops.ArtworkDoc{
		Title: "Sunflowers", Artist: "Vincent van Gogh", Year: year(1888),
		Description: "Fourth of the Arles series",
		Images: []ops.ImageDoc{
			{File: "sunflowers.jpg", Tags: []ops.TagRef{tag("Subject", "Flowers")}},
			{File: "sunflowers-detail.jpg", Tags: []ops.TagRef{tag("Style", "Post-Impressionism")}},
		},
	})
}

func searchIDs(t *testing.T, c *gallery.Catalog, q string) []int64 {
	t.Helper()
	page, err := c.Search(context.Background(), q, gallery.SearchOptions{Limit: 50})
	if err != nil {
		t.Fatalf("Search(%q): %v", q, err)
	}
	ids := []int64{}
	for _, r := range page.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func expectIDs(t *testing.T, c *gallery.Catalog, q string, want ...int64) {
	t.Helper()
	got := searchIDs(t, c, q)
	if want == nil {
		want = []int64{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Search(%q): expected %v, got %v", q, want, got)
	}
}

func TestSearch_SQLite(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	expectIDs(t, c, "", 1, 2, 3, 4)
	expectIDs(t, c, "impressionism", 1, 2)
	expectIDs(t, c, "IMPRESSIONISM", 1, 2)
	expectIDs(t, c, "water AND NOT flowers", 2)
	expectIDs(t, c, "water NOT flowers", 2)
	expectIDs(t, c, "baroque OR flowers", 1, 3, 4)
	expectIDs(t, c, "style-baroque", 3)
	expectIDs(t, c, "subject-baroque")
	expectIDs(t, c, `"Post-Impressionism"`, 4)
	expectIDs(t, c, "post-impressionism")
	expectIDs(t, c, "year>1800", 1, 2, 4)
	expectIDs(t, c, "year:<=1872", 2, 3)
	expectIDs(t, c, "artist:monet", 1, 2)
	expectIDs(t, c, "name:sun", 2, 4)
	expectIDs(t, c, "(impressionism OR baroque) AND year<1900", 2, 3)
}

func TestSearch_TagsMatchWithinOneImage(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	// Sunflowers carries these tags on different images.
	expectIDs(t, c, `flowers "post-impressionism"`)
	expectIDs(t, c, "flowers version:primary", 1, 4)
	expectIDs(t, c, `"post-impressionism" version:primary`)
}

func TestSearch_PagingAndTotal(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	page, err := c.Search(context.Background(), "", gallery.SearchOptions{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 4 {
		t.Fatalf("expected total 4, got %d", page.Total)
	}
	if len(page.Rows) != 2 || page.Rows[0].ID != 2 || page.Rows[1].ID != 3 {
		t.Fatalf("unexpected page: %+v", page.Rows)
	}
	if page.SearchID == "" {
		t.Fatalf("expected a search id")
	}
	if page.Rows[0].Artist != "Claude Monet" || page.Rows[0].Year == nil || *page.Rows[0].Year != 1872 {
		t.Fatalf("unexpected row: %+v", page.Rows[0])
	}
}

func TestSearch_PartialMatch(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	page, err := c.Search(context.Background(), "impressionism water flowers match:partial", gallery.SearchOptions{Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !page.Partial {
		t.Fatalf("expected partial mode")
	}

	var ids []int64
	var scores []int
	for _, r := range page.Rows {
		ids = append(ids, r.ID)
		scores = append(scores, r.MatchScore)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 4}) || !reflect.DeepEqual(scores, []int{3, 2, 1}) {
		t.Fatalf("unexpected ranking: ids=%v scores=%v", ids, scores)
	}
}

func TestSearch_PartialMatchWithoutTagsFallsBack(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	page, err := c.Search(context.Background(), "match:partial", gallery.SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Partial || page.Total != 4 {
		t.Fatalf("expected standard search over everything, got partial=%v total=%d", page.Partial, page.Total)
	}
}

func TestSearch_SyntaxErrors(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	for _, q := range []string{"(a AND b", "foo:bar", "year>abc", "version:latest", "a )"} {
		_, err := c.Search(ctx, q, gallery.SearchOptions{})
		if err == nil {
			t.Fatalf("Search(%q): expected error", q)
		}
		if !gallery.IsKind(err, gallery.ErrQueryParse) || !gallery.IsSyntaxError(err) {
			t.Fatalf("Search(%q): expected query_parse syntax error, got %v", q, err)
		}
	}
}

func TestExplain_SQLite(t *testing.T) {
	c := newCatalog(t)

	page, err := c.Explain("impressionism year>1900", gallery.SearchOptions{Limit: 5})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if page.ExplainSQL == "" || len(page.ExplainSteps) != 3 {
		t.Fatalf("unexpected explain: %q %v", page.ExplainSQL, page.ExplainSteps)
	}
}

func TestArtworkDetails_SQLite(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)
	ctx := context.Background()

	d, err := c.Artwork(ctx, 4, 0)
	if err != nil {
		t.Fatalf("Artwork: %v", err)
	}
	if len(d.Images) != 2 || d.Images[0].DisplayOrder != 1 || d.Images[1].File != "sunflowers-detail.jpg" {
		t.Fatalf("unexpected images: %+v", d.Images)
	}
	if d.Description != "Fourth of the Arles series" {
		t.Fatalf("unexpected description: %q", d.Description)
	}
	want := []ops.TagRef{{Category: "General", Group: "Subject", Name: "Flowers"}}
	if !reflect.DeepEqual(d.Tags, want) {
		t.Fatalf("expected first image tags %v, got %v", want, d.Tags)
	}

	d2, err := c.Artwork(ctx, 4, d.Images[1].ID)
	if err != nil {
		t.Fatalf("Artwork: %v", err)
	}
	if len(d2.Tags) != 1 || d2.Tags[0].Name != "Post-Impressionism" {
		t.Fatalf("expected second image tags, got %v", d2.Tags)
	}

	if _, err := c.Artwork(ctx, 99, 0); !gallery.IsKind(err, gallery.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := c.Artwork(ctx, 4, d.Images[0].ID+1000); !gallery.IsKind(err, gallery.ErrNotFound) {
		t.Fatalf("expected not_found for foreign image, got %v", err)
	}
}

func tagNames(cats []gallery.Category) []string {
	var out []string
	for _, cat := range cats {
		for _, g := range cat.Groups {
			for _, tg := range g.Tags {
				out = append(out, cat.Name+"/"+g.Name+"/"+tg.Name)
			}
		}
	}
	return out
}

func TestTagsAndDelete_SQLite(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)
	ctx := context.Background()

	used, err := c.UsedTags(ctx)
	if err != nil {
		t.Fatalf("UsedTags: %v", err)
	}
	want := []string{
		"General/Style/Baroque", "General/Style/Impressionism", "General/Style/Post-Impressionism",
		"General/Subject/Flowers", "General/Subject/Portrait", "General/Subject/Water",
	}
	if got := tagNames(used); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected used tags: %v", got)
	}

	found, err := c.Delete(ctx, 3)
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}
	found, err = c.Delete(ctx, 3)
	if err != nil || found {
		t.Fatalf("second Delete: found=%v err=%v", found, err)
	}

	used, err = c.UsedTags(ctx)
	if err != nil {
		t.Fatalf("UsedTags: %v", err)
	}
	for _, name := range tagNames(used) {
		if name == "General/Style/Baroque" || name == "General/Subject/Portrait" {
			t.Fatalf("deleted artwork's tag still listed as used: %s", name)
		}
	}

	all, err := c.AllTags(ctx)
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	if got := tagNames(all); !reflect.DeepEqual(got, want) {
		t.Fatalf("AllTags should keep unused tags: %v", got)
	}
	expectIDs(t, c, "baroque")
}

func TestDiscoverTags_SQLite(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)

	counts, err := c.DiscoverTags(context.Background(), "water", 10)
	if err != nil {
		t.Fatalf("DiscoverTags: %v", err)
	}
	want := []gallery.TagCount{
		{Category: "General", Group: "Style", Tag: "Impressionism", Count: 2},
		{Category: "General", Group: "Subject", Tag: "Water", Count: 2},
		{Category: "General", Group: "Subject", Tag: "Flowers", Count: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	if _, err := c.DiscoverTags(context.Background(), "(", 10); !gallery.IsSyntaxError(err) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestBatchAndStats_SQLite(t *testing.T) {
	c := newCatalog(t)
	seed(t, c)
	ctx := context.Background()

	b := gallery.NewBatch()
	if err := b.PutJSON([]byte(`{"title":"Olympia","artist":"Edouard Manet","year":1863,"images":[{"file":"olympia.jpg","tags":[{"group":"Style","name":"Realism"}]}]}`)); err != nil {
		t.Fatalf("batch put: %v", err)
	}
	if err := b.Delete(1); err != nil {
		t.Fatalf("batch delete: %v", err)
	}
	if err := b.Delete(42); err != nil {
		t.Fatalf("batch delete: %v", err)
	}
	if err := b.PutJSON([]byte(`{"images":[]}`)); !gallery.IsKind(err, gallery.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}

	n, err := b.Execute(ctx, c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 applied ops, got %d", n)
	}

	expectIDs(t, c, "realism", 5)
	expectIDs(t, c, "impressionism", 2)

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Artworks != 4 || stats.Images != 5 || stats.Tags != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOpen_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	c, err := gallery.Create(ctx, sqlite.New(dbPath), gallery.DefaultCatalogOptions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	put(t, c, ops.ArtworkDoc{Title: "Untitled", Images: []ops.ImageDoc{{File: "u.jpg"}}})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c2, err := gallery.Open(ctx, sqlite.New(dbPath), gallery.DefaultCatalogOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c2.Close()
	expectIDs(t, c2, "", 1)

	if _, err := gallery.Open(ctx, sqlite.New(filepath.Join(t.TempDir(), "empty.db")), gallery.DefaultCatalogOptions()); !gallery.IsKind(err, gallery.ErrSchema) {
		t.Fatalf("expected schema error opening a non-catalog, got %v", err)
	}
}
