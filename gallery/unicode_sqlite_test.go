package gallery_test

import (
	"testing"

	"github.com/nonibytes/gallery/gallery/ops"
)

func TestNonASCIICaseFolding_SQLite(t *testing.T) {
	c := newCatalog(t)
	put(t, c, ops.ArtworkDoc{
		Title: "Le Déjeuner sur l'herbe", Artist: "Édouard Manet", Year: year(1863),
		Images: []ops.ImageDoc{{File: "dejeuner.jpg", Tags: []ops.TagRef{
			tag("Style", "Réalisme"), tag("Lieu", "Île"),
		}}},
	})
	put(t, c, ops.ArtworkDoc{
		Title: "Olympia", Artist: "Édouard Manet", Year: year(1863),
		Images: []ops.ImageDoc{{File: "olympia.jpg", Tags: []ops.TagRef{tag("Style", "Réalisme")}}},
	})

	expectIDs(t, c, `"Réalisme"`, 1, 2)
	expectIDs(t, c, "RÉALISME", 1, 2)
	expectIDs(t, c, "Île", 1)
	expectIDs(t, c, "île", 1)
	expectIDs(t, c, "ÎLE", 1)
	expectIDs(t, c, "lieu-Île", 1)
	expectIDs(t, c, "LIEU-île", 1)
	expectIDs(t, c, "style-île")
	expectIDs(t, c, "artist:Édouard", 1, 2)
	expectIDs(t, c, "artist:édouard", 1, 2)
	expectIDs(t, c, "artist:ÉDOUARD", 1, 2)
	expectIDs(t, c, "name:DÉJEUNER", 1)
	expectIDs(t, c, `artist:="édouard manet"`, 1, 2)
	expectIDs(t, c, "réalisme île match:partial", 1, 2)
}
