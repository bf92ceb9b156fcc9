package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBeverageLookup(t *testing.T) {
	t.Parallel()

	b := BeverageByID("espresso")
	if b == nil {
		t.Fatal("espresso missing from catalog")
	}
	if !b.Price.Equal(decimal.RequireFromString("3.50")) {
		t.Fatalf("unexpected espresso price: %s", b.Price)
	}
	if b.CartLineID() != "bev_espresso" {
		t.Fatalf("unexpected cart line id: %s", b.CartLineID())
	}

	if BeverageByID("mocha") != nil {
		t.Fatal("unknown beverage should return nil")
	}
}

func TestCategorySlugsUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, c := range MenuCategories() {
		if seen[c.Slug] {
			t.Fatalf("duplicate slug %q", c.Slug)
		}
		seen[c.Slug] = true
		if len(c.Items) == 0 {
			t.Fatalf("category %q has no items", c.Slug)
		}
	}

	if CategoryBySlug("bread") == nil {
		t.Fatal("bread category missing")
	}
	if CategoryBySlug("pizza") != nil {
		t.Fatal("unknown slug should return nil")
	}
}

func TestBeveragesCategoryCarriesPrices(t *testing.T) {
	t.Parallel()

	cat := CategoryBySlug("beverages")
	if cat == nil {
		t.Fatal("beverages category missing")
	}
	for _, item := range cat.Items {
		if item.Price == nil {
			t.Fatalf("beverage %q has no price", item.Name)
		}
	}
}

func TestMainLocation(t *testing.T) {
	t.Parallel()

	loc := LocationByID("me-tri-ha")
	if loc == nil {
		t.Fatal("main location missing")
	}
	if !loc.IsMainLocation {
		t.Fatal("me-tri-ha should be the main location")
	}
	if len(loc.Hours) != 7 {
		t.Fatalf("expected hours for 7 days, got %d", len(loc.Hours))
	}
}
