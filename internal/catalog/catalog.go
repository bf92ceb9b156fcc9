package catalog

import "github.com/shopspring/decimal"

// MenuItem is a single bakery product. Prices are only published for
// beverages; bakery items are priced in store.
type MenuItem struct {
	Name        string           `json:"name"`
	Ingredients []string         `json:"ingredients,omitempty"`
	Image       string           `json:"image,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// MenuCategory groups menu items under a display label and URL slug.
type MenuCategory struct {
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Items []MenuItem `json:"items"`
}

// Beverage is a priced drink that can go straight into the cart.
type Beverage struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

// BeverageIDPrefix namespaces beverage-derived cart line ids so snapshots
// can re-resolve dropped image references on load.
const BeverageIDPrefix = "bev_"

// CartLineID returns the cart line id for this beverage.
func (b Beverage) CartLineID() string {
	return BeverageIDPrefix + b.ID
}

// MenuCategories returns the full static menu, insertion-ordered.
func MenuCategories() []MenuCategory {
	return menuCategories
}

// CategoryBySlug returns the category with the given slug, or nil.
func CategoryBySlug(slug string) *MenuCategory {
	for i := range menuCategories {
		if menuCategories[i].Slug == slug {
			return &menuCategories[i]
		}
	}
	return nil
}

// Beverages returns the priced drink list.
func Beverages() []Beverage {
	return beverages
}

// BeverageByID returns the beverage with the given catalog id, or nil.
func BeverageByID(id string) *Beverage {
	for i := range beverages {
		if beverages[i].ID == id {
			return &beverages[i]
		}
	}
	return nil
}
