package products

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rocketscienceinc/playground/internal/entity"
)

// FilterState holds the two search inputs. Any value is accepted.
type FilterState struct {
	Text        string `json:"text"`
	InStockOnly bool   `json:"in_stock_only"`
}

// Group is one category and its products in catalog order.
type Group struct {
	Category string           `json:"category"`
	Products []entity.Product `json:"products"`
}

// Catalog returns the fixed sample product list.
func Catalog() []entity.Product {
	return []entity.Product{
		{Category: "Fruits", Price: "$1", Stocked: true, Name: "Apple"},
		{Category: "Vegetables", Price: "$2", Stocked: true, Name: "Spinach"},
		{Category: "Fruits", Price: "$2", Stocked: false, Name: "Passionfruit"},
		{Category: "Vegetables", Price: "$4", Stocked: false, Name: "Pumpkin"},
		{Category: "Fruits", Price: "$1", Stocked: true, Name: "Dragonfruit"},
		{Category: "Vegetables", Price: "$1", Stocked: true, Name: "Peas"},
	}
}

// SearchKey is the string the filter text is matched against.
func SearchKey(product entity.Product) string {
	return product.Category + "#" + product.Name
}

// Filter keeps the products that match the filter state, in input order.
func Filter(catalog []entity.Product, state FilterState) []entity.Product {
	caser := cases.Lower(language.Und)
	needle := caser.String(state.Text)

	filtered := make([]entity.Product, 0, len(catalog))
	for _, product := range catalog {
		if state.InStockOnly && !product.Stocked {
			continue
		}

		if !strings.Contains(caser.String(SearchKey(product)), needle) {
			continue
		}

		filtered = append(filtered, product)
	}

	return filtered
}

// GroupByCategory keeps first-seen category order and input order within a category.
func GroupByCategory(catalog []entity.Product) []Group {
	var groups []Group
	positions := make(map[string]int)

	for _, product := range catalog {
		position, ok := positions[product.Category]
		if !ok {
			position = len(groups)
			positions[product.Category] = position
			groups = append(groups, Group{Category: product.Category})
		}

		groups[position].Products = append(groups[position].Products, product)
	}

	return groups
}

// Table filters then groups the catalog.
func Table(catalog []entity.Product, state FilterState) []Group {
	return GroupByCategory(Filter(catalog, state))
}
