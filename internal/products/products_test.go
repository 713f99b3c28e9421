package products

import (
	"testing"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(catalog []entity.Product) []string {
	result := make([]string, 0, len(catalog))
	for _, product := range catalog {
		result = append(result, product.Name)
	}
	return result
}

func TestFilter(t *testing.T) {
	t.Run("Empty filter keeps everything", func(t *testing.T) {
		// When: filtering with the default state
		filtered := Filter(Catalog(), FilterState{})

		// Then: all six products remain in order
		assert.Equal(t, names(Catalog()), names(filtered))
	})

	t.Run("Matches the category case-insensitively", func(t *testing.T) {
		// When: filtering by "fruit"
		filtered := Filter(Catalog(), FilterState{Text: "fruit"})

		// Then: every fruit matches through its category
		assert.Equal(t, []string{"Apple", "Passionfruit", "Dragonfruit"}, names(filtered))
	})

	t.Run("In stock only drops unstocked products", func(t *testing.T) {
		// When: filtering by "fruit" in stock only
		filtered := Filter(Catalog(), FilterState{Text: "fruit", InStockOnly: true})

		// Then: Passionfruit is gone
		assert.Equal(t, []string{"Apple", "Dragonfruit"}, names(filtered))
	})

	t.Run("Upper case text matches lower case names", func(t *testing.T) {
		filtered := Filter(Catalog(), FilterState{Text: "PEAS"})

		assert.Equal(t, []string{"Peas"}, names(filtered))
	})

	t.Run("Separator is part of the key", func(t *testing.T) {
		// When: the text spans the category/name boundary
		filtered := Filter(Catalog(), FilterState{Text: "s#a"})

		// Then: only "Fruits#Apple" contains it
		assert.Equal(t, []string{"Apple"}, names(filtered))
	})

	t.Run("Boundary text matches products starting with a letter", func(t *testing.T) {
		filtered := Filter(Catalog(), FilterState{Text: "s#p"})

		assert.Equal(t, []string{"Passionfruit", "Pumpkin", "Peas"}, names(filtered))
	})

	t.Run("Category and name do not run together", func(t *testing.T) {
		// When: the text would only match "FruitsApple" without the separator
		filtered := Filter(Catalog(), FilterState{Text: "tsa"})

		// Then: nothing matches
		assert.Empty(t, filtered)
	})

	t.Run("Unmatched text yields nothing", func(t *testing.T) {
		assert.Empty(t, Filter(Catalog(), FilterState{Text: "meat"}))
	})
}

func TestGroupByCategory(t *testing.T) {
	t.Run("Keeps first-seen category order", func(t *testing.T) {
		// When: grouping the full catalog
		groups := GroupByCategory(Catalog())

		// Then: Fruits come first and each group keeps catalog order
		require.Len(t, groups, 2)
		assert.Equal(t, "Fruits", groups[0].Category)
		assert.Equal(t, []string{"Apple", "Passionfruit", "Dragonfruit"}, names(groups[0].Products))
		assert.Equal(t, "Vegetables", groups[1].Category)
		assert.Equal(t, []string{"Spinach", "Pumpkin", "Peas"}, names(groups[1].Products))
	})

	t.Run("Empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, GroupByCategory(nil))
	})
}

func TestTable(t *testing.T) {
	// When: building the table for "fruit"
	groups := Table(Catalog(), FilterState{Text: "fruit"})

	// Then: one Fruits group holds the three fruits
	require.Len(t, groups, 1)
	assert.Equal(t, "Fruits", groups[0].Category)
	assert.Equal(t, []string{"Apple", "Passionfruit", "Dragonfruit"}, names(groups[0].Products))
}
