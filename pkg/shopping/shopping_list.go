package shopping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klokku/recipebook/pkg/recipe"
)

type ShoppingListItem struct {
	// Ingredient is the lower-cased ingredient name, which is also the merge key.
	Ingredient string
	Amount     float64
	// Unit comes from the first occurrence of the ingredient.
	Unit    string
	Checked bool
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Consolidate merges the ingredients of all recipes into one list, in first-appearance order.
//
// Ingredients are merged by lower-cased name only. When the same ingredient shows up with
// different units the amounts are still added together and the first unit is kept, so 200 g
// plus 1 cup of flour becomes 201 g. This is a known defect kept for compatibility.
func Consolidate(recipes []recipe.Recipe) []ShoppingListItem {
	index := make(map[string]int)
	var items []ShoppingListItem
	for _, r := range recipes {
		for _, ingredient := range r.Ingredients {
			key := strings.ToLower(ingredient.Name)
			i, ok := index[key]
			if !ok {
				i = len(items)
				index[key] = i
				items = append(items, ShoppingListItem{Ingredient: key, Unit: ingredient.Unit})
			}
			items[i].Amount += ingredient.Amount
		}
	}

	result := make([]ShoppingListItem, 0, len(items))
	for _, item := range items {
		item.Amount = recipe.RoundTo2(item.Amount)
		result = append(result, item)
	}
	return result
}

// MarkChecked returns a copy of items with Checked set for every ingredient named in checked.
// Names are compared case-insensitively.
func MarkChecked(items []ShoppingListItem, checked []string) []ShoppingListItem {
	names := make(map[string]bool, len(checked))
	for _, name := range checked {
		names[strings.ToLower(strings.TrimSpace(name))] = true
	}
	marked := make([]ShoppingListItem, 0, len(items))
	for _, item := range items {
		item.Checked = names[item.Ingredient]
		marked = append(marked, item)
	}
	return marked
}

func (f Filter) Apply(items []ShoppingListItem) []ShoppingListItem {
	filtered := make([]ShoppingListItem, 0, len(items))
	for _, item := range items {
		switch f {
		case FilterPending:
			if item.Checked {
				continue
			}
		case FilterCompleted:
			if !item.Checked {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func ParseFilter(value string) (Filter, error) {
	switch Filter(value) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted:
		return Filter(value), nil
	}
	return "", fmt.Errorf("unknown shopping list filter %q", value)
}

// ShareText renders the list as plain text, one "□ amount unit ingredient" line per item.
func ShareText(items []ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("□ %s %s %s", formatAmount(item.Amount), item.Unit, item.Ingredient))
	}
	return strings.Join(lines, "\n")
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
