package shoppinglist

// IngredientLine is a single ingredient amount contributed by one recipe in a cart.
type IngredientLine struct {
	Name     string
	Unit     string
	Quantity int64
}

// Key identifies an ingredient group. Matching is exact and case-sensitive.
type Key struct {
	Name string
	Unit string
}

// Key returns the grouping key of the line.
func (l IngredientLine) Key() Key {
	return Key{Name: l.Name, Unit: l.Unit}
}

// Entry is the summed quantity of every line sharing the same key.
type Entry struct {
	Name  string
	Unit  string
	Total int64
}

// Result is an aggregated shopping list in first-encounter order.
type Result struct {
	Entries []Entry
}

// Len reports the number of entries.
func (r Result) Len() int { return len(r.Entries) }

// Empty reports whether the list has no entries.
func (r Result) Empty() bool { return len(r.Entries) == 0 }
