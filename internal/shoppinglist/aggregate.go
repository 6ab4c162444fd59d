package shoppinglist

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrQuantityOverflow is returned when a group total no longer fits in an int64.
	ErrQuantityOverflow = errors.New("shopping list: quantity overflow")
	// ErrInvalidQuantity is returned for lines with a zero or negative quantity.
	ErrInvalidQuantity = errors.New("shopping list: quantity must be positive")
)

// Aggregate groups lines by name and unit and sums their quantities.
// Entries keep the order in which their key was first seen.
func Aggregate(lines []IngredientLine) (Result, error) {
	if len(lines) == 0 {
		return Result{}, nil
	}
	index := make(map[Key]int, len(lines))
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return Result{}, fmt.Errorf("line %d (%s, %s): %w", i, line.Name, line.Unit, ErrInvalidQuantity)
		}
		key := line.Key()
		pos, seen := index[key]
		if !seen {
			index[key] = len(entries)
			entries = append(entries, Entry{Name: line.Name, Unit: line.Unit, Total: line.Quantity})
			continue
		}
		if entries[pos].Total > math.MaxInt64-line.Quantity {
			return Result{}, fmt.Errorf("%s (%s): %w", line.Name, line.Unit, ErrQuantityOverflow)
		}
		entries[pos].Total += line.Quantity
	}
	return Result{Entries: entries}, nil
}
