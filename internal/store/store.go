// Package store persists recipes, ingredients and the per-user recipe lists
// (shopping cart and favorites) in Postgres or SQLite.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyExists indicates a unique row is already present.
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrNotListed indicates the recipe exists but is not on the user's list.
	ErrNotListed = errors.New("store: recipe not on list")
	// ErrUnknownUser indicates the list owner has no users row.
	ErrUnknownUser = errors.New("store: unknown user")
)

// List names a per-user recipe collection.
type List string

const (
	// ShoppingCart holds the recipes a shopping list is built from.
	ShoppingCart List = "shopping_cart"
	// Favorites holds the recipes a user marked as favorite.
	Favorites List = "favorites"
)

func (l List) table() (string, error) {
	switch l {
	case ShoppingCart:
		return "shopping_cart", nil
	case Favorites:
		return "favorites", nil
	default:
		return "", fmt.Errorf("store: unknown list %q", string(l))
	}
}

// RecipeSummary is the minified recipe representation returned after list changes.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

const cartLinesOrder = "ORDER BY sc.id, ri.id"
