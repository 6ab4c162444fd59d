package cart

import (
	"context"
	"errors"

	"github.com/noah-isme/foodgram-api/internal/obs"
	"github.com/noah-isme/foodgram-api/internal/store"
)

var (
	// ErrRecipeNotFound indicates the recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrAlreadyInCart is returned when the recipe is already in the user's cart.
	ErrAlreadyInCart = errors.New("recipe already in shopping cart")
	// ErrNotInCart is returned when removing a recipe the cart does not hold.
	ErrNotInCart = errors.New("recipe not in shopping cart")
	// ErrUnknownUser is returned when the authenticated user no longer exists.
	ErrUnknownUser = errors.New("user not found")
)

// Store is the persistence the cart needs.
type Store interface {
	RecipeSummary(ctx context.Context, recipeID int64) (store.RecipeSummary, error)
	AddRecipe(ctx context.Context, list store.List, userID, recipeID int64) error
	RemoveRecipe(ctx context.Context, list store.List, userID, recipeID int64) error
}

// Service manages the recipes in a user's shopping cart.
type Service struct {
	Store Store
}

// Add puts the recipe in the cart and returns its summary.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) (store.RecipeSummary, error) {
	if s == nil || s.Store == nil {
		return store.RecipeSummary{}, errors.New("cart service not configured")
	}
	summary, err := s.Store.RecipeSummary(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.RecipeSummary{}, ErrRecipeNotFound
		}
		return store.RecipeSummary{}, err
	}
	err = s.Store.AddRecipe(ctx, store.ShoppingCart, userID, recipeID)
	switch {
	case err == nil:
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "add", "ok")
		return summary, nil
	case errors.Is(err, store.ErrAlreadyExists):
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "add", "conflict")
		return store.RecipeSummary{}, ErrAlreadyInCart
	case errors.Is(err, store.ErrNotFound):
		return store.RecipeSummary{}, ErrRecipeNotFound
	case errors.Is(err, store.ErrUnknownUser):
		return store.RecipeSummary{}, ErrUnknownUser
	default:
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "add", "error")
		return store.RecipeSummary{}, err
	}
}

// Remove takes the recipe out of the cart.
func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	err := s.Store.RemoveRecipe(ctx, store.ShoppingCart, userID, recipeID)
	switch {
	case err == nil:
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "remove", "ok")
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrRecipeNotFound
	case errors.Is(err, store.ErrNotListed):
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "remove", "conflict")
		return ErrNotInCart
	default:
		obs.ObserveRecipeListChange(string(store.ShoppingCart), "remove", "error")
		return err
	}
}
