package favorites

import (
	"context"
	"errors"

	"github.com/noah-isme/foodgram-api/internal/obs"
	"github.com/noah-isme/foodgram-api/internal/store"
)

var (
	// ErrRecipeNotFound indicates the recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrAlreadyFavorited is returned when the recipe is already a favorite.
	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	// ErrNotFavorited is returned when removing a recipe that is not a favorite.
	ErrNotFavorited = errors.New("recipe not in favorites")
	// ErrUnknownUser is returned when the authenticated user no longer exists.
	ErrUnknownUser = errors.New("user not found")
)

// Store is the persistence favorites need.
type Store interface {
	RecipeSummary(ctx context.Context, recipeID int64) (store.RecipeSummary, error)
	AddRecipe(ctx context.Context, list store.List, userID, recipeID int64) error
	RemoveRecipe(ctx context.Context, list store.List, userID, recipeID int64) error
}

type Service struct {
	Store Store
}

func (s *Service) Add(ctx context.Context, userID, recipeID int64) (store.RecipeSummary, error) {
	summary, err := s.Store.RecipeSummary(ctx, recipeID)
	if errors.Is(err, store.ErrNotFound) {
		return store.RecipeSummary{}, ErrRecipeNotFound
	}
	if err != nil {
		return store.RecipeSummary{}, err
	}
	if err := s.Store.AddRecipe(ctx, store.Favorites, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			obs.ObserveRecipeListChange(string(store.Favorites), "add", "conflict")
			return store.RecipeSummary{}, ErrAlreadyFavorited
		}
		if errors.Is(err, store.ErrNotFound) {
			return store.RecipeSummary{}, ErrRecipeNotFound
		}
		if errors.Is(err, store.ErrUnknownUser) {
			return store.RecipeSummary{}, ErrUnknownUser
		}
		obs.ObserveRecipeListChange(string(store.Favorites), "add", "error")
		return store.RecipeSummary{}, err
	}
	obs.ObserveRecipeListChange(string(store.Favorites), "add", "ok")
	return summary, nil
}

func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if err := s.Store.RemoveRecipe(ctx, store.Favorites, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecipeNotFound
		}
		if errors.Is(err, store.ErrNotListed) {
			obs.ObserveRecipeListChange(string(store.Favorites), "remove", "conflict")
			return ErrNotFavorited
		}
		obs.ObserveRecipeListChange(string(store.Favorites), "remove", "error")
		return err
	}
	obs.ObserveRecipeListChange(string(store.Favorites), "remove", "ok")
	return nil
}
