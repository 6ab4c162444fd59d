package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/foodgram-api/internal/store"
)

type listStore struct {
	recipes map[int64]store.RecipeSummary
	members map[[2]int64]store.List
}

func (l *listStore) RecipeSummary(_ context.Context, recipeID int64) (store.RecipeSummary, error) {
	r, ok := l.recipes[recipeID]
	if !ok {
		return store.RecipeSummary{}, store.ErrNotFound
	}
	return r, nil
}

func (l *listStore) AddRecipe(_ context.Context, list store.List, userID, recipeID int64) error {
	if _, ok := l.recipes[recipeID]; !ok {
		return store.ErrNotFound
	}
	if userID == 0 {
		return store.ErrUnknownUser
	}
	k := [2]int64{userID, recipeID}
	if _, ok := l.members[k]; ok {
		return store.ErrAlreadyExists
	}
	l.members[k] = list
	return nil
}

func (l *listStore) RemoveRecipe(_ context.Context, _ store.List, userID, recipeID int64) error {
	if _, ok := l.recipes[recipeID]; !ok {
		return store.ErrNotFound
	}
	k := [2]int64{userID, recipeID}
	if _, ok := l.members[k]; !ok {
		return store.ErrNotListed
	}
	delete(l.members, k)
	return nil
}

func TestFavoritesAddRemove(t *testing.T) {
	st := &listStore{
		recipes: map[int64]store.RecipeSummary{5: {ID: 5, Name: "Olivier", CookingTime: 40}},
		members: map[[2]int64]store.List{},
	}
	svc := &Service{Store: st}
	ctx := context.Background()

	summary, err := svc.Add(ctx, 2, 5)
	require.NoError(t, err)
	require.Equal(t, "Olivier", summary.Name)
	require.Equal(t, store.Favorites, st.members[[2]int64{2, 5}])

	_, err = svc.Add(ctx, 2, 5)
	require.ErrorIs(t, err, ErrAlreadyFavorited)

	_, err = svc.Add(ctx, 2, 6)
	require.ErrorIs(t, err, ErrRecipeNotFound)

	require.NoError(t, svc.Remove(ctx, 2, 5))
	require.ErrorIs(t, svc.Remove(ctx, 2, 5), ErrNotFavorited)
	require.ErrorIs(t, svc.Remove(ctx, 2, 6), ErrRecipeNotFound)

	_, err = svc.Add(ctx, 0, 5)
	require.ErrorIs(t, err, ErrUnknownUser)
}
