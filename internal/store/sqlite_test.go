package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/foodgram-api/internal/shoppinglist"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fixture struct {
	alice, bob     int64
	soup, pancakes int64
}

// seed creates two users and two recipes sharing flour:
//
//	soup:     flour 200 g, salt 5 g, water 1 l
//	pancakes: milk 300 ml, flour 150 g, egg 2 pcs
func seed(t *testing.T, s *SQLite) fixture {
	t.Helper()
	ctx := context.Background()
	exec := func(query string, args ...any) int64 {
		res, err := s.db.ExecContext(ctx, query, args...)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		return id
	}
	var f fixture
	f.alice = exec(`INSERT INTO users (email, username) VALUES ('alice@example.com', 'alice')`)
	f.bob = exec(`INSERT INTO users (email, username) VALUES ('bob@example.com', 'bob')`)

	ingredient := map[string]int64{}
	for _, row := range [][2]string{{"flour", "g"}, {"salt", "g"}, {"water", "l"}, {"milk", "ml"}, {"egg", "pcs"}} {
		ingredient[row[0]] = exec(`INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?)`, row[0], row[1])
	}

	f.soup = exec(`INSERT INTO recipes (author_id, name, image, cooking_time) VALUES (?, 'Soup', 'recipes/soup.png', 30)`, f.bob)
	f.pancakes = exec(`INSERT INTO recipes (author_id, name, image, cooking_time) VALUES (?, 'Pancakes', 'recipes/pancakes.png', 20)`, f.bob)

	line := func(recipe int64, name string, amount int) {
		exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)`, recipe, ingredient[name], amount)
	}
	line(f.soup, "flour", 200)
	line(f.soup, "salt", 5)
	line(f.soup, "water", 1)
	line(f.pancakes, "milk", 300)
	line(f.pancakes, "flour", 150)
	line(f.pancakes, "egg", 2)
	return f
}

func TestSQLiteCartIngredientLinesOrder(t *testing.T) {
	s := newTestSQLite(t)
	f := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.AddRecipe(ctx, ShoppingCart, f.alice, f.pancakes))
	require.NoError(t, s.AddRecipe(ctx, ShoppingCart, f.alice, f.soup))
	require.NoError(t, s.AddRecipe(ctx, ShoppingCart, f.bob, f.soup))

	lines, err := s.CartIngredientLines(ctx, f.alice)
	require.NoError(t, err)
	require.Equal(t, []shoppinglist.IngredientLine{
		{Name: "milk", Unit: "ml", Quantity: 300},
		{Name: "flour", Unit: "g", Quantity: 150},
		{Name: "egg", Unit: "pcs", Quantity: 2},
		{Name: "flour", Unit: "g", Quantity: 200},
		{Name: "salt", Unit: "g", Quantity: 5},
		{Name: "water", Unit: "l", Quantity: 1},
	}, lines)

	result, err := shoppinglist.Aggregate(lines)
	require.NoError(t, err)
	require.Equal(t, "milk (ml) — 300\nflour (g) — 350\negg (pcs) — 2\nsalt (g) — 5\nwater (l) — 1",
		string(shoppinglist.RenderText(result)))
}

func TestSQLiteCartIngredientLinesEmpty(t *testing.T) {
	s := newTestSQLite(t)
	f := seed(t, s)

	lines, err := s.CartIngredientLines(context.Background(), f.alice)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestSQLiteListMembership(t *testing.T) {
	s := newTestSQLite(t)
	f := seed(t, s)
	ctx := context.Background()

	for _, list := range []List{ShoppingCart, Favorites} {
		t.Run(string(list), func(t *testing.T) {
			require.NoError(t, s.AddRecipe(ctx, list, f.alice, f.soup))
			require.ErrorIs(t, s.AddRecipe(ctx, list, f.alice, f.soup), ErrAlreadyExists)
			require.ErrorIs(t, s.AddRecipe(ctx, list, f.alice, 9999), ErrNotFound)

			require.NoError(t, s.RemoveRecipe(ctx, list, f.alice, f.soup))
			require.ErrorIs(t, s.RemoveRecipe(ctx, list, f.alice, f.soup), ErrNotListed)
			require.ErrorIs(t, s.RemoveRecipe(ctx, list, f.alice, 9999), ErrNotFound)
		})
	}

	require.Error(t, s.AddRecipe(ctx, List("wishlist"), f.alice, f.soup))
}

func TestSQLiteAddRecipeUnknownUser(t *testing.T) {
	s := newTestSQLite(t)
	f := seed(t, s)
	ctx := context.Background()

	require.ErrorIs(t, s.AddRecipe(ctx, ShoppingCart, 4242, f.soup), ErrUnknownUser)
	require.ErrorIs(t, s.AddRecipe(ctx, Favorites, 4242, f.soup), ErrUnknownUser)
	require.ErrorIs(t, s.AddRecipe(ctx, ShoppingCart, 4242, 9999), ErrNotFound)
}

func TestSQLiteRecipeSummary(t *testing.T) {
	s := newTestSQLite(t)
	f := seed(t, s)
	ctx := context.Background()

	summary, err := s.RecipeSummary(ctx, f.soup)
	require.NoError(t, err)
	require.Equal(t, RecipeSummary{ID: f.soup, Name: "Soup", Image: "recipes/soup.png", CookingTime: 30}, summary)

	_, err = s.RecipeSummary(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteImportIngredients(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	n, err := s.ImportIngredients(ctx, []Ingredient{
		{Name: "  sugar ", MeasurementUnit: "g"},
		{Name: "Sugar", MeasurementUnit: " g"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	count, err := s.CountIngredients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	_, err = s.ImportIngredients(ctx, []Ingredient{{Name: "salt", MeasurementUnit: ""}})
	require.Error(t, err)
	count, err = s.CountIngredients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestPgx5URL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@db:5432/foodgram?sslmode=disable", pgx5URL("postgres://u:p@db:5432/foodgram?sslmode=disable"))
	require.Equal(t, "pgx5://db/foodgram", pgx5URL("postgresql://db/foodgram"))
	require.Equal(t, "pgx5://db/foodgram", pgx5URL("pgx5://db/foodgram"))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(ctx))

	_, err = Open(ctx, Options{Driver: "mysql"})
	require.Error(t, err)
}
