package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/foodgram-api/internal/shoppinglist"
)

const pgForeignKeyViolation = "23503"

// Postgres implements the store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an established pool. Close closes the pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// RecipeSummary loads the minified representation of a recipe.
func (p *Postgres) RecipeSummary(ctx context.Context, recipeID int64) (RecipeSummary, error) {
	var r RecipeSummary
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, image, cooking_time FROM recipes WHERE id = $1`, recipeID,
	).Scan(&r.ID, &r.Name, &r.Image, &r.CookingTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return RecipeSummary{}, ErrNotFound
	}
	return r, err
}

// AddRecipe puts a recipe on the user's list. It returns ErrNotFound for a
// missing recipe and ErrUnknownUser when the user row is gone.
func (p *Postgres) AddRecipe(ctx context.Context, list List, userID, recipeID int64) error {
	table, err := list.table()
	if err != nil {
		return err
	}
	if _, err := p.RecipeSummary(ctx, recipeID); err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO `+table+` (user_id, recipe_id) VALUES ($1, $2) ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrUnknownUser
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// RemoveRecipe takes a recipe off the user's list. It returns ErrNotFound for a
// missing recipe and ErrNotListed when the list does not hold it.
func (p *Postgres) RemoveRecipe(ctx context.Context, list List, userID, recipeID int64) error {
	table, err := list.table()
	if err != nil {
		return err
	}
	if _, err := p.RecipeSummary(ctx, recipeID); err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM `+table+` WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotListed
	}
	return nil
}

// CartIngredientLines returns every ingredient line of the recipes in the user's cart,
// ordered by cart insertion and then by line within the recipe.
func (p *Postgres) CartIngredientLines(ctx context.Context, userID int64) ([]shoppinglist.IngredientLine, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT i.name, i.measurement_unit, ri.amount
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = $1
		`+cartLinesOrder, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shoppinglist.IngredientLine, error) {
		var line shoppinglist.IngredientLine
		err := row.Scan(&line.Name, &line.Unit, &line.Quantity)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan cart lines: %w", err)
	}
	return lines, nil
}

// CountIngredients reports how many reference ingredients exist.
func (p *Postgres) CountIngredients(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM ingredients`).Scan(&n)
	return n, err
}

// ImportIngredients validates and inserts ingredients in one transaction.
func (p *Postgres) ImportIngredients(ctx context.Context, items []Ingredient) (int, error) {
	normalized, err := NormalizeIngredients(items)
	if err != nil {
		return 0, err
	}
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, item := range normalized {
		batch.Queue(`INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2)`, item.Name, item.MeasurementUnit)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert ingredients: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(normalized), nil
}
