package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/noah-isme/foodgram-api/internal/shoppinglist"
)

// SQLite implements the store on an embedded database file. It is meant for
// local development and tests.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases shared and serialises writers
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecipeSummary loads the minified representation of a recipe.
func (s *SQLite) RecipeSummary(ctx context.Context, recipeID int64) (RecipeSummary, error) {
	var r RecipeSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, image, cooking_time FROM recipes WHERE id = ?`, recipeID,
	).Scan(&r.ID, &r.Name, &r.Image, &r.CookingTime)
	if errors.Is(err, sql.ErrNoRows) {
		return RecipeSummary{}, ErrNotFound
	}
	return r, err
}

// AddRecipe puts a recipe on the user's list. It returns ErrNotFound for a
// missing recipe and ErrUnknownUser when the user row is gone.
func (s *SQLite) AddRecipe(ctx context.Context, list List, userID, recipeID int64) error {
	table, err := list.table()
	if err != nil {
		return err
	}
	if _, err := s.RecipeSummary(ctx, recipeID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, recipe_id) VALUES (?, ?) ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrUnknownUser
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return requireAffected(res, ErrAlreadyExists)
}

// RemoveRecipe takes a recipe off the user's list. It returns ErrNotFound for a
// missing recipe and ErrNotListed when the list does not hold it.
func (s *SQLite) RemoveRecipe(ctx context.Context, list List, userID, recipeID int64) error {
	table, err := list.table()
	if err != nil {
		return err
	}
	if _, err := s.RecipeSummary(ctx, recipeID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return requireAffected(res, ErrNotListed)
}

// CartIngredientLines returns every ingredient line of the recipes in the user's cart,
// ordered by cart insertion and then by line within the recipe.
func (s *SQLite) CartIngredientLines(ctx context.Context, userID int64) ([]shoppinglist.IngredientLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, ri.amount
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = ?
		`+cartLinesOrder, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []shoppinglist.IngredientLine
	for rows.Next() {
		var line shoppinglist.IngredientLine
		if err := rows.Scan(&line.Name, &line.Unit, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart lines: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// CountIngredients reports how many reference ingredients exist.
func (s *SQLite) CountIngredients(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM ingredients`).Scan(&n)
	return n, err
}

// ImportIngredients validates and inserts ingredients in one transaction.
func (s *SQLite) ImportIngredients(ctx context.Context, items []Ingredient) (int, error) {
	normalized, err := NormalizeIngredients(items)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, item := range normalized {
		if _, err := stmt.ExecContext(ctx, item.Name, item.MeasurementUnit); err != nil {
			return 0, fmt.Errorf("insert ingredient %q: %w", item.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(normalized), nil
}

func requireAffected(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}

// isConstraintViolation reports a failed constraint. With the recipe checked
// and conflicts ignored, the remaining one on a list insert is the user key.
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
