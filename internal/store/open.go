package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/foodgram-api/internal/shoppinglist"
)

// Store is the persistence surface shared by the Postgres and SQLite backends.
type Store interface {
	Ping(ctx context.Context) error
	RecipeSummary(ctx context.Context, recipeID int64) (RecipeSummary, error)
	AddRecipe(ctx context.Context, list List, userID, recipeID int64) error
	RemoveRecipe(ctx context.Context, list List, userID, recipeID int64) error
	CartIngredientLines(ctx context.Context, userID int64) ([]shoppinglist.IngredientLine, error)
	CountIngredients(ctx context.Context) (int64, error)
	ImportIngredients(ctx context.Context, items []Ingredient) (int, error)
	Close() error
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*SQLite)(nil)
)

// Options selects and configures a backend.
type Options struct {
	Driver          string
	DatabaseURL     string
	SQLitePath      string
	Migrate         bool
	ApplicationName string
	// QueryTracer is installed on Postgres connections when set.
	QueryTracer pgx.QueryTracer
}

// Open connects the backend named by opts.Driver ("postgres" or "sqlite").
// SQLite databases are always migrated; Postgres only when opts.Migrate is set.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "sqlite":
		s, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "":
		p, err := openPostgres(ctx, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", opts.Driver)
	}
}

func openPostgres(ctx context.Context, opts Options) (*Postgres, error) {
	if opts.Migrate {
		if err := MigratePostgres(opts.DatabaseURL); err != nil {
			return nil, err
		}
	}
	poolConfig, err := pgxpool.ParseConfig(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if opts.QueryTracer != nil {
		poolConfig.ConnConfig.Tracer = opts.QueryTracer
	}
	if opts.ApplicationName != "" {
		if poolConfig.ConnConfig.RuntimeParams == nil {
			poolConfig.ConnConfig.RuntimeParams = map[string]string{}
		}
		poolConfig.ConnConfig.RuntimeParams["application_name"] = opts.ApplicationName
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgres(pool), nil
}
