package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/foodgram-api/internal/store"
)

type importOptions struct {
	file  string
	force bool
	db    store.Options
}

func newIngredientsCmd(logger zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Manage the ingredient catalogue",
	}

	opts := importOptions{}
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load ingredients from a JSON, CSV or YAML file",
		Long: `Loads {name, measurement_unit} pairs into the ingredients table.
The import is skipped when ingredients already exist unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := runImport(cmd.Context(), opts, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d ingredients\n", n)
			return nil
		},
	}
	flags := importCmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "path to a .json, .csv, .yaml or .yml file")
	flags.BoolVar(&opts.force, "force", false, "import even when ingredients already exist")
	flags.StringVar(&opts.db.Driver, "driver", envOr("DATABASE_DRIVER", "postgres"), "database driver (postgres|sqlite)")
	flags.StringVar(&opts.db.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection URL")
	flags.StringVar(&opts.db.SQLitePath, "sqlite-path", envOr("SQLITE_PATH", "foodgram.db"), "sqlite database file")
	flags.BoolVar(&opts.db.Migrate, "migrate", false, "apply migrations before importing")
	_ = importCmd.MarkFlagRequired("file")

	cmd.AddCommand(importCmd)
	return cmd
}

func runImport(ctx context.Context, opts importOptions, logger zerolog.Logger) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	items, err := readIngredientsFile(opts.file)
	if err != nil {
		return 0, err
	}
	items, err = store.NormalizeIngredients(items)
	if err != nil {
		return 0, err
	}

	opts.db.ApplicationName = "foodgramctl"
	st, err := store.Open(ctx, opts.db)
	if err != nil {
		return 0, err
	}
	defer func() { _ = st.Close() }()

	existing, err := st.CountIngredients(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 && !opts.force {
		logger.Info().Int64("existing", existing).Msg("ingredients already loaded; use --force to import anyway")
		return 0, nil
	}

	n, err := st.ImportIngredients(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("import ingredients: %w", err)
	}
	logger.Info().Int("imported", n).Str("file", opts.file).Msg("ingredients imported")
	return n, nil
}

func readIngredientsFile(path string) ([]store.Ingredient, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("--file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeIngredients(f, filepath.Ext(path))
}

// decodeIngredients parses r according to the file extension ext.
func decodeIngredients(r io.Reader, ext string) ([]store.Ingredient, error) {
	var items []store.Ingredient
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.NewDecoder(r).Decode(&items); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&items); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".csv":
		return decodeCSV(r)
	default:
		return nil, fmt.Errorf("unsupported ingredient file type %q", ext)
	}
	return items, nil
}

// decodeCSV reads name,unit rows. A leading header row is skipped.
func decodeCSV(r io.Reader) ([]store.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	var items []store.Ingredient
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}
		if line == 1 && strings.EqualFold(record[0], "name") {
			continue
		}
		items = append(items, store.Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}
}
