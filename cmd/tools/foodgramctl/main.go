// Command foodgramctl holds operator tasks for the foodgram API: loading the
// ingredient catalogue and minting access tokens for local testing.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/foodgram-api/internal/obs"
)

func main() {
	_ = godotenv.Load()
	logger := obs.NewLoggerTo(os.Stderr, "console", envOr("OBS_LOG_LEVEL", "info"))
	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "foodgramctl",
		Short:        "Operator tasks for the foodgram API",
		SilenceUsage: true,
	}
	root.AddCommand(newIngredientsCmd(logger), newTokenCmd())
	return root
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
