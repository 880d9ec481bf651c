package main

import (
	"context"
	"os"
	"time"

	"provider-enricher/internal/config"
	"provider-enricher/internal/places"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Fixed relative paths of the input list and the two snapshots.
const (
	inputFile    = "list-provider.xlsx"
	snapshotFile = "output_file_selesai_belum.xlsx"
	outputFile   = "list-provider-end.xlsx"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Str("run_id", uuid.NewString()).Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("enricher failed")
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "enricher",
		Short:         "Enrich the provider list with Google Places map, coordinate and photo data",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(".")
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			r := &runner{
				cfg: cfg,
				files: files{
					input:    inputFile,
					snapshot: snapshotFile,
					output:   outputFile,
				},
				places:  places.NewClient(cfg.APIKey),
				connect: connectPostgres,
				logger:  log.Logger,
			}
			return r.run(cmd.Context())
		},
	}
}

func connectPostgres(ctx context.Context, dsn string) (database, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
