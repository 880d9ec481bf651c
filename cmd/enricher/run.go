package main

import (
	"context"
	"fmt"

	"provider-enricher/internal/config"
	"provider-enricher/internal/models"
	"provider-enricher/internal/repository"
	"provider-enricher/internal/service"
	"provider-enricher/internal/spreadsheet"

	"github.com/rs/zerolog"
)

type files struct {
	input    string
	snapshot string
	output   string
}

// database is a single connection that is closed once the batch is persisted.
type database interface {
	repository.DB
	Close(ctx context.Context) error
}

type runner struct {
	cfg     config.Config
	files   files
	places  service.PlacesClient
	connect func(ctx context.Context, dsn string) (database, error)
	logger  zerolog.Logger
}

func (r *runner) run(ctx context.Context) error {
	providers, err := spreadsheet.ReadProviders(r.files.input)
	if err != nil {
		return fmt.Errorf("load providers: %w", err)
	}

	r.logger.Info().Int("providers", len(providers)).Msg("starting enrichment of map url, coordinates and image url")
	result := service.NewEnricher(r.places, r.logger).Enrich(ctx, providers)
	r.logger.Info().
		Int("providers", len(result.Rows)).
		Int("failed", result.Failed()).
		Msg("finished enrichment of map url, coordinates and image url")

	if err := spreadsheet.WriteRows(r.files.snapshot, models.SnapshotColumns, result.Rows); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	r.persist(ctx, result.Rows)

	if err := spreadsheet.WriteRows(r.files.output, models.TableColumns, result.Rows); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	r.logger.Info().Str("file", r.files.output).Msg("enriched providers written")
	return nil
}

// persist appends the rows to PostgreSQL. Failures are logged only; the output file is written regardless.
func (r *runner) persist(ctx context.Context, rows []models.EnrichedRow) {
	conn, err := r.connect(ctx, r.cfg.DBSource())
	if err != nil {
		r.logger.Error().Err(err).Msg("error while connecting to PostgreSQL")
		return
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close PostgreSQL connection")
		}
	}()

	repo := repository.NewRepository(conn)
	n, err := service.NewPersistenceService(repo).Persist(ctx, rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to persist providers")
		return
	}

	count, err := repo.CountProviders(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Int64("appended", n).Msg("providers appended, table count unavailable")
		return
	}
	r.logger.Info().Int64("appended", n).Int64("table_rows", count).Msg("providers appended")
}
