package repository

import (
	"context"
	"fmt"

	"provider-enricher/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProviderTable is the destination of the enriched provider rows.
var ProviderTable = pgx.Identifier{"public", "list_rumah_sakit"}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS public.list_rumah_sakit (
		id int8 NULL,
		province varchar(255) NULL,
		city varchar(255) NULL,
		name text NULL,
		address text NULL,
		map_url text NULL,
		latitude varchar(255) NULL,
		longitude varchar(255) NULL,
		image_url text NULL
	);
`

// DB is the part of a pgx connection or pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists enriched providers to PostgreSQL
type Repository struct {
	db DB
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// EnsureTable creates the provider table when it does not exist yet.
func (r *Repository) EnsureTable(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("repository: failed to create table: %w", err)
	}
	return nil
}

// AppendProviders bulk-inserts the rows with COPY. Existing rows are never checked, so appending twice duplicates.
func (r *Repository) AppendProviders(ctx context.Context, rows []models.EnrichedRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := r.db.CopyFrom(
		ctx,
		ProviderTable,
		models.TableColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rows[i].Values(models.TableColumns), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy providers: %w", err)
	}

	return n, nil
}

// CountProviders returns the number of rows in the provider table.
func (r *Repository) CountProviders(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM public.list_rumah_sakit").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count providers: %w", err)
	}
	return count, nil
}
