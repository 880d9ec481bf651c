package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"provider-enricher/internal/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrichedRows(n int) []models.EnrichedRow {
	rows := make([]models.EnrichedRow, n)
	for i := range rows {
		id := int64(i + 1)
		rows[i] = models.EnrichedRow{
			Provider:  models.Provider{ID: &id, Province: "Jawa Barat", City: "Bandung", Name: fmt.Sprintf("RS %d", i+1), Address: "Jl. Dago"},
			QueryText: fmt.Sprintf("RS %d, Jl. Dago, Bandung", i+1),
			PlaceID:   fmt.Sprintf("ChIJ-%d", i+1),
			Latitude:  "-6.9",
			Longitude: "107.6",
		}
	}
	return rows
}

func TestRepository_EnsureTable(t *testing.T) {
	tests := []struct {
		name      string
		mockError error
	}{
		{name: "table created"},
		{name: "exec error", mockError: fmt.Errorf("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS public.list_rumah_sakit"))
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
			}

			err = NewRepository(mock).EnsureTable(context.Background())

			if tt.mockError != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to create table")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AppendProviders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(ProviderTable, models.TableColumns).WillReturnResult(3)

	n, err := NewRepository(mock).AppendProviders(context.Background(), enrichedRows(3))

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AppendProviders_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	n, err := NewRepository(mock).AppendProviders(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AppendProviders_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(ProviderTable, models.TableColumns).WillReturnError(fmt.Errorf("copy failed"))

	_, err = NewRepository(mock).AppendProviders(context.Background(), enrichedRows(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to copy providers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountProviders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM public.list_rumah_sakit")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := NewRepository(mock).CountProviders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
