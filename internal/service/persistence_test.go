package service

import (
	"context"
	"testing"

	"provider-enricher/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProviderStore is a mock implementation of the ProviderStore interface
type MockProviderStore struct {
	mock.Mock
}

// EnsureTable implements ProviderStore.
func (m *MockProviderStore) EnsureTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AppendProviders implements ProviderStore.
func (m *MockProviderStore) AppendProviders(ctx context.Context, rows []models.EnrichedRow) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}

func TestPersistenceService_Persist(t *testing.T) {
	rows := []models.EnrichedRow{
		models.NewEnrichedRow(models.Provider{Name: "RS Satu"}),
		models.NewEnrichedRow(models.Provider{Name: "RS Dua"}),
	}

	tests := []struct {
		name         string
		ensureError  error
		appendError  error
		expectAppend bool
		expected     int64
		errContains  string
	}{
		{
			name:         "table ensured then rows appended",
			expectAppend: true,
			expected:     2,
		},
		{
			name:        "ensure table fails",
			ensureError: assert.AnError,
			errContains: "ensure table",
		},
		{
			name:         "append fails",
			appendError:  assert.AnError,
			expectAppend: true,
			errContains:  "append providers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			store := new(MockProviderStore)
			store.On("EnsureTable", mock.Anything).Return(tt.ensureError)
			if tt.expectAppend {
				var n int64
				if tt.appendError == nil {
					n = int64(len(rows))
				}
				store.On("AppendProviders", mock.Anything, rows).Return(n, tt.appendError)
			}
			service := NewPersistenceService(store)

			// Execute
			n, err := service.Persist(context.Background(), rows)

			// Assert
			if tt.errContains != "" {
				assert.Error(t, err)
				assert.ErrorIs(t, err, assert.AnError)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, n)
			}
			store.AssertExpectations(t)
			if !tt.expectAppend {
				store.AssertNotCalled(t, "AppendProviders", mock.Anything, mock.Anything)
			}
		})
	}
}
