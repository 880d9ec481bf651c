package service

import (
	"context"
	"strings"

	"provider-enricher/internal/models"

	"github.com/rs/zerolog"
)

// CandidateFinder runs free-text place queries.
type CandidateFinder interface {
	FindPlace(ctx context.Context, input string) ([]models.Candidate, error)
}

// QueryStrategy derives one lookup text from a provider.
type QueryStrategy struct {
	Name  string
	Query func(models.Provider) string
}

// DefaultStrategies is the resolution ladder, tried in order until one yields a healthcare candidate.
var DefaultStrategies = []QueryStrategy{
	{
		Name:  "name_address_city",
		Query: func(p models.Provider) string { return p.QueryText() },
	},
	{
		Name:  "name_city",
		Query: func(p models.Provider) string { return p.Name + ", " + p.City },
	},
	{
		Name:  "address",
		Query: func(p models.Provider) string { return p.Address },
	},
}

// Resolution is the outcome of resolving one provider to a place id.
// When Resolved is false, PlaceID is empty and Attempts equals the number of strategies.
type Resolution struct {
	PlaceID  string
	Resolved bool
	Attempts int
	Strategy string
}

// Resolver picks the first healthcare candidate returned by the strategy ladder.
type Resolver struct {
	finder     CandidateFinder
	strategies []QueryStrategy
	logger     zerolog.Logger
}

// NewResolver creates a resolver. DefaultStrategies are used when no strategies are given.
func NewResolver(finder CandidateFinder, logger zerolog.Logger, strategies ...QueryStrategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	return &Resolver{finder: finder, strategies: strategies, logger: logger}
}

// Resolve tries each strategy in order. A failed query counts as an attempt without a qualifying candidate;
// retries are immediate.
func (r *Resolver) Resolve(ctx context.Context, p models.Provider) Resolution {
	var res Resolution

	for _, strategy := range r.strategies {
		res.Attempts++

		query := strategy.Query(p)
		if strings.TrimSpace(query) == "" {
			r.logger.Debug().Str("strategy", strategy.Name).Msg("resolver: empty query, skipping")
			continue
		}

		candidates, err := r.finder.FindPlace(ctx, query)
		if err != nil {
			r.logger.Debug().Err(err).Str("strategy", strategy.Name).Msg("resolver: lookup failed")
			continue
		}

		for _, c := range candidates {
			if IsHealthcarePlace(c.Types) {
				res.PlaceID = c.PlaceID
				res.Resolved = true
				res.Strategy = strategy.Name
				return res
			}
		}

		r.logger.Debug().Str("strategy", strategy.Name).Int("candidates", len(candidates)).Msg("resolver: no healthcare candidate")
	}

	return res
}
