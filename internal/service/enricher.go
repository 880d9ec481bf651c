package service

import (
	"context"
	"errors"
	"fmt"

	"provider-enricher/internal/models"

	"github.com/rs/zerolog"
)

// Stage names a step of the per-row enrichment.
type Stage string

const (
	StageResolveCandidate Stage = "resolve_candidate"
	StageFetchDetail      Stage = "fetch_detail"
	StageExtractCoords    Stage = "extract_coords"
	StageDeriveImageURL   Stage = "derive_image_url"
	StageDone             Stage = "done"
)

var (
	// ErrUnresolved means no strategy produced a healthcare candidate.
	ErrUnresolved = errors.New("no healthcare candidate found")
	// ErrNoGeometry means the place detail carried no coordinates.
	ErrNoGeometry = errors.New("place detail has no geometry")
	// ErrNoPhotos means the place detail carried no photo reference.
	ErrNoPhotos = errors.New("place detail has no photos")
)

// PlacesClient is the subset of the Places API used for enrichment.
type PlacesClient interface {
	CandidateFinder
	PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetail, error)
	PhotoURL(ctx context.Context, photoReference string) (string, error)
}

// RowOutcome records how far one row got. Stage is StageDone on success, otherwise the stage that failed.
type RowOutcome struct {
	Index    int
	Name     string
	Stage    Stage
	Attempts int
	Err      error
}

// OK reports whether the row went through every stage.
func (o RowOutcome) OK() bool {
	return o.Err == nil
}

// BatchResult holds one row and one outcome per input provider, in input order.
type BatchResult struct {
	Rows     []models.EnrichedRow
	Outcomes []RowOutcome
}

// Failed counts the rows that stopped before StageDone.
func (b BatchResult) Failed() int {
	n := 0
	for _, o := range b.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Enricher fills the lookup fields of each provider row.
type Enricher struct {
	places   PlacesClient
	resolver *Resolver
	logger   zerolog.Logger
}

// NewEnricher creates an enricher that resolves candidates with the default strategies.
func NewEnricher(places PlacesClient, logger zerolog.Logger) *Enricher {
	return &Enricher{
		places:   places,
		resolver: NewResolver(places, logger),
		logger:   logger,
	}
}

// Enrich processes the providers sequentially. A failing row never stops the batch.
func (e *Enricher) Enrich(ctx context.Context, providers []models.Provider) BatchResult {
	result := BatchResult{
		Rows:     make([]models.EnrichedRow, 0, len(providers)),
		Outcomes: make([]RowOutcome, 0, len(providers)),
	}

	for i, p := range providers {
		e.logger.Info().Int("index", i).Str("name", p.Name).Msg("processing provider")

		row, outcome := e.EnrichRow(ctx, i, p)
		if !outcome.OK() {
			e.logger.Error().
				Err(outcome.Err).
				Int("index", i).
				Str("name", p.Name).
				Str("stage", string(outcome.Stage)).
				Msg("error processing provider")
		}

		result.Rows = append(result.Rows, row)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result
}

// EnrichRow runs the stages for a single provider and stops at the first failure.
// Fields set by earlier stages are kept on failure.
func (e *Enricher) EnrichRow(ctx context.Context, index int, p models.Provider) (models.EnrichedRow, RowOutcome) {
	row := models.NewEnrichedRow(p)
	outcome := RowOutcome{Index: index, Name: p.Name}

	fail := func(stage Stage, err error) (models.EnrichedRow, RowOutcome) {
		outcome.Stage = stage
		outcome.Err = err
		return row, outcome
	}

	res := e.resolver.Resolve(ctx, p)
	outcome.Attempts = res.Attempts
	if !res.Resolved {
		return fail(StageResolveCandidate, fmt.Errorf("service: %w after %d attempts", ErrUnresolved, res.Attempts))
	}
	row.PlaceID = res.PlaceID

	detail, err := e.places.PlaceDetails(ctx, res.PlaceID)
	if err != nil {
		return fail(StageFetchDetail, fmt.Errorf("service: fetch detail: %w", err))
	}
	row.MapURL = detail.URL

	if detail.Geometry == nil {
		return fail(StageExtractCoords, fmt.Errorf("service: %w", ErrNoGeometry))
	}
	row.Latitude = models.FormatCoordinate(detail.Geometry.Location.Lat)
	row.Longitude = models.FormatCoordinate(detail.Geometry.Location.Lng)

	if len(detail.Photos) == 0 {
		return fail(StageDeriveImageURL, fmt.Errorf("service: %w", ErrNoPhotos))
	}
	imageURL, err := e.places.PhotoURL(ctx, detail.Photos[0].PhotoReference)
	if err != nil {
		return fail(StageDeriveImageURL, fmt.Errorf("service: derive image url: %w", err))
	}
	row.ImageURL = imageURL

	outcome.Stage = StageDone
	return row, outcome
}
