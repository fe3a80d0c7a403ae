package stringer

import (
	"context"
	"math"
	"sort"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/geo"
)

const (
	DefaultRadiusKm = 25.0
	MinRadiusKm     = 1.0
	MaxRadiusKm     = 50.0
)

// SearchParams filter a proximity search. Nil optional fields do not filter.
type SearchParams struct {
	Origin        geo.Point
	RadiusKm      float64
	MinRating     *float64
	MaxPriceCents *int64
	RequireRush   bool
}

// Validate rejects out-of-range input. RadiusKm has no implicit default;
// callers fill in DefaultRadiusKm when the radius was not given.
func (p SearchParams) Validate() error {
	if !p.Origin.Valid() {
		return apperr.Validation("lat must be within [-90, 90] and lng within [-180, 180]")
	}
	if math.IsNaN(p.RadiusKm) || p.RadiusKm < MinRadiusKm || p.RadiusKm > MaxRadiusKm {
		return apperr.Validation("radius_km must be between %g and %g", MinRadiusKm, MaxRadiusKm)
	}
	if p.MinRating != nil && (math.IsNaN(*p.MinRating) || *p.MinRating < 1 || *p.MinRating > 5) {
		return apperr.Validation("min_rating must be between 1 and 5")
	}
	if p.MaxPriceCents != nil && *p.MaxPriceCents < 0 {
		return apperr.Validation("max_price_cents must be at least 0")
	}
	return nil
}

// Rank computes the distance of every candidate from the origin, drops those
// that fail a filter and returns the rest nearest first. Candidates at equal
// distance keep their input order. The result is never nil.
func Rank(p SearchParams, candidates []Candidate) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		d := geo.HaversineKm(p.Origin, c.Location)
		if d > p.RadiusKm {
			continue
		}
		// no reviews never satisfies a rating floor
		if p.MinRating != nil && (c.ReviewCount == 0 || c.AvgRating < *p.MinRating) {
			continue
		}
		if p.MaxPriceCents != nil && c.BasePriceCents > *p.MaxPriceCents {
			continue
		}
		if p.RequireRush && !c.AcceptsRush {
			continue
		}
		results = append(results, Result{Candidate: c, DistanceKm: d})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results
}

// CandidateLister loads every discoverable stringer.
type CandidateLister interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
}

type Searcher struct {
	store   CandidateLister
	log     *zap.Logger
	queries tally.Counter
	matches tally.Histogram
}

func NewSearcher(store CandidateLister, log *zap.Logger, scope tally.Scope) *Searcher {
	s := scope.SubScope("search")
	return &Searcher{
		store:   store,
		log:     log,
		queries: s.Counter("queries"),
		matches: s.Histogram("matches", tally.ValueBuckets{0, 1, 5, 10, 25, 50, 100}),
	}
}

// Search returns the stringers matching p, nearest first.
func (s *Searcher) Search(ctx context.Context, p SearchParams) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s.queries.Inc(1)

	candidates, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	results := Rank(p, candidates)
	s.matches.RecordValue(float64(len(results)))
	s.log.Debug("stringer search",
		zap.Stringer("origin", p.Origin),
		zap.Float64("radius_km", p.RadiusKm),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(results)),
	)
	return results, nil
}
