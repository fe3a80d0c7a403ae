package stringer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/geo"
)

var baltimore = geo.Point{Lat: 39.2904, Lng: -76.6122}

func candidate(id string, lat, lng float64) Candidate {
	return Candidate{ID: id, Location: geo.Point{Lat: lat, Lng: lng}, BasePriceCents: 2500}
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestRankScenarioA(t *testing.T) {
	c := candidate("s1", 39.30, -76.61)
	c.AcceptsRush = false

	p := SearchParams{Origin: baltimore, RadiusKm: 10}
	require.NoError(t, p.Validate())
	got := Rank(p, []Candidate{c})

	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, int64(2500), got[0].BasePriceCents)
	assert.InDelta(t, 1.084, got[0].DistanceKm, 0.005)
}

func TestRankRespectsRadius(t *testing.T) {
	candidates := []Candidate{
		candidate("near", 39.30, -76.61),
		candidate("edge", 39.38, -76.6122),   // ~10 km north
		candidate("far", 39.9526, -75.1652),  // Philadelphia
		candidate("antipode", -39.29, 103.39),
	}
	for _, radius := range []float64{1, 5, 10, 25, 50} {
		p := SearchParams{Origin: baltimore, RadiusKm: radius}
		for _, r := range Rank(p, candidates) {
			assert.LessOrEqual(t, r.DistanceKm, radius, "%s at radius %g", r.ID, radius)
		}
	}

	got := Rank(SearchParams{Origin: baltimore, RadiusKm: 50}, candidates)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"near", "edge"}, ids)
}

func TestRankSortsByDistanceStable(t *testing.T) {
	candidates := []Candidate{
		candidate("c", 39.35, -76.6122),
		candidate("a1", 39.30, -76.6122),
		candidate("b", 39.32, -76.6122),
		candidate("a2", 39.30, -76.6122),
	}
	got := Rank(SearchParams{Origin: baltimore, RadiusKm: 50}, candidates)
	require.Len(t, got, 4)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
	}
	// equal distances keep input order
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)
}

func TestRankFilters(t *testing.T) {
	rated := candidate("rated", 39.30, -76.61)
	rated.Rating = Rating{AvgRating: 4.5, ReviewCount: 10}
	rated.AcceptsRush = true

	unrated := candidate("unrated", 39.30, -76.61)

	pricey := candidate("pricey", 39.30, -76.61)
	pricey.BasePriceCents = 6000
	pricey.Rating = Rating{AvgRating: 5, ReviewCount: 1}

	low := candidate("low", 39.30, -76.61)
	low.Rating = Rating{AvgRating: 2.9, ReviewCount: 3}

	all := []Candidate{rated, unrated, pricey, low}
	ids := func(rs []Result) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name string
		p    SearchParams
		want []string
	}{
		{"no filters", SearchParams{}, []string{"rated", "unrated", "pricey", "low"}},
		{"min rating drops unrated and low", SearchParams{MinRating: f64(3)}, []string{"rated", "pricey"}},
		{"max price", SearchParams{MaxPriceCents: i64(2500)}, []string{"rated", "unrated", "low"}},
		{"max price zero", SearchParams{MaxPriceCents: i64(0)}, []string{}},
		{"rush", SearchParams{RequireRush: true}, []string{"rated"}},
		{"combined", SearchParams{MinRating: f64(4), MaxPriceCents: i64(3000)}, []string{"rated"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.p.Origin = baltimore
			tt.p.RadiusKm = 25
			assert.Equal(t, tt.want, ids(Rank(tt.p, all)))
		})
	}
}

func TestRankEmptyIsNotNil(t *testing.T) {
	got := Rank(SearchParams{Origin: baltimore, RadiusKm: 1}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidate(t *testing.T) {
	require.NoError(t, SearchParams{Origin: baltimore, RadiusKm: DefaultRadiusKm}.Validate())
	require.NoError(t, SearchParams{Origin: baltimore, RadiusKm: MinRadiusKm}.Validate())
	require.NoError(t, SearchParams{Origin: baltimore, RadiusKm: MaxRadiusKm}.Validate())

	bad := []SearchParams{
		{Origin: geo.Point{Lat: 91, Lng: 0}},
		{Origin: geo.Point{Lat: 0, Lng: 181}},
		{Origin: baltimore, RadiusKm: 0},
		{Origin: baltimore, RadiusKm: 0.5},
		{Origin: baltimore, RadiusKm: 51},
		{Origin: baltimore, RadiusKm: 10, MinRating: f64(0)},
		{Origin: baltimore, RadiusKm: 10, MinRating: f64(5.5)},
		{Origin: baltimore, RadiusKm: 10, MaxPriceCents: i64(-1)},
	}
	for _, p := range bad {
		err := p.Validate()
		assert.True(t, apperr.Is(err, apperr.KindValidation), "%+v: %v", p, err)
	}
}

type listerFunc func(ctx context.Context) ([]Candidate, error)

func (f listerFunc) ListCandidates(ctx context.Context) ([]Candidate, error) { return f(ctx) }

func TestSearcherCountsQueries(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	s := NewSearcher(listerFunc(func(context.Context) ([]Candidate, error) {
		return []Candidate{candidate("s1", 39.30, -76.61)}, nil
	}), zap.NewNop(), scope)

	got, err := s.Search(context.Background(), SearchParams{Origin: baltimore, RadiusKm: DefaultRadiusKm})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = s.Search(context.Background(), SearchParams{Origin: baltimore, RadiusKm: 100})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	counters := scope.Snapshot().Counters()
	require.Contains(t, counters, "search.queries+")
	assert.Equal(t, int64(1), counters["search.queries+"].Value())
}

func TestSearcherPropagatesStoreFailure(t *testing.T) {
	boom := apperr.Internal("failed to fetch stringers", errors.New("connection refused"))
	s := NewSearcher(listerFunc(func(context.Context) ([]Candidate, error) {
		return nil, boom
	}), zap.NewNop(), tally.NoopScope)

	_, err := s.Search(context.Background(), SearchParams{Origin: baltimore, RadiusKm: DefaultRadiusKm})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
