package profile

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/geo"
)

const geocodeTimeout = 5 * time.Second

type Service struct {
	store Store
	geo   geo.Geocoder
	log   *zap.Logger
}

// NewService builds the profile service. geocoder may be nil, in which case
// city changes never produce coordinates.
func NewService(store Store, geocoder geo.Geocoder, log *zap.Logger) *Service {
	return &Service{store: store, geo: geocoder, log: log}
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return s.store.Get(ctx, id)
}

// Update applies a partial update to the caller's profile. A new city without
// explicit coordinates is geocoded. When that fails the stale coordinates are
// dropped and the update still goes through.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (*Profile, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		in.City = &city
	}
	if in.apply(p) && in.Lat == nil {
		p.Lat, p.Lng = nil, nil
		if pt, ok := s.locate(ctx, userID, p.City); ok {
			p.Lat, p.Lng = &pt.Lat, &pt.Lng
		}
	}
	return s.store.Update(ctx, p)
}

func (s *Service) locate(ctx context.Context, userID, city string) (geo.Point, bool) {
	if s.geo == nil || city == "" {
		return geo.Point{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	pt, err := s.geo.Geocode(ctx, city)
	if err != nil {
		s.log.Warn("geocoding failed, saving profile without coordinates",
			zap.String("user_id", userID),
			zap.String("city", city),
			zap.Error(err),
		)
		return geo.Point{}, false
	}
	return pt, true
}
