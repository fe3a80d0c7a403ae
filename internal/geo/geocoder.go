package geo

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

var ErrNoGeocodeResult = errors.New("no geocoding result")

// Geocoder resolves a free-text place (a city, an address) to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Point, error)
}

type googleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder returns a Geocoder backed by the Google Maps geocoding API.
func NewGoogleGeocoder(apiKey string) (Geocoder, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &googleGeocoder{client: c}, nil
}

func (g *googleGeocoder) Geocode(ctx context.Context, place string) (Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		return Point{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return Point{}, ErrNoGeocodeResult
	}
	loc := results[0].Geometry.Location
	return Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
