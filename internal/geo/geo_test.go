package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineSamePointIsZero(t *testing.T) {
	for _, p := range []Point{
		{0, 0},
		{39.2904, -76.6122},
		{-33.8688, 151.2093},
		{90, 0},
	} {
		assert.Zero(t, HaversineKm(p, p), p.String())
	}
}

func TestHaversineSymmetric(t *testing.T) {
	pairs := [][2]Point{
		{{39.2904, -76.6122}, {39.30, -76.61}},
		{{37.4419, -122.1430}, {40.7128, -74.0060}},
		{{-33.8688, 151.2093}, {51.5074, -0.1278}},
	}
	for _, p := range pairs {
		assert.InDelta(t, HaversineKm(p[0], p[1]), HaversineKm(p[1], p[0]), 1e-9)
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	// Baltimore downtown to a point ~1.08 km to the north.
	d := HaversineKm(Point{39.2904, -76.6122}, Point{39.30, -76.61})
	assert.InDelta(t, 1.084, d, 0.005)

	// One degree of latitude along a meridian.
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, HaversineKm(Point{10, 20}, Point{11, 20}), 1e-6)

	// Antipodes are half the circumference apart.
	assert.InDelta(t, math.Pi*EarthRadiusKm, HaversineKm(Point{0, 0}, Point{0, 180}), 1e-6)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{39.29, -76.61}.Valid())
	assert.False(t, Point{91, 0}.Valid())
	assert.False(t, Point{0, -181}.Valid())
	assert.False(t, Point{math.NaN(), 0}.Valid())
}
