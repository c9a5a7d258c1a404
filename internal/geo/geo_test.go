package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Estadio Nacional, Santiago and a point ~500m away.
const (
	stadiumLat = -33.4649
	stadiumLng = -70.6107
)

func TestDistanceZero(t *testing.T) {
	assert.Zero(t, DistanceM(stadiumLat, stadiumLng, stadiumLat, stadiumLng))
}

func TestDistanceKnownPoints(t *testing.T) {
	// One degree of latitude is ~111.2 km.
	d := DistanceM(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 200)
}

func TestWithinRadius(t *testing.T) {
	// ~0.0009 degrees latitude is about 100m.
	nearLat := stadiumLat + 0.0009
	farLat := stadiumLat + 0.01 // ~1.1km

	assert.True(t, WithinRadius(stadiumLat, stadiumLng, nearLat, stadiumLng, 150))
	assert.False(t, WithinRadius(stadiumLat, stadiumLng, farLat, stadiumLng, 150))
}
