package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKnownPairs(t *testing.T) {
	paris := Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	london := Coordinates{Latitude: 51.5074, Longitude: -0.1278}

	assert.InDelta(t, 343.5, Distance(paris, london), 1.0)

	equator := Coordinates{}
	quarter := Coordinates{Latitude: 0, Longitude: 90}
	assert.InDelta(t, EarthRadiusKm*3.141592653589793/2, Distance(equator, quarter), 0.001)
}

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := [][2]Coordinates{
		{{Latitude: -17.8292, Longitude: 31.0522}, {Latitude: 40.7128, Longitude: -74.0060}},
		{{Latitude: 89.9, Longitude: 179.9}, {Latitude: -89.9, Longitude: -179.9}},
		{{Latitude: 0, Longitude: 0}, {Latitude: 0.0001, Longitude: 0.0001}},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	for _, c := range []Coordinates{{}, {Latitude: 52.52, Longitude: 13.41}, {Latitude: -90, Longitude: 180}} {
		assert.Equal(t, 0.0, Distance(c, c))
	}
}
