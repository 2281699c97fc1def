package cats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	cases := []struct {
		in   string
		want Point
		ok   bool
	}{
		{"24.9,60.2", Point{Lon: 24.9, Lat: 60.2}, true},
		{"[24.9, 60.2]", Point{Lon: 24.9, Lat: 60.2}, true},
		{" -180,-90 ", Point{Lon: -180, Lat: -90}, true},
		{"24.9", Point{}, false},
		{"a,b", Point{}, false},
		{"181,0", Point{}, false},
		{"0,91", Point{}, false},
		{"NaN,NaN", Point{}, false},
		{"24.9,NaN", Point{}, false},
		{"Inf,0", Point{}, false},
	}
	for _, tc := range cases {
		got, err := ParsePoint(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidPoint, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestPointFromGeoJSON(t *testing.T) {
	p, err := PointFromGeoJSON("Point", []float64{24.9, 60.2})
	require.NoError(t, err)
	assert.Equal(t, []float64{24.9, 60.2}, p.Coordinates())

	_, err = PointFromGeoJSON("LineString", []float64{24.9, 60.2})
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = PointFromGeoJSON("Point", []float64{24.9})
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = PointFromGeoJSON("Point", []float64{math.NaN(), 60.2})
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestBoundingBox_InclusiveAndNormalized(t *testing.T) {
	// esquinas invertidas: se normalizan
	box := NewBoundingBox(Point{Lon: 24, Lat: 60}, Point{Lon: 25, Lat: 61})
	assert.Equal(t, Point{Lon: 24, Lat: 60}, box.BottomLeft)
	assert.Equal(t, Point{Lon: 25, Lat: 61}, box.TopRight)
	assert.Equal(t, "[24,60]-[25,61]", box.String())

	assert.True(t, box.Contains(Point{Lon: 24.5, Lat: 60.5}))
	assert.True(t, box.Contains(Point{Lon: 24, Lat: 60}), "bottom-left corner")
	assert.True(t, box.Contains(Point{Lon: 25, Lat: 61}), "top-right corner")
	assert.True(t, box.Contains(Point{Lon: 25, Lat: 60.3}), "right edge")
	assert.False(t, box.Contains(Point{Lon: 25.01, Lat: 60.5}))
	assert.False(t, box.Contains(Point{Lon: 24.5, Lat: 59.99}))
}

func TestParseBirthdate(t *testing.T) {
	d, err := ParseBirthdate("2020-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseBirthdate("2020-05-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC), d)

	_, err = ParseBirthdate("01/05/2020")
	assert.ErrorIs(t, err, ErrInvalidBirthdate)
}
