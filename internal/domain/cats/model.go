package cats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const GeoJSONPoint = "Point"

var (
	ErrInvalidPoint     = errors.New("location must be a GeoJSON Point with [longitude, latitude]")
	ErrInvalidBirthdate = errors.New("birthdate must be YYYY-MM-DD or RFC3339")
)

// Point es una coordenada geográfica (WGS84). En el wire: {"type":"Point","coordinates":[lon,lat]}.
type Point struct {
	Lon float64
	Lat float64
}

func NewPoint(lon, lat float64) (Point, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Point{}, ErrInvalidPoint
	}
	return Point{Lon: lon, Lat: lat}, nil
}

// PointFromGeoJSON valida type + coordinates.
func PointFromGeoJSON(typ string, coords []float64) (Point, error) {
	if typ != GeoJSONPoint || len(coords) != 2 {
		return Point{}, ErrInvalidPoint
	}
	return NewPoint(coords[0], coords[1])
}

// Coordinates devuelve el par [lon, lat] en orden GeoJSON.
func (p Point) Coordinates() []float64 {
	return []float64{p.Lon, p.Lat}
}

// ParsePoint acepta "lon,lat" o "[lon,lat]" (query string del bounding box).
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, ErrInvalidPoint
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	return NewPoint(lon, lat)
}

// BoundingBox es un rectángulo lon/lat; los bordes son inclusivos.
type BoundingBox struct {
	BottomLeft Point
	TopRight   Point
}

// NewBoundingBox normaliza las esquinas: el orden en que llegan no importa.
func NewBoundingBox(topRight, bottomLeft Point) BoundingBox {
	return BoundingBox{
		BottomLeft: Point{Lon: min(topRight.Lon, bottomLeft.Lon), Lat: min(topRight.Lat, bottomLeft.Lat)},
		TopRight:   Point{Lon: max(topRight.Lon, bottomLeft.Lon), Lat: max(topRight.Lat, bottomLeft.Lat)},
	}
}

func (b BoundingBox) Contains(p Point) bool {
	return p.Lon >= b.BottomLeft.Lon && p.Lon <= b.TopRight.Lon &&
		p.Lat >= b.BottomLeft.Lat && p.Lat <= b.TopRight.Lat
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", b.BottomLeft.Lon, b.BottomLeft.Lat, b.TopRight.Lon, b.TopRight.Lat)
}

// Cat es un gato registrado. Owner referencia a un User (no cascada desde acá).
type Cat struct {
	ID string

	Name      string
	Weight    float64
	Filename  string // referencia a imagen, opcional
	Birthdate time.Time
	Location  Point

	Owner string

	// Revision es el marcador interno del store; nunca se serializa.
	Revision int
}

// ParseBirthdate acepta fecha (YYYY-MM-DD) o timestamp RFC3339.
func ParseBirthdate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidBirthdate
}
