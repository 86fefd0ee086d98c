package presentation

import (
	"errors"
	"fmt"
	"math"
)

const (
	tileSize = 512

	maxLatitude = 85.051129
	minZoom     = 0
	maxZoom     = 22
)

var ErrInvalidViewport = errors.New("invalid viewport")

// WebMercator is the projection used by slippy-map widgets with 512px tiles.
type WebMercator struct {
	CenterLongitude float64
	CenterLatitude  float64
	Zoom            float64
	Width           float64
	Height          float64
}

// DefaultViewport frames Cambridge and Boston.
func DefaultViewport() WebMercator {
	return WebMercator{
		CenterLongitude: -71.10253138178822,
		CenterLatitude:  42.36929373398382,
		Zoom:            12,
		Width:           1024,
		Height:          768,
	}
}

func (v WebMercator) Validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidViewport)
	case v.Zoom < minZoom || v.Zoom > maxZoom:
		return fmt.Errorf("%w: zoom out of range", ErrInvalidViewport)
	case v.CenterLongitude < -180 || v.CenterLongitude > 180:
		return fmt.Errorf("%w: longitude out of range", ErrInvalidViewport)
	case math.Abs(v.CenterLatitude) > maxLatitude:
		return fmt.Errorf("%w: latitude out of range", ErrInvalidViewport)
	}

	return nil
}

func (v WebMercator) worldSize() float64 {
	return tileSize * math.Pow(2, v.Zoom)
}

func (v WebMercator) world(longitude float64, latitude float64) (float64, float64) {
	latitude = math.Max(-maxLatitude, math.Min(maxLatitude, latitude))
	size := v.worldSize()

	x := (longitude + 180) / 360 * size
	sinLatitude := math.Sin(latitude * math.Pi / 180)
	y := (0.5 - math.Log((1+sinLatitude)/(1-sinLatitude))/(4*math.Pi)) * size

	return x, y
}

func (v WebMercator) Project(longitude float64, latitude float64) (float64, float64) {
	x, y := v.world(longitude, latitude)
	centerX, centerY := v.world(v.CenterLongitude, v.CenterLatitude)

	return x - centerX + v.Width/2, y - centerY + v.Height/2
}
