// Package geo converts location pins between GeoJSON (API) and WKB
// (storage).
package geo

import (
	"encoding/binary"
	"errors"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

var ErrNotPoint = errors.New("geometry must be a GeoJSON Point")

// ParsePoint parses a GeoJSON Point into WKB. An empty string is no pin.
func ParsePoint(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	p, ok := g.(*geom.Point)
	if !ok || p.Empty() {
		return nil, ErrNotPoint
	}
	if lng, lat := p.X(), p.Y(); lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return nil, errors.New("coordinates out of range")
	}
	return wkb.Marshal(p, binary.LittleEndian)
}

// ToGeoJSON renders stored WKB; empty input gives an empty string.
func ToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
