package view

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geobiz/internal/model"
)

// DefaultZoom is the zoom level used when the map is centered on a point.
const DefaultZoom = 15

// BoundingBox is a lat/lng rectangle.
type BoundingBox struct {
	SouthWest model.LatLng `json:"southWest"`
	NorthEast model.LatLng `json:"northEast"`
}

// Viewport positions a map over a result set. Center is zero when neither
// the caller nor any business supplied a usable point. Bounds is nil when
// no business has a usable latitude.
type Viewport struct {
	Center model.LatLng `json:"center"`
	Zoom   int          `json:"zoom"`
	Bounds *BoundingBox `json:"bounds,omitempty"`
}

// Empty reports whether there is nothing to show on a map.
func (v Viewport) Empty() bool {
	return v.Center.Lat == 0 && v.Bounds == nil
}

// Fit computes the viewport for businesses. A caller location with a
// non-zero latitude wins as the center; otherwise the first business with a
// non-zero latitude is used. Bounds cover every business with a non-zero
// latitude.
func Fit(businesses []model.Business, caller *model.LatLng) Viewport {
	var v Viewport

	switch {
	case caller != nil && caller.Lat != 0:
		v.Center = *caller
	default:
		for _, b := range businesses {
			if b.Location.Lat != 0 {
				v.Center = b.Location
				break
			}
		}
	}
	if v.Center.Lat != 0 {
		v.Zoom = DefaultZoom
	}

	flat := make([]float64, 0, 2*len(businesses))
	for _, b := range businesses {
		if b.Location.Lat == 0 {
			continue
		}
		flat = append(flat, b.Location.Lng, b.Location.Lat)
	}
	if len(flat) > 0 {
		bounds := geom.NewMultiPointFlat(geom.XY, flat).Bounds()
		v.Bounds = &BoundingBox{
			SouthWest: model.LatLng{Lat: bounds.Min(1), Lng: bounds.Min(0)},
			NorthEast: model.LatLng{Lat: bounds.Max(1), Lng: bounds.Max(0)},
		}
	}

	return v
}

// Markers returns the businesses that can be pinned on a map: those whose
// location is not the (0, 0) placeholder.
func Markers(businesses []model.Business) []model.Business {
	out := make([]model.Business, 0, len(businesses))
	for _, b := range businesses {
		if b.Location.Lat == 0 && b.Location.Lng == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}
