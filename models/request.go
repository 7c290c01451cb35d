package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRequest = errors.New("invalid analysis request")

// AnalysisRequest is the body accepted by both analysis endpoints. Coordinates
// are optional but must come as a pair.
type AnalysisRequest struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

func (r *AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidRequest)
	}

	if (r.Lat == nil) != (r.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be provided together", ErrInvalidRequest)
	}

	if r.Lat != nil {
		if *r.Lat < -90 || *r.Lat > 90 {
			return fmt.Errorf("%w: lat must be between -90 and 90", ErrInvalidRequest)
		}
		if *r.Lng < -180 || *r.Lng > 180 {
			return fmt.Errorf("%w: lng must be between -180 and 180", ErrInvalidRequest)
		}
	}

	return nil
}

// Location returns the pinned point, nil when the request carries no coordinates.
func (r *AnalysisRequest) Location() *Location {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}

	loc := NewGeoPoint(*r.Lng, *r.Lat)

	return &loc
}
