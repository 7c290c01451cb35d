package models

import (
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

type Location struct {
	Lon, Lat float64
}

func NewGeoPoint(lng, lat float64) Location {
	return Location{
		Lon: lng,
		Lat: lat,
	}
}

// WKT renders the location as a well known text point, e.g. "POINT (77.7172 11.341)".
func (loc Location) WKT() (string, error) {
	point, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{loc.Lon, loc.Lat})
	if err != nil {
		return "", fmt.Errorf("invalid point: %w", err)
	}

	return wkt.Marshal(point)
}

type Listing struct {
	ProjectName string `json:"project_name"`
	Developer   string `json:"developer"`
	Details     string `json:"details"`
	SourceURL   string `json:"source_url"`
}

func (l *Listing) Stringify() string {
	return fmt.Sprintf("Project: %s, Developer: %s, Details: %s, Source: %s", l.ProjectName, l.Developer, l.Details, l.SourceURL)
}

type ListingsResponse struct {
	Listings []Listing `json:"listings"`
}

type HedonicFactor struct {
	Factor        string `json:"factor"`
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

func (h *HedonicFactor) Stringify() string {
	return fmt.Sprintf("%s (%d/5): %s", h.Factor, h.Score, h.Justification)
}

type ValuationReport struct {
	Address               string          `json:"address"`
	FairValueEstimate     string          `json:"fair_value_estimate"`
	HedonicAnalysis       []HedonicFactor `json:"hedonic_analysis"`
	GrowthTrends          string          `json:"growth_trends"`
	ProjectedAppreciation string          `json:"projected_appreciation"`
	Sources               []string        `json:"sources"`
}

func (v *ValuationReport) Stringify() string {
	var report strings.Builder

	report.WriteString("Address: " + v.Address + "\n")
	report.WriteString("Fair value estimate: " + v.FairValueEstimate + "\n")
	report.WriteString("Hedonic analysis:\n")
	for _, factor := range v.HedonicAnalysis {
		report.WriteString("\t" + factor.Stringify() + "\n")
	}
	report.WriteString("Growth trends: " + v.GrowthTrends + "\n")
	report.WriteString("Projected appreciation: " + v.ProjectedAppreciation + "\n")
	report.WriteString("Sources: " + strings.Join(v.Sources, ", ") + "\n")

	return report.String()
}
