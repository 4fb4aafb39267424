// internal/workers/analysis/compare-versions/models.go
package compareversions

import "mission-analyzer/internal/scoring"

type Input struct {
	Versions []scoring.Version `json:"versions"`
	// RequireResult turns "not enough versions" into an INSUFFICIENT_VERSIONS
	// BPMN error instead of comparable=false.
	RequireResult bool `json:"requireResult"`
}

type Output struct {
	Comparable bool                `json:"comparable"`
	Comparison *scoring.Comparison `json:"comparison"`
	// Versions echoes the input with scores filled in.
	Versions []scoring.Version `json:"versions"`
}
