package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// AnalysisID identifies one orchestrated analysis run.
	AnalysisID ID
	// MetricKey names an outcome metric dimension (e.g. "session_duration").
	MetricKey ID
	// GroupLabel names an outcome group ("successful" / "failed" or a variation).
	GroupLabel ID
)

// String conversions for domain IDs
func (id AnalysisID) String() string { return ID(id).String() }
func (k MetricKey) String() string   { return ID(k).String() }
func (g GroupLabel) String() string  { return ID(g).String() }

// NewAnalysisID creates a fresh analysis identifier
func NewAnalysisID() AnalysisID {
	return AnalysisID(NewID())
}
