// Package domain holds the persisted candidate model and gateway ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the candidate lifecycle state
type Status string

// Lifecycle states. Fusion writes move a candidate to StatusScored but
// never regress a later state back to it
const (
	StatusIdentified Status = "identified"
	StatusScored     Status = "scored"
	StatusContacted  Status = "contacted"
	StatusPlaced     Status = "placed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusIdentified, StatusScored, StatusContacted, StatusPlaced:
		return true
	}
	return false
}

// Profile is the merged best-effort snapshot written with an upsert.
// Empty fields never overwrite stored non-empty values
type Profile struct {
	Name     string
	Title    string
	Company  string
	Location string
	Notes    string
}

// Score is the openness estimate attached to a candidate
type Score struct {
	Score      float64
	Confidence float64
	Reasoning  string
}

// Candidate is the persisted entity, unique per identity key
type Candidate struct {
	ID            uuid.UUID `json:"id"`
	IdentityKey   string    `json:"identity_key"`
	Name          string    `json:"name,omitempty"`
	Title         string    `json:"title,omitempty"`
	Company       string    `json:"company,omitempty"`
	Location      string    `json:"location,omitempty"`
	Status        Status    `json:"status"`
	OpennessScore float64   `json:"openness_score"`
	Confidence    float64   `json:"confidence"`
	Reasoning     string    `json:"reasoning,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SignalInput is one signal row to append under a candidate
type SignalInput struct {
	Source     string
	SignalType string
	Content    string
	DetectedAt time.Time
	Data       map[string]any
}

// SignalRow is a persisted signal. Append-only; rows are removed only by
// cascading deletion of the owning candidate
type SignalRow struct {
	ID          uuid.UUID      `json:"id"`
	CandidateID uuid.UUID      `json:"candidate_id"`
	Source      string         `json:"source"`
	SignalType  string         `json:"signal_type"`
	Content     string         `json:"content,omitempty"`
	DetectedAt  *time.Time     `json:"detected_at,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CandidateWithSignals is the detail view returned by Get
type CandidateWithSignals struct {
	Candidate
	Signals []SignalRow `json:"signals"`
}

// ListFilter narrows and pages the candidate listing
type ListFilter struct {
	Status   Status
	MinScore float64
	Page     int
	PageSize int
}
