// Package domain holds the fusion run types and ports
package domain

import (
	"context"

	"github.com/google/uuid"

	"openscout/internal/core/rubric"
	"openscout/internal/core/signal"
	cdom "openscout/internal/services/candidates/domain"
)

// Input is the run context handed to the orchestrator
type Input struct {
	Industry  string
	RoleLevel string
	MinScore  float64
	Limit     int
}

// Bucket is the transient per-person aggregation for one run.
// Never persisted directly
type Bucket struct {
	IdentityKey string
	Profile     rubric.Profile
	Signals     []signal.Record
}

// ScoredBucket pairs a bucket with its openness estimate
type ScoredBucket struct {
	Bucket
	Score rubric.Score
}

// CandidateSummary is one persisted result of a fusion run
type CandidateSummary struct {
	ID      uuid.UUID `json:"id"`
	Key     string    `json:"identity_key"`
	Name    string    `json:"name,omitempty"`
	Title   string    `json:"title,omitempty"`
	Company string    `json:"company,omitempty"`
	Score   float64   `json:"score"`
	Status  string    `json:"status"`
}

// RunStats counts what happened to the raw input during one run
type RunStats struct {
	Collected int `json:"collected"`
	Malformed int `json:"malformed"`
	Keyless   int `json:"keyless"`
	Buckets   int `json:"buckets"`
	Scored    int `json:"scored"`
	Filtered  int `json:"filtered"`
	Persisted int `json:"persisted"`
	Failed    int `json:"failed"`
}

// RunResult is the orchestrator's answer to one run
type RunResult struct {
	Candidates []CandidateSummary `json:"candidates"`
	Stats      RunStats           `json:"stats"`
}

// CollectorPort pulls raw signals for a run context
type CollectorPort interface {
	Collect(ctx context.Context, industry, roleLevel string, limit int) []signal.Raw
}

// OraclePort invokes the external scoring oracle with one prompt
type OraclePort interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// GatewayPort is the persistence gateway consumed by the orchestrator
type GatewayPort = cdom.WriterPort

// RunnerPort is what the API and CLI layers call
type RunnerPort interface {
	Run(ctx context.Context, in Input) (RunResult, error)
}
