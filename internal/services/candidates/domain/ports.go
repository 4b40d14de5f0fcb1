package domain

import (
	"context"

	"github.com/google/uuid"
)

// WriterPort is the persistence gateway the fusion orchestrator consumes.
// One Persist call is one transaction: the candidate upsert and all of its
// signal inserts commit together or not at all
type WriterPort interface {
	Persist(ctx context.Context, identityKey string, prof Profile, score Score, signals []SignalInput) (Candidate, error)
}

// ReaderPort serves the query surface of the API
type ReaderPort interface {
	List(ctx context.Context, f ListFilter) ([]Candidate, int, error)
	Get(ctx context.Context, id uuid.UUID) (CandidateWithSignals, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
