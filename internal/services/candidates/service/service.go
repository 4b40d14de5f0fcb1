// Package service implements the candidate persistence gateway
package service

import (
	"context"

	"github.com/google/uuid"

	"openscout/internal/modkit/repokit"
	perr "openscout/internal/platform/errors"
	"openscout/internal/platform/logger"
	"openscout/internal/services/candidates/domain"
	"openscout/internal/services/candidates/repo"
)

// Service is the transactional surface over the candidate repo.
// It implements domain.WriterPort and domain.ReaderPort
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	log    logger.Logger
}

// New constructs the candidates service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	if db == nil {
		panic("candidates service requires a TxRunner")
	}
	return &Service{
		db:     db,
		binder: binder,
		log:    *logger.Named("candidates"),
	}
}

// Persist upserts the candidate for identityKey and appends its signals in
// one transaction. A serialization failure or deadlock is retried once;
// anything else surfaces to the caller
func (s *Service) Persist(
	ctx context.Context,
	identityKey string,
	prof domain.Profile,
	score domain.Score,
	signals []domain.SignalInput,
) (domain.Candidate, error) {
	var out domain.Candidate

	attempt := func() error {
		return s.db.Tx(ctx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			id, err := r.UpsertCandidate(ctx, identityKey, prof, score)
			if err != nil {
				return err
			}
			if err := r.AppendSignals(ctx, id, signals); err != nil {
				return err
			}
			c, err := r.GetByID(ctx, id)
			if err != nil {
				return err
			}
			out = c
			return nil
		})
	}

	err := attempt()
	if err != nil && perr.Retryable(err) && ctx.Err() == nil {
		s.log.Warn().Err(err).Str("identity_key", identityKey).Msg("persist conflicted, retrying once")
		err = attempt()
	}
	if err != nil {
		return domain.Candidate{}, err
	}
	return out, nil
}

// List returns a filtered page of candidates plus the total match count
func (s *Service) List(ctx context.Context, f domain.ListFilter) ([]domain.Candidate, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, perr.InvalidArgf("unknown status %q", f.Status)
	}
	return s.binder.Bind(s.db).List(ctx, f)
}

// Get returns one candidate with all of its signals
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.CandidateWithSignals, error) {
	r := s.binder.Bind(s.db)
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.CandidateWithSignals{}, err
	}
	sigs, err := r.SignalsFor(ctx, id)
	if err != nil {
		return domain.CandidateWithSignals{}, err
	}
	return domain.CandidateWithSignals{Candidate: c, Signals: sigs}, nil
}

// Delete removes a candidate and its signals in one transaction.
// The two-step delete keeps the signal ownership invariant explicit
// instead of leaning on schema-level cascade
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).DeleteCascade(ctx, id)
	})
}
