package service

import (
	"context"
	"sync"

	"openscout/internal/core/rubric"
	"openscout/internal/platform/logger"
	"openscout/internal/services/fusion/domain"
)

// Scorer derives an openness score for each bucket via the oracle, with the
// deterministic fallback when the call or its parse fails. It never returns
// an error: every bucket yields a usable, in-range result
type Scorer struct {
	pack       *rubric.Pack
	oracle     domain.OraclePort
	workers    int
	maxSignals int
	log        logger.Logger
}

// NewScorer builds a Scorer over an oracle port
func NewScorer(pack *rubric.Pack, oracle domain.OraclePort, workers, maxSignals int) *Scorer {
	if workers < 1 {
		workers = 4
	}
	return &Scorer{
		pack:       pack,
		oracle:     oracle,
		workers:    workers,
		maxSignals: maxSignals,
		log:        *logger.Named("scorer"),
	}
}

// ScoreAll scores every bucket concurrently under a bounded worker pool.
// Buckets are independent: one slow or failing oracle call never blocks or
// fails the others. Cancellation stops issuing new oracle calls; already
// started calls run to completion and cancelled buckets take the fallback
func (s *Scorer) ScoreAll(ctx context.Context, rctx rubric.Context, buckets []domain.Bucket) []domain.ScoredBucket {
	out := make([]domain.ScoredBucket, len(buckets))

	sem := make(chan struct{}, s.workers)
	wg := sync.WaitGroup{}

	for i := range buckets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			out[i] = domain.ScoredBucket{
				Bucket: buckets[i],
				Score:  s.scoreOne(ctx, rctx, buckets[i]),
			}
		}(i)
	}
	wg.Wait()
	return out
}

// scoreOne builds the prompt, invokes the oracle and parses the reply,
// degrading to the heuristic fallback on any failure along the way
func (s *Scorer) scoreOne(ctx context.Context, rctx rubric.Context, b domain.Bucket) rubric.Score {
	n := len(b.Signals)

	if ctx.Err() != nil {
		return rubric.Fallback(n).Clamp()
	}
	if s.oracle == nil {
		return rubric.Fallback(n).Clamp()
	}

	prompt := s.pack.BuildPrompt(b.Profile, rctx, b.Signals, s.maxSignals)

	reply, err := s.oracle.Invoke(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Str("identity_key", b.IdentityKey).Msg("oracle call failed, using fallback")
		return rubric.Fallback(n).Clamp()
	}

	score, err := rubric.ParseResponse(reply)
	if err != nil {
		s.log.Warn().Err(err).Str("identity_key", b.IdentityKey).Msg("oracle reply unparseable, using fallback")
		return rubric.Fallback(n).Clamp()
	}
	return score.Clamp()
}
