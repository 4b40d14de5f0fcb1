// Package service implements the fusion orchestrator
package service

import (
	"context"

	"openscout/internal/core/rubric"
	"openscout/internal/core/signal"
	perr "openscout/internal/platform/errors"
	"openscout/internal/platform/logger"
	cdom "openscout/internal/services/candidates/domain"
	"openscout/internal/services/fusion/domain"
)

// Options tunes one orchestrator instance. Everything is explicit; there is
// no ambient configuration state, so tests inject fixtures freely
type Options struct {
	// Workers bounds concurrent oracle calls
	Workers int

	// MaxSignals bounds how many signals enter one prompt
	MaxSignals int
}

// Service sequences collect -> normalize -> group -> score -> filter -> persist
type Service struct {
	collect domain.CollectorPort
	scorer  *Scorer
	gateway domain.GatewayPort
	norm    *signal.Normalizer
	log     logger.Logger
}

// New constructs the orchestrator
func New(collect domain.CollectorPort, oracle domain.OraclePort, gateway domain.GatewayPort, opts Options) *Service {
	if gateway == nil {
		panic("fusion service requires a persistence gateway")
	}
	return &Service{
		collect: collect,
		scorer:  NewScorer(rubric.MustLoad(), oracle, opts.Workers, opts.MaxSignals),
		gateway: gateway,
		norm:    signal.New(),
		log:     *logger.Named("fusion"),
	}
}

// Run executes one fusion pass and returns the persisted candidates.
// Collector and scoring failures degrade per source or per bucket; only a
// gateway outage that fails every bucket is a run-level failure, and the
// partial in-memory result is discarded rather than reported as success
func (s *Service) Run(ctx context.Context, in domain.Input) (domain.RunResult, error) {
	var res domain.RunResult

	raws := []signal.Raw(nil)
	if s.collect != nil {
		raws = s.collect.Collect(ctx, in.Industry, in.RoleLevel, in.Limit)
	}
	res.Stats.Collected = len(raws)

	recs := make([]signal.Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := s.norm.Normalize(raw)
		if err != nil {
			res.Stats.Malformed++
			s.log.Debug().Err(err).Str("source", raw.Source).Msg("dropping malformed signal")
			continue
		}
		recs = append(recs, rec)
	}

	buckets, keyless := Group(recs)
	res.Stats.Keyless = keyless
	res.Stats.Buckets = len(buckets)

	scored := s.scorer.ScoreAll(ctx, rubric.Context{Industry: in.Industry, RoleLevel: in.RoleLevel}, buckets)
	res.Stats.Scored = len(scored)

	kept := scored[:0]
	for _, sb := range scored {
		if sb.Score.Score >= in.MinScore {
			kept = append(kept, sb)
		} else {
			res.Stats.Filtered++
		}
	}

	for i, sb := range kept {
		if ctx.Err() != nil {
			// stop opening new transactions; what already committed stands
			res.Stats.Failed += len(kept) - i
			break
		}
		c, err := s.gateway.Persist(ctx,
			sb.IdentityKey,
			cdom.Profile{Name: sb.Profile.Name, Title: sb.Profile.Title, Company: sb.Profile.Company},
			cdom.Score{Score: sb.Score.Score, Confidence: sb.Score.Confidence, Reasoning: sb.Score.Reasoning},
			toSignalInputs(sb.Signals),
		)
		if err != nil {
			res.Stats.Failed++
			s.log.Error().Err(err).Str("identity_key", sb.IdentityKey).Msg("bucket persist failed")
			continue
		}
		res.Stats.Persisted++
		res.Candidates = append(res.Candidates, domain.CandidateSummary{
			ID:      c.ID,
			Key:     c.IdentityKey,
			Name:    c.Name,
			Title:   c.Title,
			Company: c.Company,
			Score:   c.OpennessScore,
			Status:  string(c.Status),
		})
	}

	if len(kept) > 0 && res.Stats.Persisted == 0 {
		if err := ctx.Err(); err != nil {
			return domain.RunResult{}, err
		}
		return domain.RunResult{}, perr.Unavailablef(
			"persistence gateway rejected all %d buckets", len(kept))
	}

	s.log.Info().
		Int("collected", res.Stats.Collected).
		Int("malformed", res.Stats.Malformed).
		Int("buckets", res.Stats.Buckets).
		Int("filtered", res.Stats.Filtered).
		Int("persisted", res.Stats.Persisted).
		Int("failed", res.Stats.Failed).
		Msg("fusion run complete")
	return res, nil
}

func toSignalInputs(recs []signal.Record) []cdom.SignalInput {
	out := make([]cdom.SignalInput, 0, len(recs))
	for _, r := range recs {
		out = append(out, cdom.SignalInput{
			Source:     string(r.Source),
			SignalType: r.SignalType,
			Content:    r.Content,
			DetectedAt: r.OccurredAt,
			Data:       r.Extra,
		})
	}
	return out
}
