package service

import (
	"openscout/internal/core/signal"
	"openscout/internal/services/fusion/domain"
)

// Group aggregates normalized signals into one bucket per distinct identity
// key, preserving first-seen order. Signals without a key are skipped and
// counted, never merged into an arbitrary bucket. Profile merge is
// last-write-wins in arrival order, but a non-empty field is never
// overwritten by an empty one
func Group(recs []signal.Record) ([]domain.Bucket, int) {
	byKey := make(map[string]int, len(recs))
	var buckets []domain.Bucket
	skipped := 0

	for _, rec := range recs {
		if rec.IdentityKey == "" {
			skipped++
			continue
		}
		idx, ok := byKey[rec.IdentityKey]
		if !ok {
			idx = len(buckets)
			byKey[rec.IdentityKey] = idx
			buckets = append(buckets, domain.Bucket{IdentityKey: rec.IdentityKey})
		}
		b := &buckets[idx]
		if rec.Name != "" {
			b.Profile.Name = rec.Name
		}
		if rec.Title != "" {
			b.Profile.Title = rec.Title
		}
		if rec.Company != "" {
			b.Profile.Company = rec.Company
		}
		b.Signals = append(b.Signals, rec)
	}
	return buckets, skipped
}
