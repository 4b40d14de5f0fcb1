// Package signal defines the canonical signal record and its normalizer.
// Collectors emit loosely shaped Raw records; everything downstream works
// only with normalized Records keyed by a canonical identity key
package signal

import (
	"strings"
	"time"
)

// Source discriminates where a signal was observed
type Source string

// Known sources. Anything unrecognized coerces to SourceOther rather than
// failing the record; the source tag is descriptive, not load-bearing
const (
	SourceLinkedIn   Source = "linkedin"
	SourcePodcast    Source = "podcast"
	SourceContent    Source = "content"
	SourceConference Source = "conference"
	SourceOther      Source = "other"
)

// ParseSource coerces a free-form source tag to a known Source
func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceLinkedIn:
		return SourceLinkedIn
	case SourcePodcast:
		return SourcePodcast
	case SourceContent:
		return SourceContent
	case SourceConference:
		return SourceConference
	default:
		return SourceOther
	}
}

// Raw is a signal as emitted by a collector, prior to normalization.
// IdentityKey may be empty when the collector could not resolve one.
// Profile fields ride along when the source happens to carry them
type Raw struct {
	IdentityKey string         `json:"identity_key"`
	Source      string         `json:"source"`
	SignalType  string         `json:"signal_type"`
	Content     string         `json:"content"`
	OccurredAt  *time.Time     `json:"occurred_at,omitempty"`
	Name        string         `json:"name,omitempty"`
	Title       string         `json:"title,omitempty"`
	Company     string         `json:"company,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Record is the canonical normalized signal. IdentityKey is always present
// and canonical (lowercased, Unicode-folded). OccurredAt is zero when the
// collector did not report one
type Record struct {
	IdentityKey string
	Source      Source
	SignalType  string
	Content     string
	OccurredAt  time.Time
	Name        string
	Title       string
	Company     string
	Extra       map[string]any
}

// HasProfile reports whether the record carries any profile-shaped field
func (r Record) HasProfile() bool {
	return r.Name != "" || r.Title != "" || r.Company != ""
}
