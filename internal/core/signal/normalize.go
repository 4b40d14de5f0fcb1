// Identity key canonicalization pipeline
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and format chars
// 5 Width fold fullwidth to ASCII
// 6 Trim and strip URL dressing from handle keys

package signal

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	perr "openscout/internal/platform/errors"
)

// ErrMalformedSignal marks a raw signal whose identity key is neither
// email-like nor handle-like. The record is dropped, never the run
var ErrMalformedSignal = perr.New(perr.ErrorCodeValidation, "signal has no usable identity key")

// Normalizer turns Raw collector output into canonical Records.
// Safe for concurrent use
type Normalizer struct{}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

var (
	emailRe  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	handleRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._\-]{1,127}$`)
)

// Normalize validates and canonicalizes one raw signal.
// It is a pure transform: rejects records lacking an email-like or
// handle-like identity key with ErrMalformedSignal, preserves unknown
// source fields under Extra, and never mutates its input
func (n *Normalizer) Normalize(raw Raw) (Record, error) {
	key := canonicalKey(raw.IdentityKey)
	if !emailRe.MatchString(key) && !handleRe.MatchString(key) {
		return Record{}, perr.WithField(ErrMalformedSignal, "identity_key")
	}

	rec := Record{
		IdentityKey: key,
		Source:      ParseSource(raw.Source),
		SignalType:  strings.TrimSpace(raw.SignalType),
		Content:     strings.TrimSpace(raw.Content),
		Name:        strings.TrimSpace(raw.Name),
		Title:       strings.TrimSpace(raw.Title),
		Company:     strings.TrimSpace(raw.Company),
	}
	if raw.OccurredAt != nil {
		rec.OccurredAt = raw.OccurredAt.UTC()
	}
	if len(raw.Extra) > 0 {
		rec.Extra = make(map[string]any, len(raw.Extra))
		for k, v := range raw.Extra {
			rec.Extra[k] = v
		}
	}
	return rec, nil
}

// canonicalKey folds a raw identity key to its canonical form.
// Profile URLs (https://linkedin.com/in/jane-doe) reduce to their trailing
// path segment so the same person keys identically across collectors
func canonicalKey(s string) string {
	s = strings.TrimSpace(strings.ToValidUTF8(s, ""))
	if s == "" {
		return ""
	}

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = strings.TrimSpace(ns)
	if seg, ok := handleFromURL(ns); ok {
		ns = seg
	}
	return strings.Trim(ns, "/")
}

// handleFromURL extracts the last non-empty path segment from a profile URL
func handleFromURL(s string) (string, bool) {
	if !strings.Contains(s, "://") && !strings.HasPrefix(s, "www.") {
		return "", false
	}
	u, err := url.Parse(strings.TrimPrefix(s, "www."))
	if err != nil || u.Path == "" {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "", false
	}
	return parts[len(parts)-1], true
}
