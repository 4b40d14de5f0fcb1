package rubric

import (
	"fmt"
	"sort"
	"strings"

	"openscout/internal/core/signal"
	pstr "openscout/internal/platform/strings"
)

// DefaultMaxSignals bounds how many signals make it into one prompt
const DefaultMaxSignals = 10

// maxContentLen keeps a single pathological signal from dominating the prompt
const maxContentLen = 400

// Profile is the candidate snapshot the prompt describes
type Profile struct {
	Name    string
	Title   string
	Company string
}

// Context is the optional run-level framing for the score
type Context struct {
	Industry  string
	RoleLevel string
}

// BuildPrompt renders the scoring prompt: fixed rubric text first, then the
// candidate-specific context, then the response-shape instruction.
// Signals beyond max are dropped most-recent-first wins; max<=0 uses the default
func (p *Pack) BuildPrompt(prof Profile, rctx Context, sigs []signal.Record, max int) string {
	if max <= 0 {
		max = DefaultMaxSignals
	}

	var b strings.Builder
	b.WriteString("You are rating how open a professional currently is to new job opportunities, on a 0-100 scale.\n\nScoring bands:\n")
	for _, band := range p.Bands {
		fmt.Fprintf(&b, "- %d-%d (%s): %s\n", band.Min, band.Max, band.Label, strings.TrimSpace(band.Description))
	}

	b.WriteString("\nCandidate:\n")
	fmt.Fprintf(&b, "- name: %s\n", pstr.FirstNonEmpty(prof.Name, "unknown"))
	fmt.Fprintf(&b, "- title: %s\n", pstr.FirstNonEmpty(prof.Title, "unknown"))
	fmt.Fprintf(&b, "- company: %s\n", pstr.FirstNonEmpty(prof.Company, "unknown"))
	if rctx.Industry != "" {
		fmt.Fprintf(&b, "- target industry: %s\n", rctx.Industry)
	}
	if rctx.RoleLevel != "" {
		fmt.Fprintf(&b, "- target role level: %s\n", rctx.RoleLevel)
	}

	kept := mostRecent(sigs, max)
	fmt.Fprintf(&b, "\nObserved signals (%d of %d):\n", len(kept), len(sigs))
	if len(kept) == 0 {
		b.WriteString("- none\n")
	}
	for _, s := range kept {
		when := "undated"
		if !s.OccurredAt.IsZero() {
			when = s.OccurredAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, %s): %s\n",
			s.Source, pstr.FirstNonEmpty(s.SignalType, "signal"), when, s.IdentityKey,
			pstr.Truncate(s.Content, maxContentLen))
	}

	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(p.Instruction))
	b.WriteString("\n")
	return b.String()
}

// mostRecent returns up to max signals, newest first, undated last.
// Input order breaks ties so the selection is deterministic
func mostRecent(sigs []signal.Record, max int) []signal.Record {
	out := append([]signal.Record(nil), sigs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].OccurredAt, out[j].OccurredAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}
