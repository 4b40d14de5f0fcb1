package rubric

import (
	"strings"
	"testing"
	"time"

	"openscout/internal/core/signal"
)

func TestLoad(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if p.Version == 0 {
		t.Fatal("expected non-zero version")
	}
	if p.Bands[0].Min != 0 || p.Bands[len(p.Bands)-1].Max != 100 {
		t.Fatalf("bands do not span 0..100: %+v", p.Bands)
	}
	for i := 1; i < len(p.Bands); i++ {
		if p.Bands[i].Min != p.Bands[i-1].Max+1 {
			t.Fatalf("band gap/overlap at %d", i)
		}
	}
	if p.Instruction == "" {
		t.Fatal("missing instruction")
	}
}

func TestBuildPrompt_FixedRubricVariableContext(t *testing.T) {
	p := MustLoad()

	sigA := []signal.Record{{IdentityKey: "a@example.com", Source: signal.SourceLinkedIn, SignalType: "open_to_work", Content: "banner on"}}
	sigB := []signal.Record{{IdentityKey: "b@example.com", Source: signal.SourcePodcast, SignalType: "appearance", Content: "guest spot"}}

	pa := p.BuildPrompt(Profile{Name: "A"}, Context{}, sigA, 0)
	pb := p.BuildPrompt(Profile{Name: "B"}, Context{}, sigB, 0)

	// rubric section is byte-identical across candidates
	cutA := strings.Index(pa, "Candidate:")
	cutB := strings.Index(pb, "Candidate:")
	if cutA <= 0 || cutB <= 0 {
		t.Fatal("prompt missing candidate section")
	}
	if pa[:cutA] != pb[:cutB] {
		t.Fatal("rubric section varies between candidates")
	}

	for _, band := range p.Bands {
		if !strings.Contains(pa, band.Label) {
			t.Fatalf("prompt missing band %q", band.Label)
		}
	}
	if !strings.Contains(pa, "open_to_work") || !strings.Contains(pa, "banner on") {
		t.Fatal("prompt missing signal context")
	}
	if !strings.Contains(pa, `"score"`) {
		t.Fatal("prompt missing response instruction")
	}
}

func TestBuildPrompt_BoundsSignals(t *testing.T) {
	p := MustLoad()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var sigs []signal.Record
	for i := 0; i < 25; i++ {
		sigs = append(sigs, signal.Record{
			IdentityKey: "k@example.com",
			Source:      signal.SourceContent,
			SignalType:  "post",
			Content:     "entry",
			OccurredAt:  base.AddDate(0, 0, i),
		})
	}

	out := p.BuildPrompt(Profile{}, Context{}, sigs, 5)
	if !strings.Contains(out, "Observed signals (5 of 25)") {
		t.Fatalf("prompt does not bound signals:\n%s", out)
	}
	// newest first: day 25 kept, day 1 dropped
	if !strings.Contains(out, "2026-01-25") {
		t.Fatal("most recent signal missing")
	}
	if strings.Contains(out, "2026-01-01,") {
		t.Fatal("oldest signal should have been dropped")
	}
}

func TestBuildPrompt_EmptyBucket(t *testing.T) {
	p := MustLoad()

	out := p.BuildPrompt(Profile{}, Context{Industry: "fintech", RoleLevel: "senior"}, nil, 0)
	if !strings.Contains(out, "- none") {
		t.Fatal("empty signal list not rendered")
	}
	if !strings.Contains(out, "fintech") || !strings.Contains(out, "senior") {
		t.Fatal("run context missing from prompt")
	}
	if !strings.Contains(out, "unknown") {
		t.Fatal("empty profile fields should render as unknown")
	}
}
