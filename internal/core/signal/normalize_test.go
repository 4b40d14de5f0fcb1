package signal

import (
	"testing"
	"time"

	perr "openscout/internal/platform/errors"
)

func TestCanonicalKey_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "email lowercased",
			in:   "Jane.Doe@Example.COM",
			out:  "jane.doe@example.com",
		},
		{
			name: "handle trimmed",
			in:   "  jane-doe42  ",
			out:  "jane-doe42",
		},
		{
			name: "fullwidth folds to ascii",
			in:   "ｊａｎｅ＠ｅｘａｍｐｌｅ．ｃｏｍ",
			out:  "jane@example.com",
		},
		{
			name: "zero widths stripped",
			in:   "ja​ne‍-doe",
			out:  "jane-doe",
		},
		{
			name: "profile url reduces to handle",
			in:   "https://www.linkedin.com/in/Jane-Doe/",
			out:  "jane-doe",
		},
		{
			name: "bare profile path",
			in:   "www.linkedin.com/in/jdoe",
			out:  "jdoe",
		},
		{
			name: "idempotent",
			in:   canonicalKey("HTTPS://linkedin.com/in/JDoe"),
			out:  "jdoe",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := canonicalKey(tc.in)
			if got != tc.out {
				t.Fatalf("canonicalKey(%q) = %q, want %q", tc.in, got, tc.out)
			}
			got2 := canonicalKey(got)
			if got2 != got {
				t.Fatalf("canonicalKey not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestNormalize_AcceptsEmailAndHandle(t *testing.T) {
	n := New()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	rec, err := n.Normalize(Raw{
		IdentityKey: "Jane@Example.com",
		Source:      "LinkedIn",
		SignalType:  "job_change",
		Content:     " open to work banner ",
		OccurredAt:  &at,
		Name:        "Jane Doe",
		Extra:       map[string]any{"connections": 512},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rec.IdentityKey != "jane@example.com" {
		t.Fatalf("key = %q", rec.IdentityKey)
	}
	if rec.Source != SourceLinkedIn {
		t.Fatalf("source = %q", rec.Source)
	}
	if rec.Content != "open to work banner" {
		t.Fatalf("content = %q", rec.Content)
	}
	if !rec.OccurredAt.Equal(at) || rec.OccurredAt.Location() != time.UTC {
		t.Fatalf("occurred_at = %v", rec.OccurredAt)
	}
	if rec.Extra["connections"] != 512 {
		t.Fatalf("extra dropped: %v", rec.Extra)
	}

	rec2, err := n.Normalize(Raw{IdentityKey: "jdoe_99", Source: "rss"})
	if err != nil {
		t.Fatalf("handle key rejected: %v", err)
	}
	if rec2.Source != SourceOther {
		t.Fatalf("unknown source = %q, want other", rec2.Source)
	}
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	n := New()

	for _, key := range []string{"", "   ", "@", "not an identity key", "a"} {
		_, err := n.Normalize(Raw{IdentityKey: key, Source: "content"})
		if err == nil {
			t.Fatalf("Normalize(%q) expected error", key)
		}
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("Normalize(%q) code = %v, want validation", key, perr.CodeOf(err))
		}
	}
}

func TestNormalize_DoesNotAliasExtra(t *testing.T) {
	n := New()

	extra := map[string]any{"k": "v"}
	rec, err := n.Normalize(Raw{IdentityKey: "jdoe", Extra: extra})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	extra["k"] = "mutated"
	if rec.Extra["k"] != "v" {
		t.Fatal("record extra aliases caller map")
	}
}

func TestParseSource(t *testing.T) {
	cases := map[string]Source{
		"linkedin":   SourceLinkedIn,
		" Podcast ":  SourcePodcast,
		"CONTENT":    SourceContent,
		"conference": SourceConference,
		"webinar":    SourceOther,
		"":           SourceOther,
	}
	for in, want := range cases {
		if got := ParseSource(in); got != want {
			t.Fatalf("ParseSource(%q) = %q, want %q", in, got, want)
		}
	}
}
