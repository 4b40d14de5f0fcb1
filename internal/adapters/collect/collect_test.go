package collect

import (
	"context"
	"errors"
	"testing"

	"openscout/internal/core/signal"
)

func staticCollector(name string, sigs ...signal.Raw) Collector {
	return Func{Source: name, Fn: func(context.Context, Request) ([]signal.Raw, error) {
		return sigs, nil
	}}
}

func failingCollector(name string) Collector {
	return Func{Source: name, Fn: func(context.Context, Request) ([]signal.Raw, error) {
		return nil, errors.New("scrape blocked")
	}}
}

func TestSet_ConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	s := NewSet(
		staticCollector("linkedin", signal.Raw{IdentityKey: "a"}, signal.Raw{IdentityKey: "b"}),
		staticCollector("podcast", signal.Raw{IdentityKey: "c"}),
	)

	got := s.Collect(context.Background(), Request{})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if got[i].IdentityKey != k {
			t.Fatalf("got[%d] = %q, want %q", i, got[i].IdentityKey, k)
		}
	}
}

func TestSet_FailingSourceIsSkipped(t *testing.T) {
	t.Parallel()

	s := NewSet(
		failingCollector("linkedin"),
		staticCollector("conference", signal.Raw{IdentityKey: "x"}),
	)

	got := s.Collect(context.Background(), Request{})
	if len(got) != 1 || got[0].IdentityKey != "x" {
		t.Fatalf("got %+v", got)
	}
}

func TestSet_CancellationStopsNewCalls(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	called := false

	s := NewSet(
		Func{Source: "first", Fn: func(context.Context, Request) ([]signal.Raw, error) {
			cancel()
			return []signal.Raw{{IdentityKey: "kept"}}, nil
		}},
		Func{Source: "second", Fn: func(context.Context, Request) ([]signal.Raw, error) {
			called = true
			return nil, nil
		}},
	)

	got := s.Collect(ctx, Request{})
	if called {
		t.Fatal("collector called after cancellation")
	}
	if len(got) != 1 || got[0].IdentityKey != "kept" {
		t.Fatalf("in-flight result dropped: %+v", got)
	}
}
