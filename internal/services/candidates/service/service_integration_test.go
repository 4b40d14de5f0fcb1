//go:build integration_pg
// +build integration_pg

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "openscout/internal/platform/errors"
	"openscout/internal/platform/store"
	"openscout/internal/services/candidates/domain"
	"openscout/internal/services/candidates/repo"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

// one statement per entry: the pool runs the extended protocol, which
// rejects multi-statement strings
var schemaStmts = []string{
	`DO $$ BEGIN
    CREATE TYPE candidate_status_enum AS ENUM ('identified', 'scored', 'contacted', 'placed');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$`,
	`CREATE TABLE IF NOT EXISTS candidates (
    id             UUID PRIMARY KEY,
    identity_key   TEXT NOT NULL,
    name           TEXT,
    title          TEXT,
    company        TEXT,
    location       TEXT,
    status         candidate_status_enum NOT NULL DEFAULT 'identified',
    openness_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    confidence     DOUBLE PRECISION NOT NULL DEFAULT 0,
    reasoning      TEXT,
    notes          TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT candidates_identity_key_uq UNIQUE (identity_key)
)`,
	`CREATE TABLE IF NOT EXISTS signals (
    id           UUID PRIMARY KEY,
    candidate_id UUID NOT NULL REFERENCES candidates (id),
    source       TEXT NOT NULL,
    signal_type  TEXT NOT NULL,
    content      TEXT,
    detected_at  TIMESTAMPTZ,
    signal_data  JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

func TestGateway_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "openscout-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	for _, stmt := range schemaStmts {
		if _, err := st.PG.Exec(ctx, stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}

	svc := New(st.PG, repo.NewPG())

	sigs := []domain.SignalInput{
		{Source: "linkedin", SignalType: "open_to_work", Content: "banner", DetectedAt: time.Now().UTC()},
		{Source: "podcast", SignalType: "appearance", Data: map[string]any{"episode": 12}},
	}

	first, err := svc.Persist(ctx, "jane@example.com",
		domain.Profile{Name: "Jane Doe", Title: "Engineer"},
		domain.Score{Score: 80, Confidence: 0.9, Reasoning: "strong"},
		sigs,
	)
	if err != nil {
		t.Fatalf("first persist: %v", err)
	}
	if first.Status != domain.StatusScored || first.OpennessScore != 80 {
		t.Fatalf("first = %+v", first)
	}

	// second sighting: same key converges onto the same row, score
	// overwritten, empty profile fields leave stored values intact
	second, err := svc.Persist(ctx, "jane@example.com",
		domain.Profile{Company: "Acme"},
		domain.Score{Score: 92, Confidence: 0.8, Reasoning: "stronger"},
		sigs[:1],
	)
	if err != nil {
		t.Fatalf("second persist: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row: %s vs %s", second.ID, first.ID)
	}
	if second.OpennessScore != 92 || second.Name != "Jane Doe" || second.Company != "Acme" {
		t.Fatalf("merge result = %+v", second)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Signals) != 3 {
		t.Fatalf("signal rows = %d, want 3 (append-only across runs)", len(got.Signals))
	}

	items, total, err := svc.List(ctx, domain.ListFilter{MinScore: 90})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].IdentityKey != "jane@example.com" {
		t.Fatalf("list = %+v total=%d", items, total)
	}
	if _, total, _ := svc.List(ctx, domain.ListFilter{MinScore: 95}); total != 0 {
		t.Fatalf("min-score filter leaked rows: total=%d", total)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, first.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("get after delete = %v, want not found", err)
	}
	if err := svc.Delete(ctx, first.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("double delete = %v, want not found", err)
	}
}
