package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code string) *pgconn.PgError { return &pgconn.PgError{Code: code} }

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22P02", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeDB},
		{"40P01", ErrorCodeDB},
		{"57P03", ErrorCodeUnavailable},
		{"P0001", ErrorCodeDB}, // anything else is a plain db error
	}
	for _, tc := range cases {
		got, ok := DBErrorCode(pgErr(tc.code))
		if !ok || got != tc.want {
			t.Errorf("DBErrorCode(%s) = %d ok=%v, want %d", tc.code, got, ok, tc.want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("not pg")); ok {
		t.Fatal("non-pg error should report ok=false")
	}
}

func TestFromPostgresf(t *testing.T) {
	if FromPostgresf(nil, "noop") != nil {
		t.Fatal("nil in, nil out")
	}

	err := FromPostgresf(pgErr("23505"), "upsert %s", "jane@example.com")
	if !IsCode(err, ErrorCodeDuplicateKey) {
		t.Fatalf("code = %d", CodeOf(err))
	}
	if !IsDuplicateKey(err) {
		t.Fatal("IsDuplicateKey should see through the wrap")
	}

	err = FromPostgresf(stderrs.New("conn refused"), "open")
	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("fallback code = %d", CodeOf(err))
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", Wrap(pgErr("40001"), ErrorCodeDB, "tx"), true},
		{"deadlock", Wrap(pgErr("40P01"), ErrorCodeDB, "tx"), true},
		{"lock not available", Wrap(pgErr("55P03"), ErrorCodeDB, "tx"), true},
		{"duplicate key", Wrap(pgErr("23505"), ErrorCodeDuplicateKey, "tx"), false},
		{"context canceled", fmt.Errorf("tx: %w", context.Canceled), false},
		{"deadline", fmt.Errorf("tx: %w", context.DeadlineExceeded), false},
		{"commit rollback text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"serialize text", stderrs.New("ERROR: could not serialize access due to concurrent update"), true},
		{"plain", stderrs.New("syntax error"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Fatalf("IsRetryable = %v, want %v", got, tc.want)
			}
		})
	}
}
