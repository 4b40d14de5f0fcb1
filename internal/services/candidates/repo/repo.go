// Package repo provides the Postgres candidate repository
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"openscout/internal/modkit/repokit"
	perr "openscout/internal/platform/errors"
	"openscout/internal/services/candidates/domain"
)

// Repo is the candidate persistence surface used by the service layer.
// Write methods expect to run inside a caller-managed transaction
type Repo interface {
	UpsertCandidate(ctx context.Context, identityKey string, prof domain.Profile, score domain.Score) (uuid.UUID, error)
	AppendSignals(ctx context.Context, candidateID uuid.UUID, signals []domain.SignalInput) error

	GetByID(ctx context.Context, id uuid.UUID) (domain.Candidate, error)
	SignalsFor(ctx context.Context, id uuid.UUID) ([]domain.SignalRow, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Candidate, int, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type (
	// PG is a Postgres implementation of the candidate repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const candidateCols = `
	id, identity_key,
	COALESCE(name, ''), COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
	status, openness_score, confidence, COALESCE(reasoning, ''), COALESCE(notes, ''),
	created_at, updated_at`

// UpsertCandidate creates or refreshes the candidate row for identityKey.
// An advisory xact lock on the key serializes concurrent upserts for the
// same person so they queue behind each other instead of racing the
// unique index. Profile merge is non-destructive: an empty incoming field
// never clobbers a stored value. Status moves to scored unless the
// candidate already progressed past it
func (r *queries) UpsertCandidate(
	ctx context.Context,
	identityKey string,
	prof domain.Profile,
	score domain.Score,
) (uuid.UUID, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, identityKey); err != nil {
		return uuid.Nil, perr.FromPostgresf(err, "lock identity key")
	}

	const sql = `
		INSERT INTO candidates (
			id, identity_key, name, title, company, location,
			status, openness_score, confidence, reasoning, created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			'scored', $7, $8, NULLIF($9, ''), NOW(), NOW()
		)
		ON CONFLICT (identity_key) DO UPDATE
		SET name           = COALESCE(EXCLUDED.name, candidates.name),
		    title          = COALESCE(EXCLUDED.title, candidates.title),
		    company        = COALESCE(EXCLUDED.company, candidates.company),
		    location       = COALESCE(EXCLUDED.location, candidates.location),
		    openness_score = EXCLUDED.openness_score,
		    confidence     = EXCLUDED.confidence,
		    reasoning      = COALESCE(EXCLUDED.reasoning, candidates.reasoning),
		    status         = CASE
		        WHEN candidates.status IN ('contacted', 'placed') THEN candidates.status
		        ELSE 'scored'
		    END,
		    updated_at     = NOW()
		RETURNING id
	`
	var id uuid.UUID
	err := r.q.QueryRow(ctx, sql,
		uuid.New(), identityKey,
		prof.Name, prof.Title, prof.Company, prof.Location,
		score.Score, score.Confidence, score.Reasoning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, perr.FromPostgresf(err, "upsert candidate")
	}
	return id, nil
}

// AppendSignals inserts one row per signal under candidateID.
// Rows are append-only; re-ingesting the same raw signal appends again
func (r *queries) AppendSignals(ctx context.Context, candidateID uuid.UUID, signals []domain.SignalInput) error {
	const sql = `
		INSERT INTO signals (id, candidate_id, source, signal_type, content, detected_at, signal_data, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NOW())
	`
	for _, s := range signals {
		var detected *time.Time
		if !s.DetectedAt.IsZero() {
			d := s.DetectedAt
			detected = &d
		}
		var data []byte
		if len(s.Data) > 0 {
			var err error
			if data, err = json.Marshal(s.Data); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeJSON, "encode signal data")
			}
		}
		if _, err := r.q.Exec(ctx, sql,
			uuid.New(), candidateID, s.Source, s.SignalType, s.Content, detected, data,
		); err != nil {
			return perr.FromPostgresf(err, "append signal")
		}
	}
	return nil
}

// GetByID fetches one candidate row
func (r *queries) GetByID(ctx context.Context, id uuid.UUID) (domain.Candidate, error) {
	row := r.q.QueryRow(ctx, `SELECT `+candidateCols+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Candidate{}, perr.NotFoundf("candidate %s not found", id)
	}
	if err != nil {
		return domain.Candidate{}, perr.FromPostgresf(err, "get candidate")
	}
	return c, nil
}

// SignalsFor returns the candidate's signals, newest detection first
func (r *queries) SignalsFor(ctx context.Context, id uuid.UUID) ([]domain.SignalRow, error) {
	const sql = `
		SELECT id, candidate_id, source, signal_type, COALESCE(content, ''),
		       detected_at, signal_data, created_at
		FROM signals
		WHERE candidate_id = $1
		ORDER BY detected_at DESC NULLS LAST, created_at DESC
	`
	rows, err := r.q.Query(ctx, sql, id)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list signals")
	}
	defer rows.Close()

	var out []domain.SignalRow
	for rows.Next() {
		var s domain.SignalRow
		var data []byte
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Source, &s.SignalType, &s.Content,
			&s.DetectedAt, &data, &s.CreatedAt); err != nil {
			return nil, perr.FromPostgresf(err, "scan signal")
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &s.Data); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode signal data")
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresf(err, "iterate signals")
	}
	return out, nil
}

// List returns a filtered page of candidates plus the unpaged total
func (r *queries) List(ctx context.Context, f domain.ListFilter) ([]domain.Candidate, int, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 || size > 200 {
		size = 50
	}

	where := func(b sq.SelectBuilder) sq.SelectBuilder {
		if f.Status != "" {
			b = b.Where(sq.Eq{"status": string(f.Status)})
		}
		if f.MinScore > 0 {
			b = b.Where(sq.GtOrEq{"openness_score": f.MinScore})
		}
		return b
	}

	countSQL, countArgs, err := where(psql.Select("COUNT(*)").From("candidates")).ToSql()
	if err != nil {
		return nil, 0, perr.Wrapf(err, perr.ErrorCodeUnknown, "build count query")
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, perr.FromPostgresf(err, "count candidates")
	}

	listSQL, listArgs, err := where(psql.Select(candidateCols).From("candidates")).
		OrderBy("openness_score DESC", "updated_at DESC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, 0, perr.Wrapf(err, perr.ErrorCodeUnknown, "build list query")
	}

	rows, err := r.q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, perr.FromPostgresf(err, "list candidates")
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, perr.FromPostgresf(err, "scan candidate")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, perr.FromPostgresf(err, "iterate candidates")
	}
	return out, total, nil
}

// DeleteCascade removes the candidate and its signals.
// Explicit two-statement delete; expected to run inside one transaction
func (r *queries) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM signals WHERE candidate_id = $1`, id); err != nil {
		return perr.FromPostgresf(err, "delete signals")
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return perr.FromPostgresf(err, "delete candidate")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("candidate %s not found", id)
	}
	return nil
}

func scanCandidate(row repokit.Row) (domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.IdentityKey,
		&c.Name, &c.Title, &c.Company, &c.Location,
		&c.Status, &c.OpennessScore, &c.Confidence, &c.Reasoning, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
