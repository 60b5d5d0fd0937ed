package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"statement-engine/internal/core"
)

// StatementStore persists assembled statements as JSON documents under a
// uuid reference. The engine assembles deterministic values; references and
// timestamps are stamped here, at persist time. The store also implements
// core.StatusRecorder for the DRAFT -> VALIDATED transition.
type StatementStore struct {
	pool *pgxpool.Pool
}

func NewStatementStore(pool *pgxpool.Pool) *StatementStore {
	return &StatementStore{pool: pool}
}

// StoredStatement is a persisted statement with its storage envelope.
type StoredStatement struct {
	Reference   string          `json:"reference"`
	Statement   *core.Statement `json:"statement"`
	CreatedAt   time.Time       `json:"created_at"`
	ValidatedAt *time.Time      `json:"validated_at,omitempty"`
}

// Save stores a freshly assembled statement and returns its reference.
func (s *StatementStore) Save(ctx context.Context, st *core.Statement) (string, error) {
	payload, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to marshal statement: %w", err)
	}

	ref := uuid.NewString()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO statements (reference, statement_type, system_variant, country_code, standard,
			cutoff_date, status, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, ref, st.Type, st.System, st.CountryCode, st.Standard, st.CutoffDate, st.Status, payload)
	if err != nil {
		return "", fmt.Errorf("failed to insert statement: %w", err)
	}
	return ref, nil
}

// Get loads a stored statement by reference. The JSON round trip is
// lossless for the Statement shape.
func (s *StatementStore) Get(ctx context.Context, reference string) (*StoredStatement, error) {
	var (
		stored  StoredStatement
		payload []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT reference, payload, created_at, validated_at
		FROM statements WHERE reference = $1
	`, reference).Scan(&stored.Reference, &payload, &stored.CreatedAt, &stored.ValidatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("statement %s not found", reference)
		}
		return nil, fmt.Errorf("failed to fetch statement %s: %w", reference, err)
	}

	var st core.Statement
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statement %s: %w", reference, err)
	}
	stored.Statement = &st
	return &stored, nil
}

// MarkValidated transitions the most recent stored copy of the statement's
// context to VALIDATED. Implements core.StatusRecorder.
func (s *StatementStore) MarkValidated(ctx context.Context, st *core.Statement) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE statements
		SET status = $1, validated_at = NOW()
		WHERE id = (
			SELECT id FROM statements
			WHERE statement_type = $2 AND system_variant = $3
			  AND country_code = $4 AND standard = $5 AND cutoff_date = $6
			ORDER BY created_at DESC
			LIMIT 1
		)
	`, core.StatusValidated, st.Type, st.System, st.CountryCode, st.Standard, st.CutoffDate)
	if err != nil {
		return fmt.Errorf("failed to mark statement validated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no stored statement matches %s %s as of %s",
			st.System, st.Type, st.CutoffDate.Format("2006-01-02"))
	}
	return nil
}
