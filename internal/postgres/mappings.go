package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"statement-engine/internal/core"
)

// MappingStore is the CRUD surface over the line_mappings table. The engine
// itself only reads mappings through a MappingRegistry snapshot; this store
// serves the admin tooling that maintains the catalog, and the loader that
// builds the snapshot at process start.
type MappingStore struct {
	pool *pgxpool.Pool
}

func NewMappingStore(pool *pgxpool.Pool) *MappingStore {
	return &MappingStore{pool: pool}
}

const mappingColumns = `id, country_code, standard, system_variant, statement_type,
	line_code, label, account_patterns, normal_sign, display_order, level, is_total, active`

func scanMapping(row pgx.Row) (core.LineMapping, error) {
	var m core.LineMapping
	err := row.Scan(&m.ID, &m.CountryCode, &m.Standard, &m.System, &m.Statement,
		&m.LineCode, &m.Label, &m.AccountPatterns, &m.NormalSign, &m.DisplayOrder,
		&m.Level, &m.IsTotal, &m.Active)
	return m, err
}

// ListAll returns every mapping in the catalog, active or not, in display
// order. Used to build the registry snapshot.
func (s *MappingStore) ListAll(ctx context.Context) ([]core.LineMapping, error) {
	q := fmt.Sprintf("SELECT %s FROM line_mappings ORDER BY display_order ASC", mappingColumns)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query line mappings: %w", err)
	}
	defer rows.Close()

	var mappings []core.LineMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("line mapping iteration error: %w", err)
	}
	return mappings, nil
}

// ListForContext returns the active mappings of one reporting context in
// display order.
func (s *MappingStore) ListForContext(ctx context.Context, rc core.ReportingContext) ([]core.LineMapping, error) {
	q := fmt.Sprintf(`SELECT %s FROM line_mappings
		WHERE country_code = $1 AND standard = $2 AND system_variant = $3 AND statement_type = $4
		  AND active = TRUE
		ORDER BY display_order ASC`, mappingColumns)

	rows, err := s.pool.Query(ctx, q, rc.CountryCode, rc.Standard, rc.System, rc.Statement)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings for context: %w", err)
	}
	defer rows.Close()

	var mappings []core.LineMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("line mapping iteration error: %w", err)
	}
	return mappings, nil
}

// Create inserts a mapping and returns it with its assigned id.
func (s *MappingStore) Create(ctx context.Context, m core.LineMapping) (core.LineMapping, error) {
	const q = `
		INSERT INTO line_mappings (country_code, standard, system_variant, statement_type,
			line_code, label, account_patterns, normal_sign, display_order, level, is_total, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := s.pool.QueryRow(ctx, q, m.CountryCode, m.Standard, m.System, m.Statement,
		m.LineCode, m.Label, m.AccountPatterns, m.NormalSign, m.DisplayOrder,
		m.Level, m.IsTotal, m.Active).Scan(&m.ID)
	if err != nil {
		return core.LineMapping{}, fmt.Errorf("failed to insert line mapping %s: %w", m.LineCode, err)
	}
	return m, nil
}

// Update rewrites a mapping by id.
func (s *MappingStore) Update(ctx context.Context, m core.LineMapping) error {
	const q = `
		UPDATE line_mappings
		SET country_code = $2, standard = $3, system_variant = $4, statement_type = $5,
		    line_code = $6, label = $7, account_patterns = $8, normal_sign = $9,
		    display_order = $10, level = $11, is_total = $12, active = $13,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, m.ID, m.CountryCode, m.Standard, m.System, m.Statement,
		m.LineCode, m.Label, m.AccountPatterns, m.NormalSign, m.DisplayOrder,
		m.Level, m.IsTotal, m.Active)
	if err != nil {
		return fmt.Errorf("failed to update line mapping %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("line mapping %d not found", m.ID)
	}
	return nil
}

// Deactivate soft-deletes a mapping. Generation never sees inactive lines.
func (s *MappingStore) Deactivate(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE line_mappings SET active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate line mapping %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("line mapping %d not found", id)
	}
	return nil
}

// Get returns one mapping by id.
func (s *MappingStore) Get(ctx context.Context, id int) (core.LineMapping, error) {
	q := fmt.Sprintf("SELECT %s FROM line_mappings WHERE id = $1", mappingColumns)
	m, err := scanMapping(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.LineMapping{}, fmt.Errorf("line mapping %d not found", id)
		}
		return core.LineMapping{}, fmt.Errorf("failed to fetch line mapping %d: %w", id, err)
	}
	return m, nil
}

// Seed inserts the given mappings, skipping any (context, line_code) pair
// already present. Returns the number inserted.
func (s *MappingStore) Seed(ctx context.Context, mappings []core.LineMapping) (int, error) {
	const q = `
		INSERT INTO line_mappings (country_code, standard, system_variant, statement_type,
			line_code, label, account_patterns, normal_sign, display_order, level, is_total, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (country_code, standard, system_variant, statement_type, line_code) DO NOTHING`

	inserted := 0
	for _, m := range mappings {
		tag, err := s.pool.Exec(ctx, q, m.CountryCode, m.Standard, m.System, m.Statement,
			m.LineCode, m.Label, m.AccountPatterns, m.NormalSign, m.DisplayOrder,
			m.Level, m.IsTotal, m.Active)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed line mapping %s: %w", m.LineCode, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
