package app

import (
	"context"
	"fmt"
	"time"

	"statement-engine/internal/core"
)

// GenerateRequest describes one statement to produce.
type GenerateRequest struct {
	CountryCode string
	Standard    string
	System      core.SystemVariant
	Statement   core.StatementType
	CutoffDate  time.Time
	// Persist stores the generated statement and returns its reference.
	Persist bool
}

// GenerateResult carries a generated statement plus, when persisted, the
// storage reference assigned to it.
type GenerateResult struct {
	Statement *core.Statement `json:"statement"`
	Reference string          `json:"reference,omitempty"`
}

// Persister stores generated statements. *postgres.StatementStore satisfies
// it; a nil persister means generation is in-memory only.
type Persister interface {
	Save(ctx context.Context, st *core.Statement) (string, error)
}

// StatementService is the application entry point the CLI talks to.
type StatementService interface {
	GenerateStatement(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	ValidateStatement(ctx context.Context, st *core.Statement) (*core.ValidationReport, error)
	ValidateAll(ctx context.Context, statements []*core.Statement) (*core.ValidationSummary, error)
}

type statementService struct {
	assembler *core.AssemblyService
	validator *core.ValidationService
	notes     *core.NoteService
	store     Persister
}

// NewStatementService wires the core services into one facade. store may be
// nil when persistence is not configured.
func NewStatementService(assembler *core.AssemblyService, validator *core.ValidationService, notes *core.NoteService, store Persister) StatementService {
	return &statementService{
		assembler: assembler,
		validator: validator,
		notes:     notes,
		store:     store,
	}
}

func (s *statementService) GenerateStatement(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	st, err := s.assembler.GenerateStatement(ctx, req.CountryCode, req.Standard, req.System, req.Statement, req.CutoffDate)
	if err != nil {
		return nil, err
	}
	st.Notes = s.notes.NotesFor(req.System)

	result := &GenerateResult{Statement: st}
	if req.Persist {
		if s.store == nil {
			return nil, fmt.Errorf("cannot persist statement: no store configured")
		}
		ref, err := s.store.Save(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("persisting statement: %w", err)
		}
		result.Reference = ref
	}
	return result, nil
}

func (s *statementService) ValidateStatement(ctx context.Context, st *core.Statement) (*core.ValidationReport, error) {
	return s.validator.ValidateStatement(ctx, st)
}

func (s *statementService) ValidateAll(ctx context.Context, statements []*core.Statement) (*core.ValidationSummary, error) {
	return s.validator.ValidateAll(ctx, statements)
}
