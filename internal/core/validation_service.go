package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusRecorder is the external persistence collaborator notified when a
// statement passes validation. Transitioning the stored statement to
// VALIDATED is its responsibility, not the engine's.
type StatusRecorder interface {
	MarkValidated(ctx context.Context, st *Statement) error
}

// ValidationService re-derives totals and equilibrium from an assembled
// statement and classifies it as valid or invalid. It never mutates the
// statement and never re-queries the ledger: every check works on the line
// values already present, so an invalid statement stays inspectable.
type ValidationService struct {
	registry *MappingRegistry
	recorder StatusRecorder // optional

	// intermediatePrefix is the line-code naming convention marking
	// intermediate management balances on income statements.
	intermediatePrefix string
	minNotesNormal     int
	minNotesMinimal    int
}

// NewValidationService constructs a ValidationService. recorder may be nil
// when no persistence collaborator is wired (tests, dry runs).
func NewValidationService(registry *MappingRegistry, recorder StatusRecorder) *ValidationService {
	return &ValidationService{
		registry:           registry,
		recorder:           recorder,
		intermediatePrefix: "X",
		minNotesNormal:     10,
		minNotesMinimal:    8,
	}
}

// SetIntermediatePrefix overrides the intermediate-balance line-code
// convention (default "X").
func (s *ValidationService) SetIntermediatePrefix(prefix string) {
	s.intermediatePrefix = prefix
}

// ValidateStatement runs every check against the statement and returns the
// report. Hard findings land in Errors, conformity findings in Warnings;
// warnings alone do not make a statement invalid. When the statement is
// fully valid and a recorder is wired, the recorder is signalled.
func (s *ValidationService) ValidateStatement(ctx context.Context, st *Statement) (*ValidationReport, error) {
	var errs, warnings []string

	errs = append(errs, s.checkStructure(st)...)
	errs = append(errs, s.checkEquilibrium(st)...)
	errs = append(errs, s.checkTotals(st)...)
	warnings = append(warnings, s.checkConformity(st)...)
	warnings = append(warnings, s.checkNotes(st)...)

	report := &ValidationReport{
		ID:          uuid.NewString(),
		Errors:      errs,
		Warnings:    warnings,
		IsValid:     len(errs) == 0,
		ValidatedAt: time.Now().UTC(),
	}

	if report.IsValid && s.recorder != nil {
		if err := s.recorder.MarkValidated(ctx, st); err != nil {
			return nil, fmt.Errorf("mark statement validated: %w", err)
		}
	}
	return report, nil
}

// checkStructure verifies the required scalar fields and that no monetary
// total is negative. Gaps here indicate an upstream integration bug.
func (s *ValidationService) checkStructure(st *Statement) []string {
	var errs []string
	if st.CutoffDate.IsZero() {
		errs = append(errs, "cut-off date is missing")
	}
	if st.System == "" {
		errs = append(errs, "system variant is missing")
	}
	if st.Type == "" {
		errs = append(errs, "statement type is missing")
	}
	if len(st.Lines) == 0 {
		errs = append(errs, "statement has no line data")
	}

	if st.TotalAssets.IsNegative() {
		errs = append(errs, "total assets cannot be negative")
	}
	if st.TotalLiabilities.IsNegative() {
		errs = append(errs, "total liabilities cannot be negative")
	}
	if st.TotalRevenue.IsNegative() {
		errs = append(errs, "total revenue cannot be negative")
	}
	if st.TotalExpenses.IsNegative() {
		errs = append(errs, "total expenses cannot be negative")
	}
	return errs
}

// checkEquilibrium enforces the balance-sheet equilibrium and the
// revenue-minus-expenses coherence of income-style statements.
func (s *ValidationService) checkEquilibrium(st *Statement) []string {
	var errs []string
	switch st.Type {
	case BalanceSheet:
		// Re-derived from the stored totals; the IsBalanced flag is itself
		// under audit, so it is checked against the derivation, never read
		// as the verdict.
		gap := st.TotalAssets.Sub(st.TotalLiabilities)
		balanced := gap.Abs().LessThanOrEqual(balanceTolerance)
		if !balanced {
			errs = append(errs, fmt.Sprintf("balance sheet out of equilibrium: assets (%s) != liabilities (%s), gap %s",
				st.TotalAssets.StringFixed(2), st.TotalLiabilities.StringFixed(2), gap.StringFixed(2)))
		}
		if st.IsBalanced != balanced {
			errs = append(errs, fmt.Sprintf("is_balanced flag (%t) contradicts assets (%s) and liabilities (%s)",
				st.IsBalanced, st.TotalAssets.StringFixed(2), st.TotalLiabilities.StringFixed(2)))
		}
	case IncomeStatement, ReceiptsAndExpenses:
		// Zero tolerance: both figures derive from the same line values,
		// so any mismatch is an assembly bug.
		_, _, revenue, expenses := accumulateTotals(st.Type, st.Lines)
		if computed := revenue.Sub(expenses); !computed.Equal(st.NetResult) {
			errs = append(errs, fmt.Sprintf("net result mismatch: computed (%s) != stored (%s)",
				computed.StringFixed(2), st.NetResult.StringFixed(2)))
		}
	}
	return errs
}

// checkTotals recomputes every grand total from the statement's lines and
// compares it to the stored value exactly.
func (s *ValidationService) checkTotals(st *Statement) []string {
	assets, liabilities, revenue, expenses := accumulateTotals(st.Type, st.Lines)

	var errs []string
	if !assets.Equal(st.TotalAssets) {
		errs = append(errs, fmt.Sprintf("total assets mismatch: computed (%s) != stored (%s)",
			assets.StringFixed(2), st.TotalAssets.StringFixed(2)))
	}
	if !liabilities.Equal(st.TotalLiabilities) {
		errs = append(errs, fmt.Sprintf("total liabilities mismatch: computed (%s) != stored (%s)",
			liabilities.StringFixed(2), st.TotalLiabilities.StringFixed(2)))
	}
	if !revenue.Equal(st.TotalRevenue) {
		errs = append(errs, fmt.Sprintf("total revenue mismatch: computed (%s) != stored (%s)",
			revenue.StringFixed(2), st.TotalRevenue.StringFixed(2)))
	}
	if !expenses.Equal(st.TotalExpenses) {
		errs = append(errs, fmt.Sprintf("total expenses mismatch: computed (%s) != stored (%s)",
			expenses.StringFixed(2), st.TotalExpenses.StringFixed(2)))
	}
	return errs
}

// checkConformity verifies the mapping catalog behind the statement's
// context: presence of mappings, of total and detail lines, and of
// intermediate-balance lines on income statements. Findings are warnings.
func (s *ValidationService) checkConformity(st *Statement) []string {
	var warnings []string

	mappings := s.registry.LinesFor(st.CountryCode, st.Standard, st.System, st.Type)
	if len(mappings) == 0 {
		warnings = append(warnings, fmt.Sprintf("no line mappings configured for %s/%s %s %s",
			st.CountryCode, st.Standard, st.System, st.Type))
		return warnings
	}

	if len(s.registry.TotalLines(st.CountryCode, st.Standard, st.System, st.Type)) == 0 {
		warnings = append(warnings, "no total line configured for this statement type")
	}
	if len(s.registry.DetailLines(st.CountryCode, st.Standard, st.System, st.Type)) == 0 {
		warnings = append(warnings, "no detail line configured for this statement type")
	}

	if st.Type == IncomeStatement {
		hasIntermediate := false
		for _, m := range mappings {
			if strings.HasPrefix(m.LineCode, s.intermediatePrefix) {
				hasIntermediate = true
				break
			}
		}
		if !hasIntermediate {
			warnings = append(warnings, "income statement is missing intermediate management balance lines")
		}
	}
	return warnings
}

// checkNotes verifies annex completeness against the per-system minimum and
// the two mandatory notes.
func (s *ValidationService) checkNotes(st *Statement) []string {
	minimum := s.minNotesNormal
	if st.System == SystemMinimal {
		minimum = s.minNotesMinimal
	}

	var warnings []string
	if len(st.Notes) < minimum {
		warnings = append(warnings, fmt.Sprintf("insufficient annex notes: %d found, %d required", len(st.Notes), minimum))
	}

	hasPolicies, hasSubsequent := false, false
	for _, n := range st.Notes {
		switch n.Title {
		case NoteTitlePolicies:
			hasPolicies = true
		case NoteTitleSubsequentEvents:
			hasSubsequent = true
		}
	}
	if len(st.Notes) > 0 && !hasPolicies {
		warnings = append(warnings, "accounting rules and methods note is missing")
	}
	if len(st.Notes) > 0 && !hasSubsequent {
		warnings = append(warnings, "subsequent events note is missing")
	}
	return warnings
}

// ValidationSummary aggregates the reports of a validation run over several
// statements, typically all statements of one financial year.
type ValidationSummary struct {
	Total       int                 `json:"total"`
	Valid       int                 `json:"valid"`
	Invalid     int                 `json:"invalid"`
	Reports     []*ValidationReport `json:"reports"`
	ValidatedAt time.Time           `json:"validated_at"`
}

// ValidateAll validates each statement in turn and aggregates the outcome.
func (s *ValidationService) ValidateAll(ctx context.Context, statements []*Statement) (*ValidationSummary, error) {
	summary := &ValidationSummary{ValidatedAt: time.Now().UTC()}
	for _, st := range statements {
		report, err := s.ValidateStatement(ctx, st)
		if err != nil {
			return nil, err
		}
		summary.Reports = append(summary.Reports, report)
		summary.Total++
		if report.IsValid {
			summary.Valid++
		} else {
			summary.Invalid++
		}
	}
	return summary, nil
}
