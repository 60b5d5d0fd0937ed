package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// balanceTolerance is the absolute currency-unit tolerance under which a
// balance sheet counts as balanced.
var balanceTolerance = decimal.RequireFromString("0.01")

// AssemblyService produces complete statements for a reporting context. It
// is a pure function of ledger and registry state at call time: no retries,
// no caching, no partial statements on failure.
type AssemblyService struct {
	registry *MappingRegistry
	balances *BalanceService
}

func NewAssemblyService(registry *MappingRegistry, balances *BalanceService) *AssemblyService {
	return &AssemblyService{registry: registry, balances: balances}
}

// GenerateStatement assembles the statement for (country, standard, system,
// statementType) as of cutoff.
//
// Every line, total or detail, is computed from its own patterns and summed
// into the grand-total bucket selected by statement type and normal sign.
// An empty mapping catalog yields a zero-line statement rather than an
// error; the validation engine reports the configuration gap. A ledger
// failure under the strict aggregation policy aborts assembly.
func (s *AssemblyService) GenerateStatement(ctx context.Context, country, standard string, system SystemVariant, statementType StatementType, cutoff time.Time) (*Statement, error) {
	mappings := s.registry.LinesFor(country, standard, system, statementType)

	lines := make([]StatementLine, 0, len(mappings))
	for _, m := range mappings {
		raw, err := s.balances.BalanceForPatterns(ctx, m.AccountPatterns, cutoff)
		if err != nil {
			return nil, fmt.Errorf("line %s (%s): %w", m.LineCode, m.Label, err)
		}
		lines = append(lines, StatementLine{
			Code:          m.LineCode,
			Label:         m.Label,
			Level:         m.Level,
			IsTotal:       m.IsTotal,
			NormalSign:    m.NormalSign,
			RawBalance:    raw,
			ReportedValue: SignNormalize(raw, m.NormalSign),
			DisplayOrder:  m.DisplayOrder,
		})
	}

	st := &Statement{
		Type:        statementType,
		System:      system,
		CountryCode: country,
		Standard:    standard,
		CutoffDate:  cutoff,
		Lines:       lines,
		Status:      StatusDraft,
	}

	st.TotalAssets, st.TotalLiabilities, st.TotalRevenue, st.TotalExpenses = accumulateTotals(statementType, lines)

	switch statementType {
	case IncomeStatement, ReceiptsAndExpenses:
		st.NetResult = st.TotalRevenue.Sub(st.TotalExpenses)
	case BalanceSheet:
		st.IsBalanced = st.TotalAssets.Sub(st.TotalLiabilities).Abs().LessThanOrEqual(balanceTolerance)
	}

	return st, nil
}

// accumulateTotals sums reported line values into grand-total buckets. The
// bucket is chosen by statement type and the line's normal sign; IsTotal is
// ignored, so registry total lines contribute alongside their details.
// Validation reuses the same rule when it recomputes totals from a
// statement's lines.
func accumulateTotals(statementType StatementType, lines []StatementLine) (assets, liabilities, revenue, expenses decimal.Decimal) {
	assets, liabilities = decimal.Zero, decimal.Zero
	revenue, expenses = decimal.Zero, decimal.Zero

	for _, line := range lines {
		switch statementType {
		case BalanceSheet, CashFlow, CashPosition:
			if line.NormalSign == SignDebit {
				assets = assets.Add(line.ReportedValue)
			} else {
				liabilities = liabilities.Add(line.ReportedValue)
			}
		case IncomeStatement, ReceiptsAndExpenses:
			if line.NormalSign == SignCredit {
				revenue = revenue.Add(line.ReportedValue)
			} else {
				expenses = expenses.Add(line.ReportedValue)
			}
		case Annexes:
			// Annexes carry no totals.
		}
	}
	return assets, liabilities, revenue, expenses
}
