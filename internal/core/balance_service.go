package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerReader is the read-only query interface this engine consumes from
// the ledger collaborator. Implementations must never expose entries the
// engine could mutate; the engine only folds over them.
type LedgerReader interface {
	// EntriesForAccount returns all ledger lines for the exact account
	// number, in no particular order.
	EntriesForAccount(ctx context.Context, accountNumber string) ([]LedgerLine, error)

	// AccountsMatchingPrefix returns the numbers of all active accounts in
	// the chart of accounts that start with the given prefix. An empty
	// prefix returns every active account.
	AccountsMatchingPrefix(ctx context.Context, prefix string) ([]string, error)
}

// BalanceService computes signed account balances as of a cut-off date.
//
// Strict controls the failure policy for ledger access: when true (the
// default), any ledger error aborts the computation; when false, the
// service reproduces the legacy behavior of treating a failed read as a
// zero balance. Lenient mode can mask a wrong-but-balanced statement and
// exists only for compatibility.
type BalanceService struct {
	ledger LedgerReader
	strict bool
}

// NewBalanceService constructs a strict BalanceService over the given ledger.
func NewBalanceService(ledger LedgerReader) *BalanceService {
	return &BalanceService{ledger: ledger, strict: true}
}

// NewLenientBalanceService constructs a BalanceService that swallows ledger
// errors and returns zero balances instead, matching the legacy system.
func NewLenientBalanceService(ledger LedgerReader) *BalanceService {
	return &BalanceService{ledger: ledger, strict: false}
}

// Strict reports whether ledger failures abort aggregation.
func (s *BalanceService) Strict() bool { return s.strict }

// BalanceForAccount sums debit minus credit over every ledger line of the
// account dated on or before cutoff. An account with no entries has a zero
// balance.
func (s *BalanceService) BalanceForAccount(ctx context.Context, accountNumber string, cutoff time.Time) (decimal.Decimal, error) {
	entries, err := s.ledger.EntriesForAccount(ctx, accountNumber)
	if err != nil {
		if !s.strict {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("ledger entries for account %s: %w", accountNumber, err)
	}

	balance := decimal.Zero
	for _, line := range entries {
		if line.EntryDate.After(cutoff) {
			continue
		}
		balance = balance.Add(line.Debit).Sub(line.Credit)
	}
	return balance, nil
}

// BalanceForPatterns resolves every active account matching at least one of
// the patterns and sums their balances as of cutoff. An account matching
// several patterns of the same call contributes exactly once.
func (s *BalanceService) BalanceForPatterns(ctx context.Context, patterns []string, cutoff time.Time) (decimal.Decimal, error) {
	seen := make(map[string]struct{})
	total := decimal.Zero

	for _, pattern := range patterns {
		accounts, err := s.ledger.AccountsMatchingPrefix(ctx, PatternPrefix(pattern))
		if err != nil {
			if !s.strict {
				continue
			}
			return decimal.Zero, fmt.Errorf("resolve accounts for pattern %q: %w", pattern, err)
		}

		for _, account := range accounts {
			if !MatchesPattern(account, pattern) {
				continue
			}
			if _, done := seen[account]; done {
				continue
			}
			seen[account] = struct{}{}

			balance, err := s.BalanceForAccount(ctx, account, cutoff)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(balance)
		}
	}
	return total, nil
}

// SignNormalize converts a raw debit-minus-credit balance into the figure
// reported for a line with the given normal sign. Only a credit-normal line
// with a negative raw balance is flipped; a credit-normal line that ended up
// debit-positive is reported as-is. The asymmetry is deliberate and matches
// the configured mapping conventions this engine executes.
func SignNormalize(raw decimal.Decimal, sign NormalSign) decimal.Decimal {
	if sign == SignCredit && raw.IsNegative() {
		return raw.Abs()
	}
	return raw
}

// Percentage returns part as a percentage of total, rounded to two decimal
// places with halves going away from zero. A zero total yields zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).DivRound(total, 2)
}
