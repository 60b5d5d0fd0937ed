package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"statement-engine/internal/core"
)

// LedgerStore is the Postgres-backed core.LedgerReader. It only ever reads:
// the engine never takes write locks on ledger data and never joins the
// caller's write transactions.
type LedgerStore struct {
	pool *pgxpool.Pool
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// EntriesForAccount returns every journal line posted against the exact
// account number, with its entry date.
func (s *LedgerStore) EntriesForAccount(ctx context.Context, accountNumber string) ([]core.LedgerLine, error) {
	const q = `
		SELECT a.account_number, jl.debit, jl.credit, je.entry_date
		FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entry_id
		JOIN accounts a        ON a.id  = jl.account_id
		WHERE a.account_number = $1
		ORDER BY je.entry_date ASC, je.id ASC`

	rows, err := s.pool.Query(ctx, q, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for %s: %w", accountNumber, err)
	}
	defer rows.Close()

	var lines []core.LedgerLine
	for rows.Next() {
		var l core.LedgerLine
		if err := rows.Scan(&l.AccountNumber, &l.Debit, &l.Credit, &l.EntryDate); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger line iteration error: %w", err)
	}
	return lines, nil
}

// AccountsMatchingPrefix resolves the active chart-of-accounts entries whose
// number starts with the given prefix. An empty prefix returns every active
// account.
func (s *LedgerStore) AccountsMatchingPrefix(ctx context.Context, prefix string) ([]string, error) {
	const q = `
		SELECT account_number
		FROM accounts
		WHERE active = TRUE
		  AND account_number LIKE $1 || '%'
		ORDER BY account_number`

	rows, err := s.pool.Query(ctx, q, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan account number: %w", err)
		}
		accounts = append(accounts, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("account iteration error: %w", err)
	}
	return accounts, nil
}
