package core_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"statement-engine/internal/core"

	"github.com/shopspring/decimal"
)

// fakeLedger is an in-memory LedgerReader shared by the core tests.
type fakeLedger struct {
	entries map[string][]core.LedgerLine
	failErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string][]core.LedgerLine)}
}

// post records one debit or credit movement. Amounts are decimal strings so
// tests read like ledger bookings.
func (f *fakeLedger) post(account, date, debit, credit string) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	f.entries[account] = append(f.entries[account], core.LedgerLine{
		AccountNumber: account,
		Debit:         decimal.RequireFromString(debit),
		Credit:        decimal.RequireFromString(credit),
		EntryDate:     day,
	})
}

func (f *fakeLedger) EntriesForAccount(_ context.Context, accountNumber string) ([]core.LedgerLine, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.entries[accountNumber], nil
}

func (f *fakeLedger) AccountsMatchingPrefix(_ context.Context, prefix string) ([]string, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var accounts []string
	for account := range f.entries {
		if strings.HasPrefix(account, prefix) {
			accounts = append(accounts, account)
		}
	}
	sort.Strings(accounts)
	return accounts, nil
}

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return day
}

func TestBalanceForAccount(t *testing.T) {
	ledger := newFakeLedger()
	ledger.post("411000", "2026-01-10", "100.00", "0.00")
	ledger.post("411000", "2026-02-15", "250.00", "0.00")
	ledger.post("411000", "2026-03-01", "0.00", "80.00")
	ledger.post("411000", "2026-06-30", "0.00", "500.00")

	svc := core.NewBalanceService(ledger)
	ctx := context.Background()

	t.Run("sums debit minus credit up to cutoff", func(t *testing.T) {
		got, err := svc.BalanceForAccount(ctx, "411000", mustDate(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("BalanceForAccount: %v", err)
		}
		if want := decimal.RequireFromString("270.00"); !got.Equal(want) {
			t.Errorf("balance = %s, want %s", got, want)
		}
	})

	t.Run("entry dated after cutoff is excluded", func(t *testing.T) {
		got, err := svc.BalanceForAccount(ctx, "411000", mustDate(t, "2026-02-28"))
		if err != nil {
			t.Fatalf("BalanceForAccount: %v", err)
		}
		if want := decimal.RequireFromString("100.00"); !got.Equal(want) {
			t.Errorf("balance = %s, want %s", got, want)
		}
	})

	t.Run("entry dated exactly on cutoff is included", func(t *testing.T) {
		got, err := svc.BalanceForAccount(ctx, "411000", mustDate(t, "2026-03-01"))
		if err != nil {
			t.Fatalf("BalanceForAccount: %v", err)
		}
		if want := decimal.RequireFromString("270.00"); !got.Equal(want) {
			t.Errorf("balance = %s, want %s", got, want)
		}
	})

	t.Run("unknown account is zero", func(t *testing.T) {
		got, err := svc.BalanceForAccount(ctx, "999999", mustDate(t, "2026-12-31"))
		if err != nil {
			t.Fatalf("BalanceForAccount: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("balance = %s, want 0", got)
		}
	})
}

func TestBalanceForAccount_LedgerFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.failErr = errors.New("connection reset")
	cutoff := mustDate(t, "2026-12-31")
	ctx := context.Background()

	t.Run("strict mode propagates", func(t *testing.T) {
		svc := core.NewBalanceService(ledger)
		if _, err := svc.BalanceForAccount(ctx, "411000", cutoff); err == nil {
			t.Fatal("expected error in strict mode, got nil")
		}
	})

	t.Run("lenient mode returns zero", func(t *testing.T) {
		svc := core.NewLenientBalanceService(ledger)
		got, err := svc.BalanceForAccount(ctx, "411000", cutoff)
		if err != nil {
			t.Fatalf("lenient mode returned error: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("balance = %s, want 0", got)
		}
	})
}

func TestBalanceForPatterns(t *testing.T) {
	ledger := newFakeLedger()
	ledger.post("201000", "2026-01-01", "1000.00", "0.00")
	ledger.post("205000", "2026-01-01", "400.00", "0.00")
	ledger.post("301000", "2026-01-01", "50.00", "0.00")

	svc := core.NewBalanceService(ledger)
	ctx := context.Background()
	cutoff := mustDate(t, "2026-12-31")

	t.Run("union over patterns", func(t *testing.T) {
		got, err := svc.BalanceForPatterns(ctx, []string{"20%", "30%"}, cutoff)
		if err != nil {
			t.Fatalf("BalanceForPatterns: %v", err)
		}
		if want := decimal.RequireFromString("1450.00"); !got.Equal(want) {
			t.Errorf("balance = %s, want %s", got, want)
		}
	})

	t.Run("account matching two patterns counts once", func(t *testing.T) {
		got, err := svc.BalanceForPatterns(ctx, []string{"2%", "20%", "201000"}, cutoff)
		if err != nil {
			t.Fatalf("BalanceForPatterns: %v", err)
		}
		if want := decimal.RequireFromString("1400.00"); !got.Equal(want) {
			t.Errorf("balance = %s, want %s (accounts must be deduplicated)", got, want)
		}
	})

	t.Run("no matching account is zero", func(t *testing.T) {
		got, err := svc.BalanceForPatterns(ctx, []string{"76%"}, cutoff)
		if err != nil {
			t.Fatalf("BalanceForPatterns: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("balance = %s, want 0", got)
		}
	})
}

func TestSignNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sign core.NormalSign
		want string
	}{
		{"credit negative flips", "-500", core.SignCredit, "500"},
		{"credit positive unchanged", "500", core.SignCredit, "500"},
		{"debit negative unchanged", "-500", core.SignDebit, "-500"},
		{"debit positive unchanged", "500", core.SignDebit, "500"},
		{"zero unchanged", "0", core.SignCredit, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.SignNormalize(decimal.RequireFromString(tt.raw), tt.sign)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SignNormalize(%s, %s) = %s, want %s", tt.raw, tt.sign, got, tt.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total, want string
	}{
		{"25", "200", "12.5"},
		{"1", "3", "33.33"},
		{"2", "3", "66.67"},
		{"-1", "3", "-33.33"},
		// Exact halves round away from zero.
		{"1", "800", "0.13"},
		{"-1", "800", "-0.13"},
		{"10", "0", "0"},
	}
	for _, tt := range tests {
		got := core.Percentage(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.total))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Percentage(%s, %s) = %s, want %s", tt.part, tt.total, got, tt.want)
		}
	}
}
