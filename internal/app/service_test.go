package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"statement-engine/internal/app"
	"statement-engine/internal/core"
)

type fakeLedger struct {
	entries map[string][]core.LedgerLine
}

func (f *fakeLedger) EntriesForAccount(_ context.Context, accountNumber string) ([]core.LedgerLine, error) {
	return f.entries[accountNumber], nil
}

func (f *fakeLedger) AccountsMatchingPrefix(_ context.Context, prefix string) ([]string, error) {
	var accounts []string
	for number := range f.entries {
		if prefix == "" || len(number) >= len(prefix) && number[:len(prefix)] == prefix {
			accounts = append(accounts, number)
		}
	}
	return accounts, nil
}

type fakePersister struct {
	saved []*core.Statement
}

func (f *fakePersister) Save(_ context.Context, st *core.Statement) (string, error) {
	f.saved = append(f.saved, st)
	return "ref-001", nil
}

func newService(store app.Persister) app.StatementService {
	ledger := &fakeLedger{entries: map[string][]core.LedgerLine{
		"521000": {{AccountNumber: "521000", Debit: decimal.RequireFromString("1000.00"), EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)}},
		"101000": {{AccountNumber: "101000", Credit: decimal.RequireFromString("1000.00"), EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)}},
	}}
	registry := core.NewMappingRegistry([]core.LineMapping{
		{
			CountryCode: "BF", Standard: "SYSCOHADA", System: core.SystemNormal, Statement: core.BalanceSheet,
			LineCode: "BS", Label: "Cash", AccountPatterns: []string{"52%"},
			NormalSign: core.SignDebit, DisplayOrder: 10, Level: 2, Active: true,
		},
		{
			CountryCode: "BF", Standard: "SYSCOHADA", System: core.SystemNormal, Statement: core.BalanceSheet,
			LineCode: "CA", Label: "Capital", AccountPatterns: []string{"10%"},
			NormalSign: core.SignCredit, DisplayOrder: 20, Level: 2, Active: true,
		},
	})
	assembler := core.NewAssemblyService(registry, core.NewBalanceService(ledger))
	validator := core.NewValidationService(registry, nil)
	return app.NewStatementService(assembler, validator, core.NewNoteService(), store)
}

func TestGenerateStatement_AttachesNotes(t *testing.T) {
	svc := newService(nil)

	result, err := svc.GenerateStatement(context.Background(), app.GenerateRequest{
		CountryCode: "BF",
		Standard:    "SYSCOHADA",
		System:      core.SystemNormal,
		Statement:   core.BalanceSheet,
		CutoffDate:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateStatement: %v", err)
	}
	if len(result.Statement.Notes) != 10 {
		t.Fatalf("expected 10 annex notes, got %d", len(result.Statement.Notes))
	}
	if !result.Statement.IsBalanced {
		t.Fatal("expected balanced statement")
	}
	if result.Reference != "" {
		t.Fatalf("expected no reference without persistence, got %q", result.Reference)
	}
}

func TestGenerateStatement_Persists(t *testing.T) {
	store := &fakePersister{}
	svc := newService(store)

	result, err := svc.GenerateStatement(context.Background(), app.GenerateRequest{
		CountryCode: "BF",
		Standard:    "SYSCOHADA",
		System:      core.SystemNormal,
		Statement:   core.BalanceSheet,
		CutoffDate:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Persist:     true,
	})
	if err != nil {
		t.Fatalf("GenerateStatement: %v", err)
	}
	if result.Reference != "ref-001" {
		t.Fatalf("expected reference ref-001, got %q", result.Reference)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved statement, got %d", len(store.saved))
	}
}

func TestGenerateStatement_PersistWithoutStore(t *testing.T) {
	svc := newService(nil)

	_, err := svc.GenerateStatement(context.Background(), app.GenerateRequest{
		CountryCode: "BF",
		Standard:    "SYSCOHADA",
		System:      core.SystemNormal,
		Statement:   core.BalanceSheet,
		CutoffDate:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Persist:     true,
	})
	if err == nil {
		t.Fatal("expected error when persisting without a store")
	}
}

func TestValidateStatement_Delegates(t *testing.T) {
	svc := newService(nil)

	result, err := svc.GenerateStatement(context.Background(), app.GenerateRequest{
		CountryCode: "BF",
		Standard:    "SYSCOHADA",
		System:      core.SystemNormal,
		Statement:   core.BalanceSheet,
		CutoffDate:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateStatement: %v", err)
	}

	report, err := svc.ValidateStatement(context.Background(), result.Statement)
	if err != nil {
		t.Fatalf("ValidateStatement: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("expected no validation errors, got %v", report.Errors)
	}
}
