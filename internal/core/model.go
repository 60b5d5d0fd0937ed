package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type NormalSign string

const (
	SignDebit  NormalSign = "DEBIT"
	SignCredit NormalSign = "CREDIT"
)

type SystemVariant string

const (
	SystemNormal  SystemVariant = "NORMAL"
	SystemMinimal SystemVariant = "MINIMAL"
)

type StatementType string

const (
	BalanceSheet        StatementType = "BALANCE_SHEET"
	IncomeStatement     StatementType = "INCOME_STATEMENT"
	CashFlow            StatementType = "CASH_FLOW"
	CashPosition        StatementType = "CASH_POSITION"
	ReceiptsAndExpenses StatementType = "RECEIPTS_AND_EXPENSES"
	Annexes             StatementType = "ANNEXES"
)

type StatementStatus string

const (
	StatusDraft     StatementStatus = "DRAFT"
	StatusValidated StatementStatus = "VALIDATED"
	StatusClosed    StatementStatus = "CLOSED"
)

// LedgerLine is a single dated debit or credit movement against one account.
// The ledger guarantees that exactly one of Debit/Credit is non-zero.
// Read-only to this engine.
type LedgerLine struct {
	AccountNumber string          `json:"account_number"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     time.Time       `json:"entry_date"`
}

// LineMapping maps a set of account-number patterns onto one statement line
// for a reporting context (country, standard, system variant, statement type).
// Mappings are configured by accounting-standard administrators and are
// read-only during generation.
//
// Patterns of different mappings may overlap: the engine does not prevent an
// account from being claimed by two lines (intentional for total/detail
// pairs, a configuration error otherwise). See MappingRegistry.
type LineMapping struct {
	ID              int           `json:"id,omitempty"`
	CountryCode     string        `json:"country_code"`
	Standard        string        `json:"standard"`
	System          SystemVariant `json:"system"`
	Statement       StatementType `json:"statement"`
	LineCode        string        `json:"line_code"`
	Label           string        `json:"label"`
	AccountPatterns []string      `json:"account_patterns"`
	NormalSign      NormalSign    `json:"normal_sign"`
	DisplayOrder    int           `json:"display_order"`
	Level           int           `json:"level"`
	IsTotal         bool          `json:"is_total"`
	Active          bool          `json:"active"`
}

// StatementLine is one computed row of an assembled statement.
// RawBalance is the signed debit-minus-credit aggregate over the line's
// patterns; ReportedValue is the sign-normalized figure shown on the
// statement.
type StatementLine struct {
	Code          string          `json:"code"`
	Label         string          `json:"label"`
	Level         int             `json:"level"`
	IsTotal       bool            `json:"is_total"`
	NormalSign    NormalSign      `json:"normal_sign"`
	RawBalance    decimal.Decimal `json:"raw_balance"`
	ReportedValue decimal.Decimal `json:"reported_value"`
	DisplayOrder  int             `json:"display_order"`
}

// AnnexNote is one templated narrative section of the statement annex.
type AnnexNote struct {
	Number       string `json:"number"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
}

// Statement is a fully assembled financial statement. It is immutable once
// assembled and deliberately carries no generation timestamp or identifier:
// re-generating against an unchanged ledger and registry yields a deeply
// equal value. Persistence collaborators stamp references and timestamps
// when they store it.
type Statement struct {
	Type             StatementType   `json:"type"`
	System           SystemVariant   `json:"system"`
	CountryCode      string          `json:"country_code"`
	Standard         string          `json:"standard"`
	CutoffDate       time.Time       `json:"cutoff_date"`
	Lines            []StatementLine `json:"lines"`
	Notes            []AnnexNote     `json:"notes,omitempty"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetResult        decimal.Decimal `json:"net_result"`
	IsBalanced       bool            `json:"is_balanced"`
	Status           StatementStatus `json:"status"`
}

// ValidationReport is the outcome of one validation run. Never mutated after
// construction.
type ValidationReport struct {
	ID          string    `json:"id"`
	Errors      []string  `json:"errors"`
	Warnings    []string  `json:"warnings"`
	IsValid     bool      `json:"is_valid"`
	ValidatedAt time.Time `json:"validated_at"`
}
