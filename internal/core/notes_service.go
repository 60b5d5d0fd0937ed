package core

import "fmt"

// Canonical titles of the two notes every statement must carry.
const (
	NoteTitlePolicies         = "Accounting rules and methods"
	NoteTitleSubsequentEvents = "Subsequent events"
)

// NoteService attaches the templated annex sections to an assembled
// statement. Content is fixed per system variant; the service is a plain
// consumer of the statement and adds no algorithmic behavior.
type NoteService struct{}

func NewNoteService() *NoteService {
	return &NoteService{}
}

// NotesFor returns the annex notes for a system variant: ten notes for the
// normal system, eight for the minimal system. Output is deterministic.
func (s *NoteService) NotesFor(system SystemVariant) []AnnexNote {
	if system == SystemMinimal {
		return buildNotes(minimalNoteTemplates)
	}
	return buildNotes(normalNoteTemplates)
}

type noteTemplate struct {
	title   string
	content string
}

func buildNotes(templates []noteTemplate) []AnnexNote {
	notes := make([]AnnexNote, len(templates))
	for i, t := range templates {
		notes[i] = AnnexNote{
			Number:       fmt.Sprintf("Note %d", i+1),
			Title:        t.title,
			Content:      t.content,
			DisplayOrder: i + 1,
		}
	}
	return notes
}

var normalNoteTemplates = []noteTemplate{
	{NoteTitlePolicies,
		"1.1 APPLICABLE FRAMEWORK\nThe accounts are kept under the SYSCOHADA framework.\n\n" +
			"1.2 ACCOUNTING PRINCIPLES\n- Accrual accounting\n- Historical cost measurement\n- Prudence in valuation"},
	{"Fixed assets",
		"2.1 INTANGIBLE ASSETS\nIntangible assets are amortized on a straight-line basis.\n\n" +
			"2.2 TANGIBLE ASSETS\nTangible assets are measured at acquisition cost."},
	{"Inventories",
		"3.1 INVENTORY MEASUREMENT\nInventories are measured at weighted average cost."},
	{"Receivables",
		"4.1 TRADE RECEIVABLES\nTrade receivables are carried at nominal value."},
	{"Payables",
		"5.1 TRADE PAYABLES\nTrade payables are carried at nominal value."},
	{"Equity",
		"6.1 SHARE CAPITAL\nThe share capital is fully paid up."},
	{"Expenses",
		"7.1 EXPENSE BREAKDOWN\nExpenses are broken down by nature and by function."},
	{"Revenue",
		"8.1 REVENUE BREAKDOWN\nRevenue is broken down by nature and by function."},
	{"Off-balance-sheet commitments",
		"9.1 COMMITMENTS GIVEN\nNo significant commitment given.\n\n9.2 COMMITMENTS RECEIVED\nNo significant commitment received."},
	{NoteTitleSubsequentEvents,
		"10.1 EVENTS AFTER THE CLOSING DATE\nNo significant subsequent event has been identified."},
}

var minimalNoteTemplates = []noteTemplate{
	{NoteTitlePolicies,
		"1.1 APPLICABLE FRAMEWORK\nThe accounts are kept under the minimal cash-basis system of the SYSCOHADA framework.\n\n" +
			"1.2 ACCOUNTING PRINCIPLES\n- Simplified accrual accounting\n- Historical cost measurement\n- Prudence in valuation"},
	{"Fixed assets",
		"2.1 FIXED ASSETS\nFixed assets are amortized on a straight-line basis."},
	{"Cash",
		"3.1 CASH\nCash comprises amounts held in hand and at banks."},
	{"Own funds",
		"4.1 OWN FUNDS\nOwn funds comprise associative funds and reserves."},
	{"Payables",
		"5.1 PAYABLES\nPayables are carried at nominal value."},
	{"Resources",
		"6.1 RESOURCES\nResources comprise donations, grants and services rendered."},
	{"Expenses",
		"7.1 EXPENSES\nExpenses are broken down by nature."},
	{NoteTitleSubsequentEvents,
		"8.1 EVENTS AFTER THE CLOSING DATE\nNo significant subsequent event has been identified."},
}
