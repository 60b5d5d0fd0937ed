package core

// Default reporting context: the engine ships with a SYSCOHADA catalog for
// Burkina Faso. Deployments targeting another jurisdiction load their own
// catalog instead of the defaults.
const (
	DefaultCountryCode = "BF"
	DefaultStandard    = "SYSCOHADA"
)

// DefaultMappings returns the built-in SYSCOHADA line-mapping catalog:
// balance sheet and income statement for the normal system, cash position
// and receipts/expenses for the minimal system. Pattern overlaps between a
// total line and its detail lines are intentional; totals are pattern-backed
// rather than derived from children.
func DefaultMappings() []LineMapping {
	var (
		order    int
		mappings []LineMapping
	)
	add := func(statement StatementType, system SystemVariant, code, label string, patterns []string, sign NormalSign, level int, isTotal bool) {
		order += 10
		mappings = append(mappings, LineMapping{
			CountryCode:     DefaultCountryCode,
			Standard:        DefaultStandard,
			System:          system,
			Statement:       statement,
			LineCode:        code,
			Label:           label,
			AccountPatterns: patterns,
			NormalSign:      sign,
			DisplayOrder:    order,
			Level:           level,
			IsTotal:         isTotal,
			Active:          true,
		})
	}

	// ── Balance sheet, normal system ──────────────────────────────────────
	add(BalanceSheet, SystemNormal, "AD", "Intangible assets", []string{"21%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "AI", "Tangible assets", []string{"22%", "23%", "24%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "AQ", "Financial assets", []string{"26%", "27%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "AZ", "Total fixed assets", []string{"2%"}, SignDebit, 1, true)
	add(BalanceSheet, SystemNormal, "BB", "Inventories", []string{"31%", "32%", "33%", "34%", "35%", "36%", "37%", "38%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "BI", "Trade receivables", []string{"411%", "416%", "418%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "BS", "Cash and banks", []string{"51%", "52%", "53%", "54%", "57%", "58%"}, SignDebit, 2, false)
	add(BalanceSheet, SystemNormal, "CA", "Capital", []string{"101%", "104%", "105%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "CE", "Reserves", []string{"111%", "112%", "113%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "CF", "Retained earnings", []string{"12%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "CG", "Net result of the period", []string{"13%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "DA", "Loans and financial debt", []string{"16%", "17%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "DJ", "Trade payables", []string{"401%", "403%", "408%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "DK", "Tax and social payables", []string{"42%", "43%", "44%"}, SignCredit, 2, false)
	add(BalanceSheet, SystemNormal, "DR", "Bank overdrafts", []string{"56%"}, SignCredit, 2, false)

	// ── Income statement, normal system ───────────────────────────────────
	add(IncomeStatement, SystemNormal, "TA", "Sales of goods", []string{"701%"}, SignCredit, 2, false)
	add(IncomeStatement, SystemNormal, "TC", "Services sold", []string{"704%", "705%", "706%"}, SignCredit, 2, false)
	add(IncomeStatement, SystemNormal, "TD", "Ancillary revenue", []string{"707%", "708%"}, SignCredit, 2, false)
	add(IncomeStatement, SystemNormal, "TH", "Other operating income", []string{"754%", "758%"}, SignCredit, 2, false)
	add(IncomeStatement, SystemNormal, "TK", "Financial income", []string{"77%"}, SignCredit, 2, false)
	add(IncomeStatement, SystemNormal, "XT", "Total revenue", []string{"70%", "75%", "77%"}, SignCredit, 1, true)
	add(IncomeStatement, SystemNormal, "RA", "Purchases of goods", []string{"601%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RE", "Other purchases", []string{"604%", "605%", "606%", "607%", "608%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RG", "Transport", []string{"61%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RH", "External services", []string{"62%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RI", "Taxes and duties", []string{"63%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RJ", "Other expenses", []string{"65%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RK", "Personnel expenses", []string{"66%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RL", "Depreciation and provisions", []string{"68%", "69%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "RM", "Financial expenses", []string{"67%"}, SignDebit, 2, false)
	add(IncomeStatement, SystemNormal, "XR", "Total expenses", []string{"6%"}, SignDebit, 1, true)

	// ── Cash position, minimal system ─────────────────────────────────────
	add(CashPosition, SystemMinimal, "TR", "Cash on hand", []string{"57%"}, SignDebit, 2, false)
	add(CashPosition, SystemMinimal, "BQ", "Banks", []string{"52%"}, SignDebit, 2, false)
	add(CashPosition, SystemMinimal, "TZ", "Total cash", []string{"5%"}, SignDebit, 1, true)
	add(CashPosition, SystemMinimal, "DB", "Bank overdrafts", []string{"56%"}, SignCredit, 2, false)

	// ── Receipts and expenses, minimal system ─────────────────────────────
	add(ReceiptsAndExpenses, SystemMinimal, "RC", "Receipts", []string{"7%"}, SignCredit, 1, false)
	add(ReceiptsAndExpenses, SystemMinimal, "DP", "Disbursements", []string{"6%"}, SignDebit, 1, false)

	return mappings
}
