package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"statement-engine/internal/app"
	"statement-engine/internal/config"
	"statement-engine/internal/core"
	"statement-engine/internal/db"
	"statement-engine/internal/postgres"
)

var statementTypes = map[string]core.StatementType{
	"balance-sheet":         core.BalanceSheet,
	"income-statement":      core.IncomeStatement,
	"cash-flow":             core.CashFlow,
	"cash-position":         core.CashPosition,
	"receipts-and-expenses": core.ReceiptsAndExpenses,
	"annexes":               core.Annexes,
}

func parseStatementType(name string) (core.StatementType, error) {
	st, ok := statementTypes[name]
	if !ok {
		return "", fmt.Errorf("unknown statement type %q (expected one of balance-sheet, income-statement, cash-flow, cash-position, receipts-and-expenses, annexes)", name)
	}
	return st, nil
}

func parseSystem(name string) (core.SystemVariant, error) {
	switch name {
	case "normal":
		return core.SystemNormal, nil
	case "minimal":
		return core.SystemMinimal, nil
	default:
		return "", fmt.Errorf("unknown system %q (expected normal or minimal)", name)
	}
}

func parseCutoff(value string) (time.Time, error) {
	cutoff, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date %q (expected YYYY-MM-DD)", value)
	}
	return cutoff, nil
}

// deps carries everything a command needs once wired. pool is nil when the
// command runs without a database.
type deps struct {
	cfg     *config.Config
	pool    *pgxpool.Pool
	service app.StatementService
}

func (d *deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// buildDeps loads configuration and wires the engine. The mapping catalog is
// resolved in order of preference: the catalog file when configured, the
// database when reachable, and the built-in defaults otherwise.
func buildDeps(ctx context.Context, catalogPath string, lenient bool) (*deps, error) {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if lenient {
		cfg.StrictAggregation = false
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	mappings, err := resolveMappings(ctx, cfg, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	registry := core.NewMappingRegistry(mappings)

	ledger := postgres.NewLedgerStore(pool)
	var balances *core.BalanceService
	if cfg.StrictAggregation {
		balances = core.NewBalanceService(ledger)
	} else {
		balances = core.NewLenientBalanceService(ledger)
	}

	store := postgres.NewStatementStore(pool)
	assembler := core.NewAssemblyService(registry, balances)
	validator := core.NewValidationService(registry, store)

	return &deps{
		cfg:     cfg,
		pool:    pool,
		service: app.NewStatementService(assembler, validator, core.NewNoteService(), store),
	}, nil
}

func resolveMappings(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) ([]core.LineMapping, error) {
	if cfg.CatalogPath != "" {
		mappings, err := config.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog %s: %w", cfg.CatalogPath, err)
		}
		return mappings, nil
	}

	stored, err := postgres.NewMappingStore(pool).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading mappings: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}
	return core.DefaultMappings(), nil
}
