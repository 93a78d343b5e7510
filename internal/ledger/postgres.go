package ledger

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/001_create_expenses.sql
var createExpensesSQL string

// Postgres appends expense rows to an expenses table
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and ensures the expenses table exists
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createExpensesSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating expenses table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// AppendRow inserts one expense row in Header order
func (p *Postgres) AppendRow(ctx context.Context, values []string) error {
	if len(values) != 5 {
		return fmt.Errorf("expected 5 columns, got %d", len(values))
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO expenses (receipt_date, vendor_name, total_amount, category, memo) VALUES ($1, $2, $3, $4, $5)`,
		values[0], values[1], values[2], values[3], values[4],
	)
	if err != nil {
		return fmt.Errorf("inserting expense row: %w", err)
	}

	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
