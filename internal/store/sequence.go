package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequenceCounter numbers every row written, across tables, so LLM calls,
// answers and results interleave in one order. The counter row lives in
// global_sequence and is seeded by migrate.
type sequenceCounter struct {
	db *sql.DB
}

// Next returns the current value and advances the counter in a single
// statement.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
