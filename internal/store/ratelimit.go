package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type RateLimitsStore struct {
	db *sqlx.DB
}

// RateLimitResult tells the middleware whether the request fits the current
// window and, when it does not, how long the caller should wait.
type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Take consumes one slot of the fixed window identified by key. The counter
// row is shared by every instance, so the limit holds across replicas.
func (rs *RateLimitsStore) Take(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error) {
	now := time.Now()

	var record struct {
		Count     int       `db:"count"`
		ExpiresAt time.Time `db:"expires_at"`
	}

	err := rs.db.GetContext(ctx, &record,
		`SELECT count, expires_at FROM rate_limits WHERE key = $1`, key)

	if errors.Is(err, sql.ErrNoRows) {
		_, err = rs.db.ExecContext(ctx,
			`INSERT INTO rate_limits (key, count, expires_at) VALUES ($1, 1, $2)
			 ON CONFLICT (key) DO UPDATE SET count = rate_limits.count + 1`,
			key, now.Add(window))
		if err != nil {
			return RateLimitResult{}, fmt.Errorf("failed to create rate limit window: %w", err)
		}
		return RateLimitResult{Allowed: true}, nil
	}
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	if record.ExpiresAt.Before(now) {
		_, err = rs.db.ExecContext(ctx,
			`UPDATE rate_limits SET count = 1, expires_at = $1 WHERE key = $2`,
			now.Add(window), key)
		if err != nil {
			return RateLimitResult{}, fmt.Errorf("failed to reset rate limit window: %w", err)
		}
		return RateLimitResult{Allowed: true}, nil
	}

	if record.Count >= limit {
		return RateLimitResult{Allowed: false, RetryAfter: record.ExpiresAt.Sub(now)}, nil
	}

	_, err = rs.db.ExecContext(ctx,
		`UPDATE rate_limits SET count = count + 1 WHERE key = $1`, key)
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to increment rate limit window: %w", err)
	}
	return RateLimitResult{Allowed: true}, nil
}
