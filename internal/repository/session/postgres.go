package session

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chefmarket-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Record(ctx context.Context, s domain.CheckoutSession) error {
	const q = `
INSERT INTO checkout_sessions (session_id, order_id, url)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, q, s.SessionID, s.OrderID, s.URL)
	return err
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.CheckoutSession, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id::text, session_id, order_id, url, created_at
FROM checkout_sessions
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CheckoutSession
	for rows.Next() {
		var s domain.CheckoutSession
		if err := rows.Scan(&s.ID, &s.SessionID, &s.OrderID, &s.URL, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
