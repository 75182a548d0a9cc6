package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
)

// Store is a pgx-backed PaymentRepository. Save upserts, so the last write
// for an identifier wins, matching the store contract.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Save(ctx context.Context, p *payment.Payment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO payments (id, status, card_last_four, expiration_month, expiration_year, currency, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			card_last_four = EXCLUDED.card_last_four,
			expiration_month = EXCLUDED.expiration_month,
			expiration_year = EXCLUDED.expiration_year,
			currency = EXCLUDED.currency,
			amount = EXCLUDED.amount,
			created_at = EXCLUDED.created_at`,
		p.ID(), string(p.Status()), p.CardLastFour(), p.ExpirationMonth(),
		p.ExpirationYear(), p.Currency(), p.Amount(), p.CreatedAt(),
	)
	return err
}

func (s *Store) Find(ctx context.Context, id string) (*payment.Payment, error) {
	var (
		status, lastFour, month, year, currency, amount string
		createdAt                                       time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT status, card_last_four, expiration_month, expiration_year, currency, amount, created_at
		FROM payments WHERE id = $1`, id,
	).Scan(&status, &lastFour, &month, &year, &currency, &amount, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payment.ReconstructPayment(
		id, payment.Status(status), lastFour, month, year, currency, amount, createdAt,
	), nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM payments`).Scan(&n)
	return n, err
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE payments`)
	return err
}
