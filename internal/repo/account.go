package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Junaid083/SprintSync/internal/model"
)

const accountColumns = `id, email, secret_digest, is_admin, is_active, is_deleted,
	last_login_at, created_at, updated_at`

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts an account. The secret digest must already be computed by
// the caller; this layer never hashes.
func (r *AccountRepo) Create(ctx context.Context, a model.Account) (model.Account, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))

	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, email, secret_digest, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns+`
	`, a.ID, a.Email, a.SecretDigest, a.IsAdmin, a.IsActive).Scan(
		&a.ID, &a.Email, &a.SecretDigest, &a.IsAdmin, &a.IsActive, &a.IsDeleted,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, mapError(err)
}

// GetByEmail looks up an active, non-deleted account. Email matching is
// case-insensitive.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE lower(email) = lower($1)
		  AND is_active = TRUE
		  AND is_deleted = FALSE
	`, strings.TrimSpace(email)).Scan(
		&a.ID, &a.Email, &a.SecretDigest, &a.IsAdmin, &a.IsActive, &a.IsDeleted,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, ErrorNotFound
	}
	return a, err
}

// GetActive re-checks account status by id; a token issued before
// deactivation stops working on the next read that calls this.
func (r *AccountRepo) GetActive(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
		  AND is_active = TRUE
		  AND is_deleted = FALSE
	`, id).Scan(
		&a.ID, &a.Email, &a.SecretDigest, &a.IsAdmin, &a.IsActive, &a.IsDeleted,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, ErrorNotFound
	}
	return a, err
}

func (r *AccountRepo) List(ctx context.Context) ([]model.AccountRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, is_admin
		FROM accounts
		WHERE is_active = TRUE AND is_deleted = FALSE
		ORDER BY email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []model.AccountRef{}
	for rows.Next() {
		var ref model.AccountRef
		if err := rows.Scan(&ref.ID, &ref.Email, &ref.IsAdmin); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *AccountRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts SET last_login_at = now(), updated_at = now() WHERE id = $1
	`, id)
	return err
}
