package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsact/internal/model"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, username, hashed_password, full_name, email, avatar_url, role, created_at`

func scanAdmin(row pgx.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.HashedPassword, &a.FullName, &a.Email,
		&a.AvatarURL, &a.Role, &a.CreatedAt)
	return a, err
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (model.Admin, error) {
	a, err := scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Admin{}, model.ErrAdminNotFound
	}
	if err != nil {
		return model.Admin{}, fmt.Errorf("find admin by id: %w", err)
	}
	return a, nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (model.Admin, error) {
	a, err := scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE lower(username) = lower($1)`,
		strings.TrimSpace(username)))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Admin{}, model.ErrAdminNotFound
	}
	if err != nil {
		return model.Admin{}, fmt.Errorf("find admin by username: %w", err)
	}
	return a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a model.Admin) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admins (id, username, hashed_password, full_name, email, avatar_url, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Username, a.HashedPassword, a.FullName, a.Email, a.AvatarURL, a.Role, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a model.Admin) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admins SET full_name = $2, email = $3, avatar_url = $4, hashed_password = $5
		 WHERE id = $1`,
		a.ID, a.FullName, a.Email, a.AvatarURL, a.HashedPassword)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}
