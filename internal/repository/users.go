package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO users (username, password_hash, email, organization_id, is_manager)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	params := []any{user.Username, user.PasswordHash, user.Email, user.OrganizationID, user.IsManager}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version)
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, username, password_hash, email, organization_id, is_manager, is_active, created_at, version
		FROM users
		WHERE username = $1
	`

	user := &domain.User{}
	dst := []any{
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.OrganizationID, &user.IsManager, &user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, username, password_hash, email, organization_id, is_manager, is_active, created_at, version
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	dst := []any{
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.OrganizationID, &user.IsManager, &user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
