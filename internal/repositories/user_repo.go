package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvillagran/securedocs/internal/database"
	"github.com/mvillagran/securedocs/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning user rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanUserRow populates a full User model, hashes included. Only the reset
// flow reads rows through this path.
func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var oldPasswordHash *string

	err := scanner.Scan(
		&user.ID, &user.Email, &user.Name,
		&user.PasswordHash, &oldPasswordHash,
		&user.Attempts, &user.FirstLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if oldPasswordHash != nil {
		user.OldPasswordHash = *oldPasswordHash
	}

	return &user, nil
}

// scanProjectedRow populates a User without its credential fields. Every
// read that ends up in a response body goes through this projection.
func scanProjectedRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.Email, &user.Name,
		&user.Attempts, &user.FirstLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

// GetByEmail returns the full account record, credential hashes included.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, old_password_hash, attempts, first_login, created_at, updated_at
		FROM users WHERE email = $1
	`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

// FindByEmail returns the account without credential fields.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, attempts, first_login, created_at, updated_at
		FROM users WHERE email = $1
	`

	return scanProjectedRow(r.pool.QueryRow(ctx, query, email))
}

// List returns all accounts without credential fields.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, email, name, attempts, first_login, created_at, updated_at
		FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanProjectedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, name, password_hash, old_password_hash, attempts, first_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, email, name, password_hash, old_password_hash, attempts, first_login, created_at, updated_at
	`

	var oldPasswordHash *string
	if user.OldPasswordHash != "" {
		oldPasswordHash = &user.OldPasswordHash
	}

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.Name,
		user.PasswordHash, oldPasswordHash,
		user.Attempts, user.FirstLogin,
		user.CreatedAt, user.UpdatedAt,
	))
}

// Update changes the mutable profile fields of the account identified by
// email and returns the updated record without credential fields.
func (r *UserRepository) Update(ctx context.Context, email string, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET name = $1, updated_at = $2
		WHERE email = $3
		RETURNING id, email, name, attempts, first_login, created_at, updated_at
	`

	return scanProjectedRow(r.pool.QueryRow(ctx, query, user.Name, user.UpdatedAt, email))
}

// UpdatePassword rotates the stored hash in a single statement: the current
// hash moves to old_password_hash and first_login is raised so the next
// authentication forces a change. Last write wins under concurrent resets.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query := `
		UPDATE users
		SET old_password_hash = password_hash, password_hash = $1, first_login = TRUE, updated_at = $2
		WHERE email = $3
	`

	result, err := r.pool.Exec(ctx, query, passwordHash, time.Now(), email)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM users WHERE email = $1`

	result, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
