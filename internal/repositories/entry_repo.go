package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/mvillagran/securedocs/internal/database"
	"github.com/mvillagran/securedocs/internal/models"
)

type EntryRepository struct {
	pool *pgxpool.Pool
}

func NewEntryRepository(db *database.DB) *EntryRepository {
	return &EntryRepository{pool: db.Pool}
}

func scanEntryRow(scanner rowScanner) (*models.Entry, error) {
	var entry models.Entry

	err := scanner.Scan(
		&entry.ID,
		&entry.Description,
		&entry.Status,
		pq.Array(&entry.Tags),
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &entry, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `
		SELECT id, description, status, tags, created_at, updated_at
		FROM entries WHERE id = $1
	`

	return scanEntryRow(r.pool.QueryRow(ctx, query, id))
}

func (r *EntryRepository) List(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	query := `
		SELECT id, description, status, tags, created_at, updated_at
		FROM entries ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	entry.ID = uuid.New().String()

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if entry.Status == "" {
		entry.Status = models.StatusPending
	}

	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	query := `
		INSERT INTO entries (id, description, status, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, description, status, tags, created_at, updated_at
	`

	return scanEntryRow(r.pool.QueryRow(ctx, query,
		entry.ID, entry.Description, entry.Status, pq.Array(entry.Tags),
		entry.CreatedAt, entry.UpdatedAt,
	))
}

func (r *EntryRepository) Update(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error) {
	entry.UpdatedAt = time.Now()

	query := `
		UPDATE entries SET description = $1, status = $2, tags = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, description, status, tags, created_at, updated_at
	`

	return scanEntryRow(r.pool.QueryRow(ctx, query,
		entry.Description, entry.Status, pq.Array(entry.Tags), entry.UpdatedAt, id,
	))
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM entries WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
