package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/dbx"
	"github.com/dmitrijs2005/kanban/internal/server/models"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cardColumns = `id, owner_id, title, description, status, due_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		c   models.Card
		due sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Status, &due, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		c.DueDate = &t
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (owner_id, title, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + cardColumns

	row := r.db.QueryRowContext(ctx, query,
		card.OwnerID, card.Title, card.Description, string(card.Status), card.DueDate)
	c, err := scanCard(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select cards: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE id = $1 AND owner_id = $2`

	c, err := scanCard(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Update is a single statement, so the ownership check and the write cannot
// be separated by a concurrent delete.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID string, patch models.CardPatch) (*models.Card, error) {
	query := `
		UPDATE cards SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			status = COALESCE($5, status),
			due_date = COALESCE($6, due_date),
			updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + cardColumns

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query,
		id, ownerID, patch.Title, patch.Description, status, patch.DueDate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM cards
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
