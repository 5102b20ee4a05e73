package answers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chemhub/chemforum/internal/common"
	"github.com/chemhub/chemforum/internal/dbx"
	"github.com/chemhub/chemforum/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	query := `
		INSERT INTO answers (thread_id, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		answer.ThreadID, answer.Content, answer.AuthorID).Scan(&answer.ID, &answer.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return answer, nil
}

func (r *PostgresRepository) GetActiveForUpdate(ctx context.Context, id int64) (*models.Answer, error) {
	query := `
		SELECT id, thread_id, content, author_id, created_at, votes, is_deleted
		FROM answers
		WHERE id = $1 AND is_deleted = FALSE
		FOR UPDATE
	`

	a := &models.Answer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ThreadID, &a.Content, &a.AuthorID, &a.CreatedAt, &a.Votes, &a.IsDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) IncrementVotes(ctx context.Context, id int64) (int64, error) {
	query := `
		UPDATE answers SET votes = votes + 1
		WHERE id = $1
		RETURNING votes
	`
	var votes int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&votes); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return votes, nil
}

func (r *PostgresRepository) DecrementVotes(ctx context.Context, id int64) (int64, error) {
	query := `
		UPDATE answers SET votes = GREATEST(votes - 1, 0)
		WHERE id = $1
		RETURNING votes
	`
	var votes int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&votes); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return votes, nil
}
