package votes

import (
	"context"
	"fmt"

	"github.com/chemhub/chemforum/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, answerID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM answer_votes WHERE answer_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, answerID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, answerID, userID int64) error {
	query := `
		INSERT INTO answer_votes (answer_id, user_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, answerID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, answerID, userID int64) error {
	query := `
		DELETE FROM answer_votes WHERE answer_id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, answerID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
