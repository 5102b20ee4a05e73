package threads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/chemhub/chemforum/internal/common"
	"github.com/chemhub/chemforum/internal/dbx"
	"github.com/chemhub/chemforum/internal/server/models"
)

// answersCountExpr computes the live answer count per thread. It is
// evaluated per row, not cached, so listings never show stale counts.
const answersCountExpr = `(SELECT COUNT(*) FROM answers a WHERE a.thread_id = t.id AND a.is_deleted = FALSE) AS answers_count`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, thread *models.Thread) (*models.Thread, error) {
	query := `
		INSERT INTO threads (title, content, category_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		thread.Title, thread.Content, thread.CategoryID, thread.AuthorID).
		Scan(&thread.ID, &thread.CreatedAt, &thread.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return thread, nil
}

func (r *PostgresRepository) GetActive(ctx context.Context, id int64) (*models.Thread, error) {
	query := `
		SELECT id, title, content, category_id, author_id, created_at, updated_at, is_deleted
		FROM threads
		WHERE id = $1 AND is_deleted = FALSE
	`

	t := &models.Thread{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Content, &t.CategoryID, &t.AuthorID,
		&t.CreatedAt, &t.UpdatedAt, &t.IsDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// where applies the soft-delete exclusion and the optional category and
// text filters, in that order.
func where(b squirrel.SelectBuilder, f Filter) squirrel.SelectBuilder {
	b = b.Where(squirrel.Eq{"t.is_deleted": false})
	if f.CategorySlug != "" {
		b = b.Where(squirrel.Eq{"c.slug": f.CategorySlug})
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"t.title": pattern},
			squirrel.ILike{"t.content": pattern},
		})
	}
	return b
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]models.ThreadSummary, error) {
	b := squirrel.Select(
		"t.id", "t.title", "t.content", "c.name", "c.slug", "u.username", "t.created_at",
		answersCountExpr,
	).
		From("threads t").
		Join("categories c ON c.id = t.category_id").
		Join("users u ON u.id = t.author_id").
		PlaceholderFormat(squirrel.Dollar)

	b = where(b, f)

	switch f.Sort {
	case SortActive:
		b = b.OrderBy("t.updated_at DESC")
	case SortTop:
		b = b.OrderBy("answers_count DESC", "t.created_at DESC")
	default:
		b = b.OrderBy("t.created_at DESC")
	}

	b = b.Limit(f.Limit).Offset(f.Offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query build error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var summaries []models.ThreadSummary
	for rows.Next() {
		var s models.ThreadSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.CategoryName, &s.CategorySlug,
			&s.Author, &s.CreatedAt, &s.AnswersCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return summaries, nil
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int64, error) {
	b := squirrel.Select("COUNT(*)").
		From("threads t").
		Join("categories c ON c.id = t.category_id").
		PlaceholderFormat(squirrel.Dollar)

	b = where(b, f)

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("query build error: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
