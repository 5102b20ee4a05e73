// Package forum implements the thread listing (filter, search, sort,
// pagination) and the gated mutations: thread and answer creation, the
// vote toggle, and reporting.
package forum

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/chemhub/chemforum/internal/common"
	"github.com/chemhub/chemforum/internal/dbx"
	"github.com/chemhub/chemforum/internal/server/models"
	"github.com/chemhub/chemforum/internal/server/repositories/repomanager"
	"github.com/chemhub/chemforum/internal/server/repositories/threads"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50

	// Listing shows at most this many characters of thread content.
	contentPreviewLen = 300
)

// ListParams are the raw listing inputs. Out-of-range values are
// clamped, unknown sorts fall back to latest.
type ListParams struct {
	Query        string
	CategorySlug string
	Sort         string
	Page         int
	PageSize     int
}

// ThreadPage is one page of thread summaries. Total counts every match
// before pagination.
type ThreadPage struct {
	Threads  []models.ThreadSummary
	Page     int
	PageSize int
	Total    int64
	HasNext  bool
}

type Service struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager) *Service {
	return &Service{db: db, rm: rm}
}

// ListThreads returns the page of non-deleted threads selected by the
// params. Content previews are truncated to 300 characters.
func (s *Service) ListThreads(ctx context.Context, p ListParams) (*ThreadPage, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	sort := p.Sort
	switch sort {
	case threads.SortActive, threads.SortTop:
	default:
		sort = threads.SortLatest
	}

	filter := threads.Filter{
		Query:        strings.TrimSpace(p.Query),
		CategorySlug: strings.TrimSpace(p.CategorySlug),
		Sort:         sort,
		Limit:        uint64(size),
		Offset:       uint64(page-1) * uint64(size),
	}

	repo := s.rm.Threads(s.db)

	summaries, err := repo.List(ctx, filter)
	if err != nil {
		return nil, common.ErrInternal
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, common.ErrInternal
	}

	if summaries == nil {
		summaries = []models.ThreadSummary{}
	}
	for i := range summaries {
		summaries[i].Content = truncate(summaries[i].Content, contentPreviewLen)
	}

	return &ThreadPage{
		Threads:  summaries,
		Page:     page,
		PageSize: size,
		Total:    total,
		HasNext:  filter.Offset+uint64(size) < uint64(total),
	}, nil
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.rm.Categories(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CreateThread persists a new thread for the author. An unknown
// category slug is common.ErrInvalidCategory, distinct from missing
// fields.
func (s *Service) CreateThread(ctx context.Context, authorID int64, title, content, categorySlug string) (int64, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	categorySlug = strings.TrimSpace(categorySlug)
	if title == "" || content == "" || categorySlug == "" {
		return 0, common.ErrMissingFields
	}

	category, err := s.rm.Categories(s.db).GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.ErrInvalidCategory
		}
		return 0, common.ErrInternal
	}

	thread, err := s.rm.Threads(s.db).Create(ctx, &models.Thread{
		Title:      title,
		Content:    content,
		CategoryID: category.ID,
		AuthorID:   authorID,
	})
	if err != nil {
		return 0, common.ErrInternal
	}

	return thread.ID, nil
}

// CreateAnswer persists a new answer on a non-deleted thread.
func (s *Service) CreateAnswer(ctx context.Context, authorID, threadID int64, content string) (int64, error) {
	content = strings.TrimSpace(content)
	if threadID == 0 || content == "" {
		return 0, common.ErrMissingFields
	}

	if _, err := s.rm.Threads(s.db).GetActive(ctx, threadID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, err
		}
		return 0, common.ErrInternal
	}

	answer, err := s.rm.Answers(s.db).Create(ctx, &models.Answer{
		ThreadID: threadID,
		Content:  content,
		AuthorID: authorID,
	})
	if err != nil {
		return 0, common.ErrInternal
	}

	return answer.ID, nil
}

// ToggleVote casts or retracts the user's vote on an answer. The vote
// row and the denormalized counter change together inside one
// transaction, with the answer row locked so concurrent toggles
// serialize. Both outcomes are normal results, not errors.
func (s *Service) ToggleVote(ctx context.Context, userID, answerID int64) (votes int64, voted bool, err error) {
	if answerID == 0 {
		return 0, false, common.ErrMissingFields
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		answerRepo := s.rm.Answers(tx)
		voteRepo := s.rm.Votes(tx)

		answer, err := answerRepo.GetActiveForUpdate(ctx, answerID)
		if err != nil {
			return err
		}

		exists, err := voteRepo.Exists(ctx, answer.ID, userID)
		if err != nil {
			return err
		}

		if exists {
			if err := voteRepo.Delete(ctx, answer.ID, userID); err != nil {
				return err
			}
			votes, err = answerRepo.DecrementVotes(ctx, answer.ID)
			voted = false
			return err
		}

		if err := voteRepo.Create(ctx, answer.ID, userID); err != nil {
			return err
		}
		votes, err = answerRepo.IncrementVotes(ctx, answer.ID)
		voted = true
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, false, err
		}
		return 0, false, common.ErrInternal
	}

	return votes, voted, nil
}

// Report records an abuse report. The target id is stored as given and
// never validated; it may reference an item removed concurrently.
func (s *Service) Report(ctx context.Context, reporterID int64, itemType string, itemID int64, reason string) error {
	itemType = strings.TrimSpace(itemType)
	reason = strings.TrimSpace(reason)
	if itemType == "" || itemID == 0 || reason == "" {
		return common.ErrMissingFields
	}
	if itemType != models.ItemTypeThread && itemType != models.ItemTypeAnswer {
		return common.ErrInvalidItemType
	}

	_, err := s.rm.Reports(s.db).Create(ctx, &models.Report{
		ItemType:   itemType,
		ItemID:     itemID,
		Reason:     reason,
		ReporterID: reporterID,
	})
	if err != nil {
		return common.ErrInternal
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
