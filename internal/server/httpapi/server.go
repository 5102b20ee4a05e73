// Package httpapi exposes the forum and auth services over JSON/HTTP:
// routing, the bearer-token gate, request logging, and the mapping from
// domain errors to status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/chemhub/chemforum/internal/logging"
	"github.com/chemhub/chemforum/internal/server/forum"
	"github.com/chemhub/chemforum/internal/server/models"
	"github.com/chemhub/chemforum/internal/server/users"
)

// UserService is the slice of the users service the API needs.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*users.AuthResult, error)
	Login(ctx context.Context, username, email, password string) (*users.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ForumService is the slice of the forum service the API needs.
type ForumService interface {
	ListThreads(ctx context.Context, p forum.ListParams) (*forum.ThreadPage, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateThread(ctx context.Context, authorID int64, title, content, categorySlug string) (int64, error)
	CreateAnswer(ctx context.Context, authorID, threadID int64, content string) (int64, error)
	ToggleVote(ctx context.Context, userID, answerID int64) (int64, bool, error)
	Report(ctx context.Context, reporterID int64, itemType string, itemID int64, reason string) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	forum   ForumService
}

func NewServer(address string, logger logging.Logger, us UserService, fs ForumService) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "httpapi"),
		users:   us,
		forum:   fs,
	}
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/me", s.handleMe)
	mux.HandleFunc("/api/forum/categories", s.handleCategories)
	mux.HandleFunc("/api/forum/threads", s.handleThreads)
	mux.HandleFunc("/api/forum/answers", s.handleAnswers)
	mux.HandleFunc("/api/forum/vote", s.handleVote)
	mux.HandleFunc("/api/forum/report", s.handleReport)

	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
