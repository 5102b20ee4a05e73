package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chemhub/chemforum/internal/server/forum"
	"github.com/chemhub/chemforum/internal/server/models"
	"github.com/chemhub/chemforum/internal/server/users"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type categoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type threadJSON struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Category     categoryJSON `json:"category"`
	Author       string       `json:"author"`
	CreatedAt    string       `json:"created_at"`
	AnswersCount int64        `json:"answers_count"`
}

type threadPageJSON struct {
	Threads  []threadJSON `json:"threads"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int64        `json:"total"`
	HasNext  bool         `json:"has_next"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toAuthJSON(res *users.AuthResult) authJSON {
	return authJSON{Token: res.Token, User: toUserJSON(res.User)}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthJSON(res))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthJSON(res))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	s.withUser(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		writeJSON(w, http.StatusOK, toUserJSON(user))
	})(w, r)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	categories, err := s.forum.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleThreads(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListThreads(w, r)
	case http.MethodPost:
		s.withUser(s.handleCreateThread)(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListThreads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(q.Get("page_size"))
	if err != nil {
		pageSize = forum.DefaultPageSize
	}

	result, err := s.forum.ListThreads(r.Context(), forum.ListParams{
		Query:        q.Get("q"),
		CategorySlug: q.Get("c"),
		Sort:         q.Get("sort"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]threadJSON, 0, len(result.Threads))
	for _, t := range result.Threads {
		items = append(items, threadJSON{
			ID:      t.ID,
			Title:   t.Title,
			Content: t.Content,
			Category: categoryJSON{
				Name: t.CategoryName,
				Slug: t.CategorySlug,
			},
			Author:       t.Author,
			CreatedAt:    t.CreatedAt.Format(time.RFC3339),
			AnswersCount: t.AnswersCount,
		})
	}

	writeJSON(w, http.StatusOK, threadPageJSON{
		Threads:  items,
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
		HasNext:  result.HasNext,
	})
}

func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := s.forum.CreateThread(r.Context(), user.ID, req.Title, req.Content, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	s.withUser(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		var req struct {
			ThreadID int64  `json:"thread_id"`
			Content  string `json:"content"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		id, err := s.forum.CreateAnswer(r.Context(), user.ID, req.ThreadID, req.Content)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"id": id})
	})(w, r)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	s.withUser(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		var req struct {
			AnswerID int64 `json:"answer_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		votes, voted, err := s.forum.ToggleVote(r.Context(), user.ID, req.AnswerID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"votes": votes, "voted": voted})
	})(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	s.withUser(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		var req struct {
			ItemType string `json:"item_type"`
			ItemID   int64  `json:"item_id"`
			Reason   string `json:"reason"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		if err := s.forum.Report(r.Context(), user.ID, req.ItemType, req.ItemID, req.Reason); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
	})(w, r)
}
