package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chemhub/chemforum/internal/common"
	"github.com/chemhub/chemforum/internal/logging"
	"github.com/chemhub/chemforum/internal/server/forum"
	"github.com/chemhub/chemforum/internal/server/models"
	"github.com/chemhub/chemforum/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	registerResult *users.AuthResult
	registerErr    error
	loginResult    *users.AuthResult
	loginErr       error
	authUser       *models.User
	authErr        error
	lastToken      string
}

func (f *fakeUserService) Register(ctx context.Context, username, email, password string) (*users.AuthResult, error) {
	return f.registerResult, f.registerErr
}

func (f *fakeUserService) Login(ctx context.Context, username, email, password string) (*users.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeUserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	f.lastToken = token
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.authUser, nil
}

type fakeForumService struct {
	listParams forum.ListParams
	listResult *forum.ThreadPage
	listErr    error

	categories []models.Category

	createThreadID  int64
	createThreadErr error

	createAnswerID  int64
	createAnswerErr error

	voteCount int64
	voted     bool
	voteErr   error

	reportErr error
	reported  *models.Report
}

func (f *fakeForumService) ListThreads(ctx context.Context, p forum.ListParams) (*forum.ThreadPage, error) {
	f.listParams = p
	return f.listResult, f.listErr
}

func (f *fakeForumService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeForumService) CreateThread(ctx context.Context, authorID int64, title, content, categorySlug string) (int64, error) {
	return f.createThreadID, f.createThreadErr
}

func (f *fakeForumService) CreateAnswer(ctx context.Context, authorID, threadID int64, content string) (int64, error) {
	return f.createAnswerID, f.createAnswerErr
}

func (f *fakeForumService) ToggleVote(ctx context.Context, userID, answerID int64) (int64, bool, error) {
	return f.voteCount, f.voted, f.voteErr
}

func (f *fakeForumService) Report(ctx context.Context, reporterID int64, itemType string, itemID int64, reason string) error {
	if f.reportErr != nil {
		return f.reportErr
	}
	f.reported = &models.Report{ItemType: itemType, ItemID: itemID, Reason: reason, ReporterID: reporterID}
	return nil
}

func newTestServer(us *fakeUserService, fs *fakeForumService) http.Handler {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return NewServer(":0", logger, us, fs).Handler()
}

func authedUser() *models.User {
	return &models.User{ID: 7, Username: "alice", Email: "a@b.com"}
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegister(t *testing.T) {
	us := &fakeUserService{registerResult: &users.AuthResult{
		Token: "tok123",
		User:  authedUser(),
	}}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodPost, "/api/register", "", `{"username":"alice","email":"a@b.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "tok123", body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
}

func TestRegister_Duplicate(t *testing.T) {
	us := &fakeUserService{registerErr: common.ErrAlreadyExists}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodPost, "/api/register", "", `{"username":"alice","email":"a@b.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already exists", decodeJSON(t, w)["error"])
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	h := newTestServer(&fakeUserService{}, &fakeForumService{})

	w := doJSON(t, h, http.MethodGet, "/api/register", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrUnauthorized}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodPost, "/api/login", "", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeJSON(t, w)["error"])
}

func TestMe(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodGet, "/api/me", "tok123", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok123", us.lastToken)
	assert.Equal(t, "alice", decodeJSON(t, w)["username"])
}

func TestMe_NoToken(t *testing.T) {
	h := newTestServer(&fakeUserService{}, &fakeForumService{})

	w := doJSON(t, h, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeJSON(t, w)["error"])
}

func TestMe_BadToken(t *testing.T) {
	us := &fakeUserService{authErr: common.ErrUnauthorized}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodGet, "/api/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListThreads(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fs := &fakeForumService{listResult: &forum.ThreadPage{
		Threads: []models.ThreadSummary{{
			ID:           1,
			Title:        "Acid strength",
			Content:      "Why is HCl stronger than HF?",
			CategoryName: "Acids",
			CategorySlug: "acids",
			Author:       "alice",
			CreatedAt:    created,
			AnswersCount: 3,
		}},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}}
	h := newTestServer(&fakeUserService{}, fs)

	w := doJSON(t, h, http.MethodGet, "/api/forum/threads?q=acid&c=acids&sort=top&page=2&page_size=10", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, forum.ListParams{Query: "acid", CategorySlug: "acids", Sort: "top", Page: 2, PageSize: 10}, fs.listParams)

	body := decodeJSON(t, w)
	items := body["threads"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "Acid strength", first["title"])
	assert.Equal(t, "2025-03-01T10:00:00Z", first["created_at"])
	assert.Equal(t, float64(3), first["answers_count"])
	category := first["category"].(map[string]any)
	assert.Equal(t, "acids", category["slug"])
}

func TestListThreads_BadParamsFallBack(t *testing.T) {
	fs := &fakeForumService{listResult: &forum.ThreadPage{Threads: []models.ThreadSummary{}}}
	h := newTestServer(&fakeUserService{}, fs)

	w := doJSON(t, h, http.MethodGet, "/api/forum/threads?page=oops&page_size=huge", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fs.listParams.Page)
	assert.Equal(t, forum.DefaultPageSize, fs.listParams.PageSize)
}

func TestCreateThread(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{createThreadID: 42}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/threads", "tok", `{"title":"T","content":"C","category":"acids"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(42), decodeJSON(t, w)["id"])
}

func TestCreateThread_Unauthenticated(t *testing.T) {
	fs := &fakeForumService{}
	h := newTestServer(&fakeUserService{authErr: common.ErrUnauthorized}, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/threads", "tok", `{"title":"T","content":"C","category":"acids"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateThread_InvalidCategory(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{createThreadErr: common.ErrInvalidCategory}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/threads", "tok", `{"title":"T","content":"C","category":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid category", decodeJSON(t, w)["error"])
}

func TestCreateAnswer_ThreadNotFound(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{createAnswerErr: common.ErrNotFound}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/answers", "tok", `{"thread_id":999,"content":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVote(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{voteCount: 5, voted: true}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/vote", "tok", `{"answer_id":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, float64(5), body["votes"])
	assert.Equal(t, true, body["voted"])
}

func TestReport(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/report", "tok", `{"item_type":"answer","item_id":12,"reason":"spam"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, fs.reported)
	assert.Equal(t, "answer", fs.reported.ItemType)
	assert.Equal(t, int64(12), fs.reported.ItemID)
	assert.Equal(t, int64(7), fs.reported.ReporterID)
}

func TestReport_InvalidItemType(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	fs := &fakeForumService{reportErr: common.ErrInvalidItemType}
	h := newTestServer(us, fs)

	w := doJSON(t, h, http.MethodPost, "/api/forum/report", "tok", `{"item_type":"user","item_id":1,"reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid item type", decodeJSON(t, w)["error"])
}

func TestCategories(t *testing.T) {
	fs := &fakeForumService{categories: []models.Category{
		{ID: 1, Name: "Acids", Slug: "acids"},
		{ID: 2, Name: "Organic", Slug: "organic"},
	}}
	h := newTestServer(&fakeUserService{}, fs)

	w := doJSON(t, h, http.MethodGet, "/api/forum/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeJSON(t, w)["categories"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "acids", items[0].(map[string]any)["slug"])
}

func TestInvalidBody(t *testing.T) {
	us := &fakeUserService{authUser: authedUser()}
	h := newTestServer(us, &fakeForumService{})

	w := doJSON(t, h, http.MethodPost, "/api/forum/vote", "tok", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeJSON(t, w)["error"])
}
