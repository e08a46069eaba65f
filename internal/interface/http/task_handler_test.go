package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/application"
	"github.com/taskboard/taskboard/internal/domain/entity"
	repo "github.com/taskboard/taskboard/internal/domain/repository"
	"github.com/taskboard/taskboard/internal/interface/middleware"
	"github.com/taskboard/taskboard/pkg/token"
)

type memTaskRepo struct {
	byID   map[int64]*entity.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{byID: map[int64]*entity.Task{}, nextID: 1}
}

func (m *memTaskRepo) Create(t *entity.Task) error {
	t.ID = m.nextID
	m.nextID++
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTaskRepo) GetByID(id int64) (*entity.Task, error) {
	if t, ok := m.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memTaskRepo) ListByOwner(owner string) ([]*entity.Task, error) {
	out := []*entity.Task{}
	for _, t := range m.byID {
		if t.Owner == owner {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Update(t *entity.Task) error {
	if _, ok := m.byID[t.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTaskRepo) Delete(id int64) error {
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newTaskRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := application.NewTaskService(newMemTaskRepo(), nil)
	h := NewTaskHandler(service, discardLogger())
	r := gin.New()
	tasks := r.Group("/tasks")
	tasks.Use(middleware.Auth(tokens, nil))
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/:id", h.Get)
	tasks.PUT("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, tokens *token.Manager, subject string) string {
	t.Helper()
	raw, _, err := tokens.Issue(subject)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return raw
}

func TestTaskCRUDEndpoints(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	r := newTaskRouter(tokens)
	alice := issue(t, tokens, "alice")

	// create
	w := do(r, http.MethodPost, "/tasks", alice, `{"title":"buy milk"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created taskOut
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create body: %v", err)
	}
	if created.Owner != "alice" || created.Completed || created.Title != "buy milk" {
		t.Fatalf("unexpected created task: %+v", created)
	}

	// list
	w = do(r, http.MethodGet, "/tasks", alice, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []taskOut
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad list body: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	// update
	w = do(r, http.MethodPut, "/tasks/1", alice, `{"title":"buy oat milk","completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var updated taskOut
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad update body: %v", err)
	}
	if updated.Title != "buy oat milk" || !updated.Completed {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	// delete
	w = do(r, http.MethodDelete, "/tasks/1", alice, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/tasks/1", alice, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestTaskForeignOwnerForbidden(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	r := newTaskRouter(tokens)
	alice := issue(t, tokens, "alice")
	bob := issue(t, tokens, "bob")

	if w := do(r, http.MethodPost, "/tasks", alice, `{"title":"private"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	for name, w := range map[string]*httptest.ResponseRecorder{
		"get":    do(r, http.MethodGet, "/tasks/1", bob, ""),
		"update": do(r, http.MethodPut, "/tasks/1", bob, `{"title":"x","completed":false}`),
		"delete": do(r, http.MethodDelete, "/tasks/1", bob, ""),
	} {
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d (%s)", name, w.Code, w.Body.String())
		}
	}

	// missing row stays a 404, distinct from the ownership 403
	if w := do(r, http.MethodGet, "/tasks/99", bob, ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTaskInvalidID(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	r := newTaskRouter(tokens)
	alice := issue(t, tokens, "alice")

	if w := do(r, http.MethodGet, "/tasks/abc", alice, ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

// Full scenario across both services: register, login, use the token on a
// protected route, then tamper with it.
func TestRegisterLoginProtectedFlow(t *testing.T) {
	tokens := token.NewManager("shared-secret", 30*time.Minute)
	authRouter := newAuthRouter(tokens)
	taskRouter := newTaskRouter(tokens)

	if w := postJSON(authRouter, "/register", `{"username":"alice","password":"s3cret"}`); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}
	w := postForm(authRouter, "/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad login body: %v", err)
	}

	w = do(taskRouter, http.MethodPost, "/tasks", resp.AccessToken, `{"title":"from the flow"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("protected request failed: %d (%s)", w.Code, w.Body.String())
	}
	var created taskOut
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create body: %v", err)
	}
	if created.Owner != "alice" {
		t.Fatalf("expected owner alice, got %q", created.Owner)
	}

	truncated := resp.AccessToken[:len(resp.AccessToken)-1]
	if w := do(taskRouter, http.MethodGet, "/tasks", truncated, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected truncated token to be rejected, got %d", w.Code)
	}
}
