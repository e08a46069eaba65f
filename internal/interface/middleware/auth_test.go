package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/pkg/token"
)

func newProtectedRouter(tokens *token.Manager) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	handlerRan := false
	r := gin.New()
	r.Use(Auth(tokens, nil))
	r.GET("/protected", func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(CtxUsernameKey)})
	})
	return r, &handlerRan
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthResolvesPrincipal(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	r, handlerRan := newProtectedRouter(tokens)

	raw, _, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	w := doGet(r, "Bearer "+raw)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if !*handlerRan {
		t.Fatal("expected downstream handler to run")
	}
	if body := w.Body.String(); body != `{"user":"alice"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAuthRejectsInvalidCredentials(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	raw, _, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	expired, _, err := token.NewManager("test-secret", -time.Second).Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	foreign, _, err := token.NewManager("other-secret", time.Minute).Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic " + raw,
		"empty token":     "Bearer ",
		"truncated token": "Bearer " + raw[:len(raw)-1],
		"expired token":   "Bearer " + expired,
		"foreign secret":  "Bearer " + foreign,
		"garbage":         "Bearer not.a.token",
	}
	for name, header := range cases {
		r, handlerRan := newProtectedRouter(tokens)
		w := doGet(r, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
		if *handlerRan {
			t.Fatalf("%s: downstream handler must not run", name)
		}
		if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Fatalf("%s: expected WWW-Authenticate Bearer, got %q", name, got)
		}
		// every failure mode produces the identical body
		if body := w.Body.String(); body != `{"detail":"Could not validate credentials"}` {
			t.Fatalf("%s: unexpected body %s", name, body)
		}
	}
}
