package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "missing", header: "", wantErr: ErrTokenIsEmpty},
		{name: "wrong scheme", header: "Basic abc123", wantErr: ErrInvalidAuthHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrTokenIsEmpty},
		{name: "whitespace token", header: "Bearer    ", wantErr: ErrTokenIsEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func newTestRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(a))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, IdentityFromContext(c.Request.Context()))
	})
	return r
}

func TestMiddleware(t *testing.T) {
	a := BearerAuth(func(token string) (string, error) {
		if token == "good" {
			return "alice", nil
		}
		return "", ErrUnauthenticated
	})
	router := newTestRouter(a)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if w.Body.String() != "alice" {
			t.Errorf("identity = %q, want alice", w.Body.String())
		}
	})

	t.Run("bad token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bad")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}

func TestMiddlewareNilAuthenticator(t *testing.T) {
	router := newTestRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with nil authenticator", w.Code)
	}
}

func TestNoAuth(t *testing.T) {
	identity, err := NoAuth().Authenticate(t.Context(), "anything")
	if err != nil {
		t.Fatal(err)
	}
	if identity != "anonymous" {
		t.Errorf("identity = %q, want anonymous", identity)
	}
}
