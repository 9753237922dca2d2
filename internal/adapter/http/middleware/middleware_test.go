package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taller_web/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	sessions map[string]entities.Session
}

func (s *stubSessions) Login(context.Context, string, string) (entities.Session, string, error) {
	panic("not used")
}

func (s *stubSessions) Logout(context.Context, entities.Session) error { return nil }

func (s *stubSessions) Resolve(_ context.Context, cookieValue string) (entities.Session, bool) {
	sess, ok := s.sessions[cookieValue]
	return sess, ok
}

func (s *stubSessions) IssueCookie(entities.Session) (string, error) { return "", nil }

func guardedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := &stubSessions{sessions: map[string]entities.Session{
		"good-cookie": {SID: "sid-1", Token: "tok", RawUser: `{"id":1,"nombre":"Ana"}`},
	}}

	r := gin.New()
	r.Use(SessionFromCookie(sessions, "taller_session"))

	r.GET("/login", RedirectIfAuthenticated(), func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})
	r.GET("/ordenes/7", RequireSessionPage(), func(c *gin.Context) {
		c.String(http.StatusOK, "order page")
	})
	r.GET("/api/ordenes/7", RequireSessionAPI(), func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, sess.SID)
	})
	return r
}

func get(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "taller_session", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPageGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := guardedRouter(t)

	w := get(r, "/ordenes/7", "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = get(r, "/ordenes/7", "forged-cookie")
	require.Equal(t, http.StatusFound, w.Code)
}

func TestPageGuardPassesAuthenticated(t *testing.T) {
	r := guardedRouter(t)

	w := get(r, "/ordenes/7", "good-cookie")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "order page", w.Body.String())
}

func TestAPIGuardAnswers401WithRedirectHint(t *testing.T) {
	r := guardedRouter(t)

	w := get(r, "/api/ordenes/7", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/login", w.Header().Get("X-Redirect"))

	w = get(r, "/api/ordenes/7", "good-cookie")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sid-1", w.Body.String())
}

func TestLoginPageRedirectsAuthenticatedHome(t *testing.T) {
	r := guardedRouter(t)

	w := get(r, "/login", "good-cookie")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	w = get(r, "/login", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "caller-id", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
