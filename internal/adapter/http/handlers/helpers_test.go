package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const testCookieName = "taller_session"

type stubSessions struct {
	sessions map[string]entities.Session
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: map[string]entities.Session{
		"good-cookie": {SID: "sid-1", Token: "tok", RawUser: `{"id":1,"nombre":"Ana","rol":"ADMIN"}`},
	}}
}

func (s *stubSessions) Login(context.Context, string, string) (entities.Session, string, error) {
	sess := s.sessions["good-cookie"]
	return sess, "good-cookie", nil
}

func (s *stubSessions) Logout(context.Context, entities.Session) error { return nil }

func (s *stubSessions) Resolve(_ context.Context, cookieValue string) (entities.Session, bool) {
	sess, ok := s.sessions[cookieValue]
	return sess, ok
}

func (s *stubSessions) IssueCookie(entities.Session) (string, error) { return "good-cookie", nil }

func newTestRouter(register func(*gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionFromCookie(newStubSessions(), testCookieName))
	register(r)
	return r
}

func doRequest(r *gin.Engine, method, path, cookie, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
