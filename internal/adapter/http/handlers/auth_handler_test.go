package handlers

import (
	"net/http"
	"testing"
	"time"

	"taller_web/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func authRouter(orders *fakeOrderUC, pickers *fakePickerUC) *gin.Engine {
	cookieCfg := config.SessionConfig{CookieName: testCookieName, TTL: time.Hour}
	sessions := newStubSessions()
	h := NewAuthHandler(sessions, orders, pickers, cookieCfg)
	return newTestRouter(func(r *gin.Engine) {
		r.POST("/api/auth/login", h.Login)
		r.POST("/api/auth/logout", h.Logout)
		r.GET("/api/auth/me", h.Me)
	})
}

func TestLoginSetsCookieAndReturnsProfile(t *testing.T) {
	r := authRouter(&fakeOrderUC{}, &fakePickerUC{})

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", `{"email":"ana@taller.test","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"autenticado":true`)
	require.Contains(t, w.Body.String(), "Ana")

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.Value == "good-cookie" {
			found = true
			require.True(t, c.HttpOnly)
		}
	}
	require.True(t, found)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	r := authRouter(&fakeOrderUC{}, &fakePickerUC{})

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", `{"email":"ana@taller.test"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutDropsSessionStateAndClearsCookie(t *testing.T) {
	orders := &fakeOrderUC{}
	pickers := &fakePickerUC{}
	r := authRouter(orders, pickers)

	w := doRequest(r, http.MethodPost, "/api/auth/logout", "good-cookie", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, []string{"sid-1"}, orders.dropped)
	require.Equal(t, []string{"sid-1"}, pickers.dropped)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	r := authRouter(&fakeOrderUC{}, &fakePickerUC{})

	w := doRequest(r, http.MethodPost, "/api/auth/logout", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestMeReportsAnonymous(t *testing.T) {
	r := authRouter(&fakeOrderUC{}, &fakePickerUC{})

	w := doRequest(r, http.MethodGet, "/api/auth/me", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"autenticado":false`)
}
