package handlers

import (
	"errors"
	"net/http"

	request "taller_web/internal/adapter/http/dto/request"
	response "taller_web/internal/adapter/http/dto/response"
	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/config"
	"taller_web/internal/usecase"
	"taller_web/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidLoginPayload = pkg.NewDomainErrorSimple("INVALID_LOGIN_INPUT", "Email and password are required", http.StatusBadRequest)
)

// AuthHandler owns the session boundary: login issues the cookie, logout
// destroys the server-side record and every in-memory view tied to it.
type AuthHandler struct {
	sessions usecase.ISessionUseCase
	orders   usecase.IOrderUseCase
	pickers  usecase.IPickerUseCase
	cookie   config.SessionConfig
}

func NewAuthHandler(sessions usecase.ISessionUseCase, orders usecase.IOrderUseCase, pickers usecase.IPickerUseCase, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{sessions: sessions, orders: orders, pickers: pickers, cookie: cookie}
}

// Login godoc
// @Summary      Autentica al usuario y abre sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  request.LoginRequest  true  "Credenciales"
// @Success      200  {object}  response.SessionResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLoginPayload.HTTPStatus, errInvalidLoginPayload.ToHTTPError())
		return
	}

	sess, cookieValue, err := h.sessions.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.setCookie(c, cookieValue, int(h.cookie.TTL.Seconds()))
	c.JSON(http.StatusOK, response.FromSession(sess))
}

// Logout godoc
// @Summary      Cierra la sesión actual
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		_ = h.sessions.Logout(c.Request.Context(), sess)
		h.orders.DropSession(sess.SID)
		h.pickers.DropSession(sess.SID)
	}

	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Devuelve el usuario de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusOK, response.SessionResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, response.FromSession(sess))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, value, maxAge, "/", "", h.cookie.Secure, true)
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingCredentials):
		return pkg.NewDomainErrorSimple("INVALID_LOGIN_INPUT", "Email and password are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrLoginRejected):
		return pkg.NewDomainErrorSimple("LOGIN_REJECTED", "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrMalformedLogin):
		return pkg.NewDomainErrorSimple("MALFORMED_LOGIN", "Login response could not be read", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
