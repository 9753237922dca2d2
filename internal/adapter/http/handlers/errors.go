package handlers

import (
	"errors"
	"net/http"

	"taller_web/internal/infrastructure/backend"
	"taller_web/pkg"

	"github.com/gin-gonic/gin"
)

// respondSessionExpired is the forced-logout path: the server-side session
// record is already gone (the gateway deleted it on the 401), so the cookie
// is cleared and the caller is pointed back at the login page.
func respondSessionExpired(c *gin.Context, cookieName string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.Header("X-Redirect", "/login")
	appErr := pkg.NewDomainErrorSimple("SESSION_EXPIRED", "Session expired, please log in again", http.StatusUnauthorized)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapBackendError passes a backend rejection through with its original status
// and message, so validation failures read the same as they would talking to
// the backend directly.
func mapBackendError(err error) *pkg.AppError {
	var se *backend.StatusError
	if errors.As(err, &se) {
		status := se.Code
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return pkg.NewDomainErrorSimple("BACKEND_ERROR", se.Error(), status)
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
