package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"taller_web/internal/adapter/export"
	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PagesHandler serves the HTML shells the browser boots from. The shells are
// static; every piece of data on them comes from the /api surface, so the
// markup stays a thin mount point.
type PagesHandler struct {
	orders     usecase.IOrderUseCase
	cookieName string
}

func NewPagesHandler(orders usecase.IOrderUseCase, cookieName string) *PagesHandler {
	return &PagesHandler{orders: orders, cookieName: cookieName}
}

func (h *PagesHandler) Login(c *gin.Context) {
	h.shell(c, "Iniciar sesión", "login")
}

func (h *PagesHandler) Orders(c *gin.Context) {
	h.shell(c, "Órdenes de servicio", "ordenes")
}

func (h *PagesHandler) Equipment(c *gin.Context) {
	h.shell(c, "Equipos", "equipos")
}

func (h *PagesHandler) OrderDetail(c *gin.Context) {
	h.shell(c, "Detalle de orden", "orden-detalle")
}

// PrintOrder streams the order as an xlsx work sheet.
func (h *PagesHandler) PrintOrder(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.String(http.StatusBadRequest, "orden inválida")
		return
	}

	view, err := h.orders.Load(c.Request.Context(), sess, orderID)
	if err != nil {
		if errors.Is(err, backend.ErrSessionExpired) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		appErr := mapOrderError(err)
		c.String(appErr.HTTPStatus, appErr.Message)
		return
	}

	f, filename, err := export.WorkOrderSheet(view.Order)
	if err != nil {
		c.String(http.StatusInternalServerError, "no se pudo generar la hoja")
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *PagesHandler) shell(c *gin.Context, title, page string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(pageShell, title, page)))
}

const pageShell = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s · Taller</title>
</head>
<body data-page="%s">
  <div id="app"></div>
</body>
</html>
`
