package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "taller_web/internal/adapter/http/dto/request"
	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/domain/entities"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase"
	"taller_web/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidWorkshopPayload = pkg.NewDomainErrorSimple("INVALID_WORKSHOP_INPUT", "Invalid payload", http.StatusBadRequest)
)

// WorkshopHandler serves the list pages and their creation forms: the orders
// board, the equipment registry, and the static site and technician lookups.
type WorkshopHandler struct {
	usecase    usecase.IWorkshopUseCase
	cookieName string
}

func NewWorkshopHandler(uc usecase.IWorkshopUseCase, cookieName string) *WorkshopHandler {
	return &WorkshopHandler{usecase: uc, cookieName: cookieName}
}

// ListOrders godoc
// @Summary      Lista las órdenes, opcionalmente filtradas por sede
// @Tags         ordenes
// @Produce      json
// @Param        sedeId  query  int  false  "ID de la sede"
// @Success      200  {array}  entities.Order
// @Router       /ordenes [get]
func (h *WorkshopHandler) ListOrders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var siteID *int64
	if raw := c.Query("sedeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			appErr := pkg.NewDomainErrorSimple("INVALID_SITE_ID", "Invalid site id", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		siteID = &id
	}

	orders, err := h.usecase.ListOrders(c.Request.Context(), sess, siteID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder godoc
// @Summary      Abre una orden de servicio
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        payload  body  request.OrderCreateRequest  true  "Ingreso"
// @Success      201  {object}  entities.Order
// @Failure      400  {object}  pkg.HTTPError
// @Router       /ordenes [post]
func (h *WorkshopHandler) CreateOrder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.OrderCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkshopPayload.HTTPStatus, errInvalidWorkshopPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), sess, payload.ResolveIntake())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListEquipment godoc
// @Summary      Lista los equipos registrados
// @Tags         equipos
// @Produce      json
// @Success      200  {array}  entities.Equipment
// @Router       /equipos [get]
func (h *WorkshopHandler) ListEquipment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	equipment, err := h.usecase.ListEquipment(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// CreateEquipment godoc
// @Summary      Registra un equipo para un cliente
// @Tags         equipos
// @Accept       json
// @Produce      json
// @Param        payload  body  request.EquipmentCreateRequest  true  "Equipo"
// @Success      201  {object}  entities.Equipment
// @Router       /equipos [post]
func (h *WorkshopHandler) CreateEquipment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.EquipmentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkshopPayload.HTTPStatus, errInvalidWorkshopPayload.ToHTTPError())
		return
	}

	equipment, err := h.usecase.CreateEquipment(c.Request.Context(), sess, payload.ResolveEquipment())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

// ListTechnicians godoc
// @Summary      Lista los técnicos
// @Tags         tecnicos
// @Produce      json
// @Success      200  {array}  entities.Technician
// @Router       /tecnicos [get]
func (h *WorkshopHandler) ListTechnicians(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	technicians, err := h.usecase.ListTechnicians(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, technicians)
}

// ListSites godoc
// @Summary      Lista las sedes
// @Tags         sedes
// @Produce      json
// @Success      200  {array}  entities.Site
// @Router       /sedes [get]
func (h *WorkshopHandler) ListSites(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	sites, err := h.usecase.ListSites(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sites)
}

func (h *WorkshopHandler) session(c *gin.Context) (entities.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondSessionExpired(c, h.cookieName)
		return entities.Session{}, false
	}
	return sess, true
}

func (h *WorkshopHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrSessionExpired) {
		respondSessionExpired(c, h.cookieName)
		return
	}
	appErr := mapWorkshopError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapWorkshopError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingSite):
		return pkg.NewDomainErrorSimple("MISSING_SITE", "Debe seleccionar una sede", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingClient):
		return pkg.NewDomainErrorSimple("MISSING_CLIENT", "Debe seleccionar un cliente", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingEquipment):
		return pkg.NewDomainErrorSimple("MISSING_EQUIPMENT", "Debe seleccionar un equipo", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingEquipmentRef):
		return pkg.NewDomainErrorSimple("MISSING_EQUIPMENT_DATA", "La marca, el modelo y el serial son obligatorios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidIntakeType):
		return pkg.NewDomainErrorSimple("INVALID_INTAKE_TYPE", "Tipo de ingreso inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingIntakeReason):
		return pkg.NewDomainErrorSimple("MISSING_INTAKE_REASON", "El motivo de ingreso es obligatorio", http.StatusBadRequest)
	default:
		return mapBackendError(err)
	}
}
