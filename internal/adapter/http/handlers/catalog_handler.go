package handlers

import (
	"errors"
	"net/http"

	request "taller_web/internal/adapter/http/dto/request"
	response "taller_web/internal/adapter/http/dto/response"
	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/domain/entities"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase"
	"taller_web/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidCatalogPayload = pkg.NewDomainErrorSimple("INVALID_CATALOG_INPUT", "Invalid payload", http.StatusBadRequest)
)

// CatalogHandler serves the two searchable pickers (clients and parts) and
// their inline-create flow. Searches are debounced server-side; a query that
// a newer keystroke replaced answers 204 and must not be rendered.
type CatalogHandler struct {
	usecase    usecase.IPickerUseCase
	cookieName string
}

func NewCatalogHandler(uc usecase.IPickerUseCase, cookieName string) *CatalogHandler {
	return &CatalogHandler{usecase: uc, cookieName: cookieName}
}

// SearchClients godoc
// @Summary      Busca clientes por nombre o documento
// @Tags         clientes
// @Produce      json
// @Param        search  query  string  false  "Texto de búsqueda"
// @Success      200  {object}  response.PickerClientsResponse
// @Success      204  "Búsqueda reemplazada por una más reciente"
// @Router       /clientes [get]
func (h *CatalogHandler) SearchClients(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	clients, err := h.usecase.SearchClients(c.Request.Context(), sess, c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PickerClientsResponse{Clients: clients})
}

// CreateClient godoc
// @Summary      Crea un cliente desde el selector
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        payload  body  request.ClientCreateRequest  true  "Cliente"
// @Success      201  {object}  response.PickerClientsResponse
// @Failure      409  {object}  response.ConflictResponse
// @Router       /clientes [post]
func (h *CatalogHandler) CreateClient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.ClientCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateClient(c.Request.Context(), sess, entities.Client{
		Name:     payload.Name,
		Document: payload.Document,
		Phone:    payload.Phone,
		Email:    payload.Email,
		Company:  payload.Company,
	})
	if err != nil {
		var conflict *usecase.ClientConflict
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, response.ConflictResponse{
				Message:  conflict.Message,
				Client:   &conflict.Existing,
				CanReuse: true,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	clients := h.usecase.SelectClient(sess, created)
	c.JSON(http.StatusCreated, response.PickerClientsResponse{Clients: clients, SelectedID: &created.ID})
}

// SelectClient godoc
// @Summary      Selecciona un cliente existente en el selector
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        payload  body  request.ClientSelectRequest  true  "Cliente elegido"
// @Success      200  {object}  response.PickerClientsResponse
// @Router       /clientes/seleccionar [post]
func (h *CatalogHandler) SelectClient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.ClientSelectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	clients := h.usecase.SelectClient(sess, payload.ResolveClient())
	c.JSON(http.StatusOK, response.PickerClientsResponse{Clients: clients, SelectedID: &payload.ID})
}

// SearchParts godoc
// @Summary      Busca repuestos por código o descripción
// @Tags         repuestos
// @Produce      json
// @Param        search  query  string  false  "Texto de búsqueda"
// @Success      200  {object}  response.PickerPartsResponse
// @Success      204  "Búsqueda reemplazada por una más reciente"
// @Router       /repuestos [get]
func (h *CatalogHandler) SearchParts(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	parts, err := h.usecase.SearchParts(c.Request.Context(), sess, c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PickerPartsResponse{Parts: parts})
}

// CreatePart godoc
// @Summary      Crea un repuesto desde el selector
// @Tags         repuestos
// @Accept       json
// @Produce      json
// @Param        payload  body  request.PartCreateRequest  true  "Repuesto"
// @Success      201  {object}  response.PickerPartsResponse
// @Failure      409  {object}  response.ConflictResponse
// @Router       /repuestos [post]
func (h *CatalogHandler) CreatePart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.PartCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreatePart(c.Request.Context(), sess, entities.Part{
		Code:        payload.Code,
		Description: payload.Description,
		UnitCost:    payload.UnitCost,
		GlobalStock: payload.GlobalStock,
	})
	if err != nil {
		var conflict *usecase.PartConflict
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, response.ConflictResponse{
				Message:  conflict.Message,
				Part:     &conflict.Existing,
				CanReuse: true,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	parts := h.usecase.SelectPart(sess, created)
	c.JSON(http.StatusCreated, response.PickerPartsResponse{Parts: parts, SelectedID: &created.ID})
}

// SelectPart godoc
// @Summary      Selecciona un repuesto existente en el selector
// @Tags         repuestos
// @Accept       json
// @Produce      json
// @Param        payload  body  request.PartSelectRequest  true  "Repuesto elegido"
// @Success      200  {object}  response.PickerPartsResponse
// @Router       /repuestos/seleccionar [post]
func (h *CatalogHandler) SelectPart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var payload request.PartSelectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	parts := h.usecase.SelectPart(sess, payload.ResolvePart())
	c.JSON(http.StatusOK, response.PickerPartsResponse{Parts: parts, SelectedID: &payload.ID})
}

func (h *CatalogHandler) session(c *gin.Context) (entities.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondSessionExpired(c, h.cookieName)
		return entities.Session{}, false
	}
	return sess, true
}

func (h *CatalogHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSuperseded):
		c.Status(http.StatusNoContent)
	case errors.Is(err, backend.ErrSessionExpired):
		respondSessionExpired(c, h.cookieName)
	default:
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}
}

func mapCatalogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingClientName):
		return pkg.NewDomainErrorSimple("MISSING_CLIENT_NAME", "El nombre del cliente es obligatorio", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingPartCode):
		return pkg.NewDomainErrorSimple("MISSING_PART_CODE", "El código y la descripción son obligatorios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConflictWithoutBody):
		return pkg.NewDomainErrorSimple("DUPLICATE", "El registro ya existe", http.StatusConflict)
	default:
		return mapBackendError(err)
	}
}
