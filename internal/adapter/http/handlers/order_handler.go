package handlers

import (
	"errors"
	"net/http"
	"strconv"

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
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
)

// OrderHandler exposes the order detail workflow: one snapshot per
// (session, order), mutated strictly through fetch-then-merge round trips.
type OrderHandler struct {
	usecase    usecase.IOrderUseCase
	cookieName string
}

func NewOrderHandler(uc usecase.IOrderUseCase, cookieName string) *OrderHandler {
	return &OrderHandler{usecase: uc, cookieName: cookieName}
}

// GetOrder godoc
// @Summary      Carga el detalle de una orden
// @Tags         ordenes
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  usecase.OrderView
// @Failure      404  {object}  pkg.HTTPError
// @Router       /ordenes/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.Load(c.Request.Context(), sess, orderID)
	})
}

// ChangeStatus godoc
// @Summary      Cambia el estado de una orden
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "ID de la orden"
// @Param        payload  body  request.OrderStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  usecase.OrderView
// @Failure      409  {object}  pkg.HTTPError
// @Router       /ordenes/{id}/estado [patch]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var payload request.OrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.ChangeStatus(c.Request.Context(), sess, orderID, payload.ResolveStatus())
	})
}

// CloseOrder godoc
// @Summary      Cierra una orden (requiere confirmación)
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                        true  "ID de la orden"
// @Param        payload  body  request.OrderCloseRequest  true  "Confirmación"
// @Success      200  {object}  usecase.OrderView
// @Failure      400  {object}  pkg.HTTPError
// @Router       /ordenes/{id}/cerrar [post]
func (h *OrderHandler) CloseOrder(c *gin.Context) {
	var payload request.OrderCloseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.Close(c.Request.Context(), sess, orderID, payload.Confirmed)
	})
}

// AssignTechnician godoc
// @Summary      Asigna o quita el técnico de una orden
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                        true  "ID de la orden"
// @Param        payload  body  request.TechnicianRequest  true  "Técnico (null para quitar)"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/tecnico [patch]
func (h *OrderHandler) AssignTechnician(c *gin.Context) {
	var payload request.TechnicianRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.AssignTechnician(c.Request.Context(), sess, orderID, payload.TechnicianID)
	})
}

// AddLabor godoc
// @Summary      Agrega una entrada de mano de obra
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "ID de la orden"
// @Param        payload  body  request.LaborRequest  true  "Entrada"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/mano-obra [post]
func (h *OrderHandler) AddLabor(c *gin.Context) {
	var payload request.LaborRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.AddLabor(c.Request.Context(), sess, orderID, payload.Description, payload.Hours)
	})
}

// UpdateLabor godoc
// @Summary      Edita una entrada de mano de obra
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "ID de la orden"
// @Param        itemId   path  int                   true  "ID de la entrada"
// @Param        payload  body  request.LaborRequest  true  "Entrada"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/mano-obra/{itemId} [patch]
func (h *OrderHandler) UpdateLabor(c *gin.Context) {
	var payload request.LaborRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrderItem(c, func(sess entities.Session, orderID, itemID int64) (usecase.OrderView, error) {
		return h.usecase.UpdateLabor(c.Request.Context(), sess, orderID, itemID, payload.Description, payload.Hours)
	})
}

// DeleteLabor godoc
// @Summary      Elimina una entrada de mano de obra
// @Tags         ordenes
// @Produce      json
// @Param        id      path  int  true  "ID de la orden"
// @Param        itemId  path  int  true  "ID de la entrada"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/mano-obra/{itemId} [delete]
func (h *OrderHandler) DeleteLabor(c *gin.Context) {
	h.withOrderItem(c, func(sess entities.Session, orderID, itemID int64) (usecase.OrderView, error) {
		return h.usecase.DeleteLabor(c.Request.Context(), sess, orderID, itemID)
	})
}

// AddPart godoc
// @Summary      Agrega un repuesto a la orden
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                       true  "ID de la orden"
// @Param        payload  body  request.PartEntryRequest  true  "Repuesto"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/repuestos [post]
func (h *OrderHandler) AddPart(c *gin.Context) {
	var payload request.PartEntryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrder(c, func(sess entities.Session, orderID int64) (usecase.OrderView, error) {
		return h.usecase.AddPart(c.Request.Context(), sess, orderID, payload.PartID, payload.Quantity, payload.IsWarranty)
	})
}

// UpdatePart godoc
// @Summary      Edita un repuesto de la orden
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id       path  int                       true  "ID de la orden"
// @Param        itemId   path  int                       true  "ID de la línea"
// @Param        payload  body  request.PartEntryRequest  true  "Repuesto"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/repuestos/{itemId} [patch]
func (h *OrderHandler) UpdatePart(c *gin.Context) {
	var payload request.PartEntryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	h.withOrderItem(c, func(sess entities.Session, orderID, itemID int64) (usecase.OrderView, error) {
		return h.usecase.UpdatePart(c.Request.Context(), sess, orderID, itemID, payload.Quantity, payload.IsWarranty)
	})
}

// DeletePart godoc
// @Summary      Elimina un repuesto de la orden
// @Tags         ordenes
// @Produce      json
// @Param        id      path  int  true  "ID de la orden"
// @Param        itemId  path  int  true  "ID de la línea"
// @Success      200  {object}  usecase.OrderView
// @Router       /ordenes/{id}/repuestos/{itemId} [delete]
func (h *OrderHandler) DeletePart(c *gin.Context) {
	h.withOrderItem(c, func(sess entities.Session, orderID, itemID int64) (usecase.OrderView, error) {
		return h.usecase.DeletePart(c.Request.Context(), sess, orderID, itemID)
	})
}

// GetTimeline godoc
// @Summary      Lista los eventos de la orden
// @Tags         ordenes
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  response.TimelineResponse
// @Router       /ordenes/{id}/eventos [get]
func (h *OrderHandler) GetTimeline(c *gin.Context) {
	sess, orderID, ok := h.resolveOrder(c)
	if !ok {
		return
	}

	events, seq, err := h.usecase.Timeline(c.Request.Context(), sess, orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TimelineResponse{Events: events, Seq: seq})
}

func (h *OrderHandler) withOrder(c *gin.Context, op func(sess entities.Session, orderID int64) (usecase.OrderView, error)) {
	sess, orderID, ok := h.resolveOrder(c)
	if !ok {
		return
	}

	view, err := op(sess, orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) withOrderItem(c *gin.Context, op func(sess entities.Session, orderID, itemID int64) (usecase.OrderView, error)) {
	sess, orderID, ok := h.resolveOrder(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		appErr := pkg.NewDomainErrorSimple("INVALID_ITEM_ID", "Invalid item id", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	view, err := op(sess, orderID, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) resolveOrder(c *gin.Context) (entities.Session, int64, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondSessionExpired(c, h.cookieName)
		return entities.Session{}, 0, false
	}
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		appErr := pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Invalid order id", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return entities.Session{}, 0, false
	}
	return sess, orderID, true
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrSessionExpired) {
		respondSessionExpired(c, h.cookieName)
		return
	}
	appErr := mapOrderError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Invalid order id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderClosed):
		return pkg.NewDomainErrorSimple("ORDER_READ_ONLY", "La orden está cerrada y es de solo lectura", http.StatusConflict)
	case errors.Is(err, usecase.ErrConfirmationRequired):
		return pkg.NewDomainErrorSimple("CONFIRMATION_REQUIRED", "Cerrar la orden requiere confirmación", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingDescription):
		return pkg.NewDomainErrorSimple("MISSING_DESCRIPTION", "La descripción es obligatoria", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidHours):
		return pkg.NewDomainErrorSimple("INVALID_HOURS", "Las horas deben ser mayores a cero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingPart):
		return pkg.NewDomainErrorSimple("MISSING_PART", "Debe seleccionar un repuesto", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return pkg.NewDomainErrorSimple("INVALID_QUANTITY", "La cantidad debe ser un entero positivo", http.StatusBadRequest)
	case errors.Is(err, entities.ErrMalformedOrder):
		return pkg.NewDomainErrorSimple("MALFORMED_ORDER", "La orden recibida no se pudo leer", http.StatusBadGateway)
	default:
		return mapBackendError(err)
	}
}
