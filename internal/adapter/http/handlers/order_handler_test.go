package handlers

import (
	"context"
	"net/http"
	"testing"

	"taller_web/internal/domain/entities"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeOrderUC answers every operation from canned values.
type fakeOrderUC struct {
	view    usecase.OrderView
	events  []entities.TimelineEvent
	seq     uint64
	err     error
	dropped []string
}

func (f *fakeOrderUC) Load(context.Context, entities.Session, int64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) ChangeStatus(context.Context, entities.Session, int64, entities.OrderStatus) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) Close(context.Context, entities.Session, int64, bool) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) AssignTechnician(context.Context, entities.Session, int64, *int64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) AddLabor(context.Context, entities.Session, int64, string, float64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) UpdateLabor(context.Context, entities.Session, int64, int64, string, float64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) DeleteLabor(context.Context, entities.Session, int64, int64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) AddPart(context.Context, entities.Session, int64, int64, int, bool) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) UpdatePart(context.Context, entities.Session, int64, int64, int, bool) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) DeletePart(context.Context, entities.Session, int64, int64) (usecase.OrderView, error) {
	return f.view, f.err
}
func (f *fakeOrderUC) Timeline(context.Context, entities.Session, int64) ([]entities.TimelineEvent, uint64, error) {
	return f.events, f.seq, f.err
}
func (f *fakeOrderUC) DropSession(sid string) { f.dropped = append(f.dropped, sid) }

func orderRouter(uc usecase.IOrderUseCase) *gin.Engine {
	h := NewOrderHandler(uc, testCookieName)
	return newTestRouter(func(r *gin.Engine) {
		r.GET("/api/ordenes/:id", h.GetOrder)
		r.PATCH("/api/ordenes/:id/estado", h.ChangeStatus)
		r.POST("/api/ordenes/:id/cerrar", h.CloseOrder)
		r.PATCH("/api/ordenes/:id/mano-obra/:itemId", h.UpdateLabor)
		r.GET("/api/ordenes/:id/eventos", h.GetTimeline)
	})
}

func TestGetOrderReturnsView(t *testing.T) {
	uc := &fakeOrderUC{view: usecase.OrderView{
		Order:      entities.Order{ID: 42, Code: "OS-0042", Status: entities.OrderStatusOpen},
		RefreshSeq: 3,
	}}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodGet, "/api/ordenes/42", "good-cookie", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"codigo":"OS-0042"`)
	require.Contains(t, w.Body.String(), `"timelineSeq":3`)
}

func TestGetOrderRejectsBadID(t *testing.T) {
	r := orderRouter(&fakeOrderUC{})

	w := doRequest(r, http.MethodGet, "/api/ordenes/abc", "good-cookie", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeStatusClosedOrderAnswers409(t *testing.T) {
	uc := &fakeOrderUC{err: usecase.ErrOrderClosed}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodPatch, "/api/ordenes/42/estado", "good-cookie", `{"estado":"OPEN"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ORDER_READ_ONLY")
}

func TestCloseWithoutConfirmationAnswers400(t *testing.T) {
	uc := &fakeOrderUC{err: usecase.ErrConfirmationRequired}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodPost, "/api/ordenes/42/cerrar", "good-cookie", `{"confirmado":false}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CONFIRMATION_REQUIRED")
}

func TestExpiredSessionClearsCookieAndPointsToLogin(t *testing.T) {
	uc := &fakeOrderUC{err: backend.ErrSessionExpired}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodGet, "/api/ordenes/42", "good-cookie", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/login", w.Header().Get("X-Redirect"))

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}

func TestBackendRejectionPassesThrough(t *testing.T) {
	uc := &fakeOrderUC{err: &backend.StatusError{Code: http.StatusUnprocessableEntity, Body: `{"error":"stock insuficiente"}`}}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodPatch, "/api/ordenes/42/mano-obra/10", "good-cookie", `{"descripcion":"x","horas":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "stock insuficiente")
}

func TestTimelineAnswersEventsAndSeq(t *testing.T) {
	uc := &fakeOrderUC{
		events: []entities.TimelineEvent{{ID: 1, Kind: entities.EventStatusChanged, Detail: "Estado actualizado"}},
		seq:    5,
	}
	r := orderRouter(uc)

	w := doRequest(r, http.MethodGet, "/api/ordenes/42/eventos", "good-cookie", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"timelineSeq":5`)
	require.Contains(t, w.Body.String(), "STATUS_CHANGED")
}
