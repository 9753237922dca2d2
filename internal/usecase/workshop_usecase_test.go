package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"taller_web/internal/domain/entities"

	"github.com/stretchr/testify/require"
)

func TestListOrdersFiltersBySite(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body any) (json.RawMessage, error) {
		return mustJSON([]map[string]any{
			{"id": 1, "codigo": "OS-0001", "estado": "OPEN"},
		}), nil
	}}
	uc := NewWorkshopUseCase(gw)
	sess := authedSession()

	orders, err := uc.ListOrders(context.Background(), sess, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "/api/ordenes", gw.lastCall().Path)

	siteID := int64(2)
	_, err = uc.ListOrders(context.Background(), sess, &siteID)
	require.NoError(t, err)
	require.Equal(t, "/api/ordenes?sedeId=2", gw.lastCall().Path)
}

func TestCreateOrderValidatesIntakeLocally(t *testing.T) {
	gw := &fakeGateway{}
	uc := NewWorkshopUseCase(gw)
	sess := authedSession()

	base := OrderIntake{
		SiteID:       1,
		ClientID:     2,
		EquipmentID:  3,
		IntakeType:   entities.IntakeRepair,
		IntakeReason: "No enciende",
	}

	cases := []struct {
		name   string
		mutate func(*OrderIntake)
		want   error
	}{
		{"missing site", func(in *OrderIntake) { in.SiteID = 0 }, ErrMissingSite},
		{"missing client", func(in *OrderIntake) { in.ClientID = 0 }, ErrMissingClient},
		{"missing equipment", func(in *OrderIntake) { in.EquipmentID = 0 }, ErrMissingEquipment},
		{"bad intake type", func(in *OrderIntake) { in.IntakeType = "OTHER" }, ErrInvalidIntakeType},
		{"blank reason", func(in *OrderIntake) { in.IntakeReason = "  " }, ErrMissingIntakeReason},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := uc.CreateOrder(context.Background(), sess, in)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Equal(t, 0, gw.callCount())
}

func TestCreateOrderStartsUnassigned(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body any) (json.RawMessage, error) {
		return mustJSON(map[string]any{"id": 50, "codigo": "OS-0050", "estado": "OPEN"}), nil
	}}
	uc := NewWorkshopUseCase(gw)

	order, err := uc.CreateOrder(context.Background(), authedSession(), OrderIntake{
		SiteID:       1,
		ClientID:     2,
		EquipmentID:  3,
		IntakeType:   entities.IntakeWarranty,
		IntakeReason: "Falla intermitente",
	})
	require.NoError(t, err)
	require.Equal(t, int64(50), order.ID)

	sent := gw.lastCall().Body.(map[string]any)
	require.Equal(t, entities.IntakeWarranty, sent["tipoIngreso"])
	tech, present := sent["tecnicoId"]
	require.True(t, present)
	require.Nil(t, tech)
}

func TestCreateOrderDefaultsSiteFromProfile(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body any) (json.RawMessage, error) {
		return mustJSON(map[string]any{"id": 51, "codigo": "OS-0051", "estado": "OPEN"}), nil
	}}
	uc := NewWorkshopUseCase(gw)

	frontDesk := entities.Session{
		SID:     "sid-2",
		Token:   "tok-2",
		RawUser: `{"id":4,"nombre":"Luis","rol":"FRONT_DESK","sedeId":7}`,
	}
	admin := entities.Session{
		SID:     "sid-3",
		Token:   "tok-3",
		RawUser: `{"id":5,"nombre":"Eva","rol":"ADMIN"}`,
	}

	in := OrderIntake{
		ClientID:     2,
		EquipmentID:  3,
		IntakeType:   entities.IntakeRepair,
		IntakeReason: "Revisión general",
	}

	_, err := uc.CreateOrder(context.Background(), frontDesk, in)
	require.NoError(t, err)
	require.Equal(t, int64(7), gw.lastCall().Body.(map[string]any)["sedeId"])

	_, err = uc.CreateOrder(context.Background(), admin, in)
	require.ErrorIs(t, err, ErrMissingSite)
	require.Equal(t, 1, gw.callCount())
}

func TestCreateEquipmentValidatesReference(t *testing.T) {
	gw := &fakeGateway{}
	uc := NewWorkshopUseCase(gw)
	sess := authedSession()

	_, err := uc.CreateEquipment(context.Background(), sess, entities.Equipment{Brand: "Bosch", Model: "X1", Serial: "S1"})
	require.ErrorIs(t, err, ErrMissingClient)

	_, err = uc.CreateEquipment(context.Background(), sess, entities.Equipment{ClientID: 1, Brand: "Bosch"})
	require.ErrorIs(t, err, ErrMissingEquipmentRef)
	require.Equal(t, 0, gw.callCount())
}

func TestCreateEquipmentForwardsPayload(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body any) (json.RawMessage, error) {
		return mustJSON(map[string]any{"id": 4, "marca": "Bosch", "modelo": "GSB 13", "serial": "S-100", "clienteId": 1}), nil
	}}
	uc := NewWorkshopUseCase(gw)

	created, err := uc.CreateEquipment(context.Background(), authedSession(), entities.Equipment{
		ClientID: 1,
		Brand:    " Bosch ",
		Model:    "GSB 13",
		Serial:   "S-100",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), created.ID)

	sent := gw.lastCall().Body.(map[string]any)
	require.Equal(t, "Bosch", sent["marca"])
	require.Equal(t, "/api/equipos", gw.lastCall().Path)
}

func TestReferenceLists(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body any) (json.RawMessage, error) {
		switch path {
		case "/api/tecnicos":
			return mustJSON([]map[string]any{{"id": 5, "nombre": "Luis"}}), nil
		case "/api/sedes":
			return mustJSON([]map[string]any{{"id": 1, "nombre": "Sede Centro", "activa": true}}), nil
		default:
			return mustJSON([]map[string]any{}), nil
		}
	}}
	uc := NewWorkshopUseCase(gw)
	sess := authedSession()

	techs, err := uc.ListTechnicians(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, techs, 1)

	sites, err := uc.ListSites(context.Background(), sess)
	require.NoError(t, err)
	require.True(t, sites[0].Active)
}
