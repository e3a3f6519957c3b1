package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelcore/constants"
	"hotelcore/services"
	"hotelcore/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	deps := services.Deps{DB: testutil.NewDB(t)}
	inventory := services.NewInventoryService(deps)
	r := gin.New()
	SetupRoutes(r, Services{
		Reservations:   services.NewReservationService(deps),
		Blocks:         services.NewBlockBookingService(deps),
		Availability:   services.NewAvailabilityService(deps),
		Inventory:      inventory,
		Reconciliation: services.NewReconciliationService(deps, inventory),
	})
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = serve(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hotel Core API")
}

func TestSetupRoutes_RoleGates(t *testing.T) {
	r := newRouter(t)
	guest := testutil.BearerToken(1, constants.RoleCustomer, 0)
	clerk := testutil.BearerToken(2, constants.RoleClerk, 0)
	manager := testutil.BearerToken(3, constants.RoleManager, 0)

	tests := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/v1/reservations", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/reservations/1/checkin", guest, http.StatusForbidden},
		{http.MethodPost, "/api/v1/reservations/1/paid", guest, http.StatusForbidden},
		{http.MethodPost, "/api/v1/block-bookings/1/approve", clerk, http.StatusForbidden},
		{http.MethodGet, "/api/v1/rooms?hotelId=1", guest, http.StatusForbidden},
		{http.MethodPost, "/api/v1/reconciliation/run", clerk, http.StatusForbidden},
		{http.MethodGet, "/api/v1/reservations/99", clerk, http.StatusNotFound},
		{http.MethodGet, "/api/v1/reconciliation/runs?date=2024-06-01", manager, http.StatusNotFound},
	}
	for _, tt := range tests {
		w := serve(r, tt.method, tt.path, tt.token)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}
