package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"avrental-backend/internal/clock"
	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository/memory"
	"avrental-backend/internal/security"
	"avrental-backend/internal/service"
	"avrental-backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-at-least-32-characters"

func setupRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	v := validator.New()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	clients := service.NewClientService(store.ClientRepository, v)
	vehicles := service.NewVehicleService(store.VehicleRepository, v, clk)
	reservations := service.NewReservationService(store.ReservationRepository, store.VehicleRepository,
		store.ClientRepository, nil, clk, domain.DefaultDepositCents)
	require.NoError(t, service.Seed(ctx, clients, vehicles, service.NewCouponService(store.CouponRepository)))

	r, err := reservations.Book(ctx, "12345678900", "ABC1234", 2)
	require.NoError(t, err)
	_, err = reservations.ReportIncident(ctx, r.ID, "flat tyre")
	require.NoError(t, err)

	tokens := security.NewTokenManager(testSecret, time.Hour)
	token, err := tokens.GenerateAdminToken("admin", "00000000000")
	require.NoError(t, err)

	return NewRouter(NewReportHandler(reservations, vehicles), tokens), token
}

func do(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	h, _ := setupRouter(t)
	rec := do(t, h, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportsRequireAdminToken(t *testing.T) {
	h, _ := setupRouter(t)

	for _, path := range []string{"/reports/payments", "/fleet/stats", "/vehicles/ABC1234/incidents"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(t, h, path, "").Code)
			assert.Equal(t, http.StatusUnauthorized, do(t, h, path, "garbage").Code)
		})
	}
}

func TestPaymentReport(t *testing.T) {
	h, token := setupRouter(t)
	rec := do(t, h, "/reports/payments", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var report service.PaymentReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Pending, 1)
	assert.Equal(t, int64(19100+25000), report.Pending[0].AmountCents)
	assert.Empty(t, report.Paid)
}

func TestFleetStats(t *testing.T) {
	h, token := setupRouter(t)
	rec := do(t, h, "/fleet/stats", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.FleetStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, domain.FleetStats{Total: 2, Available: 1, Rented: 1}, stats)
}

func TestIncidentsByPlate(t *testing.T) {
	h, token := setupRouter(t)

	rec := do(t, h, "/vehicles/abc1234/incidents", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Plate        string                  `json:"plate"`
		Reservations []service.IncidentGroup `json:"reservations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Reservations, 1)
	require.Len(t, body.Reservations[0].Incidents, 1)
	assert.Equal(t, "flat tyre", body.Reservations[0].Incidents[0].Description)

	assert.Equal(t, http.StatusNotFound, do(t, h, "/vehicles/ZZZ9999/incidents", token).Code)
}
