package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"mumu_delivery/internal/config"
	"mumu_delivery/internal/controllers"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/services"
	"mumu_delivery/internal/session"
)

func init() { gin.SetMode(gin.TestMode) }

type harness struct {
	t       *testing.T
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := config.Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := repository.NewStore(db)
	tz := time.FixedZone("KST", 9*60*60)
	sessions := session.NewManager("test-secret", time.Hour)
	routeSvc := services.NewRouteService(store, true, tz)
	deps := Deps{
		Sessions:  sessions,
		Auth:      controllers.NewAuthController(services.NewAuthService(store, sessions)),
		Routes:    controllers.NewRouteController(routeSvc),
		Locations: controllers.NewLocationController(services.NewLocationService(store, tz)),
		Drivers:   controllers.NewDriverController(routeSvc, services.NewDeliveryService(store, tz)),
	}
	return &harness{t: t, handler: SetupRouter(deps)}
}

func (h *harness) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

// signup creates a profile and signs it in.
func (h *harness) signup(name, email, role string) (token string, id float64) {
	h.t.Helper()
	code, _ := h.do(http.MethodPost, "/auth/signup", "", gin.H{"name": name, "email": email, "password": "pw1234", "role": role})
	require.Equal(h.t, http.StatusCreated, code)
	code, body := h.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "pw1234"})
	require.Equal(h.t, http.StatusOK, code)
	sess := body["session"].(map[string]interface{})
	return body["token"].(string), sess["user_id"].(float64)
}

func stopsOf(t *testing.T, body map[string]interface{}) []map[string]interface{} {
	t.Helper()
	raw, ok := body["stops"].([]interface{})
	require.True(t, ok, "response has no stops: %v", body)
	out := make([]map[string]interface{}, len(raw))
	for i, s := range raw {
		out[i] = s.(map[string]interface{})
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	code, body := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestDeliveryDayOverHTTP(t *testing.T) {
	h := newHarness(t)
	admin, _ := h.signup("관리자", "admin@mumu.com", "admin")
	driver, driverID := h.signup("홍기사", "driver-a@mumu.com", "")

	code, body := h.do(http.MethodGet, "/dashboard", driver, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/driver", body["home"])

	code, body = h.do(http.MethodPost, "/admin/locations", admin, gin.H{
		"name": "무무 강남점", "address": "서울시 강남구 1", "region": "SOUTH", "access_info": "#1234",
	})
	require.Equal(t, http.StatusCreated, code)
	locID := body["location"].(map[string]interface{})["id"]

	code, _ = h.do(http.MethodPost, "/admin/routes", driver, gin.H{"date": "2024-05-01", "driver_id": driverID, "location_id": locID})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = h.do(http.MethodPost, "/admin/routes", admin, gin.H{"date": "2024-05-01", "driver_id": driverID, "location_id": locID})
	require.Equal(t, http.StatusCreated, code)
	stops := stopsOf(t, body)
	require.Len(t, stops, 1)
	routeID := stops[0]["id"].(float64)

	code, body = h.do(http.MethodPatch, "/admin/routes/"+ftoa(routeID)+"/instruction", admin, gin.H{"instruction": "회수만 진행"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "회수만 진행", stopsOf(t, body)[0]["admin_memo"])

	code, body = h.do(http.MethodGet, "/driver/routes?date=2024-05-01", driver, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["completed"])
	assert.Equal(t, float64(1), body["total"])

	code, body = h.do(http.MethodPost, "/driver/routes/"+ftoa(routeID)+"/log", driver, gin.H{"type": "DELIVERY", "memo": "left at door"})
	require.Equal(t, http.StatusOK, code)
	stop := body["stop"].(map[string]interface{})
	assert.Equal(t, "COMPLETED", stop["status"])
	assert.Equal(t, "배송 완료", stop["display"].(map[string]interface{})["label"])

	code, body = h.do(http.MethodGet, "/admin/board?date=2024-05-01", admin, nil)
	require.Equal(t, http.StatusOK, code)
	cols := body["drivers"].([]interface{})
	require.Len(t, cols, 1)
	assert.Equal(t, float64(1), cols[0].(map[string]interface{})["completed"])

	code, _ = h.do(http.MethodDelete, "/admin/routes/"+ftoa(routeID), admin, nil)
	assert.Equal(t, http.StatusPreconditionRequired, code)

	code, body = h.do(http.MethodDelete, "/admin/routes/"+ftoa(routeID)+"?confirm=true", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, stopsOf(t, body))
}

func TestReorderOverHTTP(t *testing.T) {
	h := newHarness(t)
	admin, _ := h.signup("관리자", "admin@mumu.com", "admin")
	_, driverID := h.signup("김기사", "driver-b@mumu.com", "driver")

	var locs []interface{}
	for _, name := range []string{"L1", "L2"} {
		code, body := h.do(http.MethodPost, "/admin/locations", admin, gin.H{
			"name": name, "address": name + " addr", "region": "NORTH", "access_info": "none",
		})
		require.Equal(t, http.StatusCreated, code)
		locs = append(locs, body["location"].(map[string]interface{})["id"])
	}
	for _, id := range locs {
		code, _ := h.do(http.MethodPost, "/admin/routes", admin, gin.H{"date": "2024-05-01", "driver_id": driverID, "location_id": id})
		require.Equal(t, http.StatusCreated, code)
	}

	code, _ := h.do(http.MethodPost, "/admin/routes/reorder", admin, gin.H{"date": "2024-05-01", "driver_id": driverID, "index": 0, "direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := h.do(http.MethodPost, "/admin/routes/reorder", admin, gin.H{"date": "2024-05-01", "driver_id": driverID, "index": 0, "direction": "down"})
	require.Equal(t, http.StatusOK, code)
	stops := stopsOf(t, body)
	require.Len(t, stops, 2)
	assert.Equal(t, locs[1], stops[0]["location"].(map[string]interface{})["id"])
	assert.Equal(t, locs[0], stops[1]["location"].(map[string]interface{})["id"])

	code, body = h.do(http.MethodGet, "/admin/locations?q=l2", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signup("홍기사", "driver-a@mumu.com", "driver")

	code, body := h.do(http.MethodPost, "/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, code)
	fresh := body["token"].(string)

	code, _ = h.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = h.do(http.MethodPost, "/auth/logout", fresh, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = h.do(http.MethodGet, "/auth/me", fresh, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func ftoa(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
