package fleet

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/config"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	"github.com/mateusmacedo/go-fleet/internal/fleet/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	f, _ := newTestFleet(t, writeSeed(t), PolicyAllow)
	router := infrastructure.NewRouter(config.Default().HTTP, zapAdapter.NewNopAppLogger())
	f.RegisterRoutes(router, auth.NewTokenIssuer("test-secret-key", time.Hour))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, baseURL, username, password, role string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, baseURL+"/login", "", map[string]string{
		"username": username, "password": password, "role": role,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out["token"]
}

func TestHTTP_HealthAndRequestID(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestHTTP_LoginFailures(t *testing.T) {
	server := newTestServer(t)

	cases := []struct {
		username, password, role string
		status                   int
	}{
		{"ghost", "x", "Admin", http.StatusUnauthorized},
		{"admin", "wrong", "Admin", http.StatusUnauthorized},
		{"admin", "admin123", "Driver", http.StatusForbidden},
	}
	for _, tc := range cases {
		resp := doJSON(t, http.MethodPost, server.URL+"/login", "", map[string]string{
			"username": tc.username, "password": tc.password, "role": tc.role,
		})
		if resp.StatusCode != tc.status {
			t.Errorf("%s/%s: status = %d, want %d", tc.username, tc.role, resp.StatusCode, tc.status)
		}
	}
}

func TestHTTP_SearchRoutesIsPublic(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/routes?stop=Central", "", nil)
	var routes []domain.Route
	if err := json.NewDecoder(resp.Body).Decode(&routes); err != nil {
		t.Fatal(err)
	}
	if len(routes) != 1 || routes[0].ID != "R001" {
		t.Errorf("unexpected routes %+v", routes)
	}

	if resp := doJSON(t, http.MethodGet, server.URL+"/routes/R404", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
}

func TestHTTP_ScheduleErrorsMapToStatus(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL, "admin", "admin123", "Admin")

	valid := domain.Schedule{ID: "S002", RouteID: "R002", BusID: "B002", DriverID: "D102", Date: "2025-12-01", DepartureTime: "08:00", ArrivalTime: "09:00"}
	if resp := doJSON(t, http.MethodPost, server.URL+"/schedules", token, valid); resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPost, server.URL+"/schedules", token, valid); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d", resp.StatusCode)
	}

	overlap := valid
	overlap.ID = "S003"
	overlap.DriverID = "D101"
	if resp := doJSON(t, http.MethodPost, server.URL+"/schedules", token, overlap); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("overlap status = %d", resp.StatusCode)
	}

	if resp := doJSON(t, http.MethodDelete, server.URL+"/schedules/S404", token, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("remove unknown status = %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodDelete, server.URL+"/schedules/S002", token, nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("remove status = %d", resp.StatusCode)
	}
}

func TestHTTP_DriverSeesOnlyOwnSchedules(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL, "D101", "driver123", "Driver")

	resp := doJSON(t, http.MethodGet, server.URL+"/schedules?driver=D102", token, nil)
	var schedules []domain.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&schedules); err != nil {
		t.Fatal(err)
	}
	if len(schedules) != 1 || schedules[0].DriverID != "D101" {
		t.Errorf("driver filter not enforced: %+v", schedules)
	}

	if resp := doJSON(t, http.MethodPost, server.URL+"/schedules", token, domain.Schedule{}); resp.StatusCode != http.StatusForbidden {
		t.Errorf("driver creating schedule status = %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodGet, server.URL+"/drivers/D102", token, nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("driver reading another profile status = %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPost, server.URL+"/dayoff", token, map[string]string{"date": "2025-12-24", "reason": "family"}); resp.StatusCode != http.StatusCreated {
		t.Errorf("day off status = %d", resp.StatusCode)
	}
}

func TestHTTP_RequiresToken(t *testing.T) {
	server := newTestServer(t)

	if resp := doJSON(t, http.MethodGet, server.URL+"/buses/B001", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodGet, server.URL+"/buses/B001", "garbage", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
