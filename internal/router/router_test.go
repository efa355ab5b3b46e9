package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petrescue/internal/adapters/storage"
	mem "petrescue/internal/adapters/storage/memory"
	"petrescue/internal/domain/users"
	"petrescue/internal/middleware"
	"petrescue/internal/platform/metrics"
	"petrescue/internal/router"

	"github.com/prometheus/client_golang/prometheus"
)

type testServer struct {
	url     string
	adminID string
	stores  *storage.Set
}

func newTestServer(t *testing.T, rl *middleware.RateLimiter) testServer {
	t.Helper()

	stores := mem.NewStores()
	admin, _, err := users.NewService(stores.Users).EnsureAdmin(context.Background(), "root@example.com", "rootpass1", "Root")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	reg := prometheus.NewRegistry()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Stores:       stores,
		Metrics:      metrics.NewCollector(reg),
		Gatherer:     reg,
		RateLimiter:  rl,
	}))
	t.Cleanup(ts.Close)

	return testServer{url: ts.URL, adminID: admin.ID, stores: stores}
}

func TestHTTP_EndToEnd_AdoptionLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	// 1) Usuarios se registran
	ownerID := signup(t, srv.url, "owner@example.com")
	aliceID := signup(t, srv.url, "alice@example.com")
	bobID := signup(t, srv.url, "bob@example.com")

	// 2) Owner registra mascota (queda pendiente de moderación)
	var pet map[string]any
	{
		st, body := doReq(t, srv.url, "POST", "/pets/register", ownerID, map[string]any{
			"name":     "Milo",
			"pet_type": "dog",
			"breed":    "mixed",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register pet, got %d body=%s", st, string(body))
		}
		decode(t, body, &pet)
		if pet["is_approved"] != false {
			t.Fatalf("expected registered pet unapproved, got %v", pet["is_approved"])
		}
	}
	petID := pet["id"].(string)

	// 3) Anónimo no la ve; el dueño sí
	{
		st, _ := doReq(t, srv.url, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for anonymous on unapproved pet, got %d", st)
		}
		st, _ = doReq(t, srv.url, "GET", "/pets/"+petID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for owner, got %d", st)
		}
	}

	// 4) Solo admin aprueba
	{
		st, _ := doReq(t, srv.url, "PUT", "/admin/pets/"+petID+"/status", "", map[string]any{"is_approved": true})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
		st, _ = doReq(t, srv.url, "PUT", "/admin/pets/"+petID+"/status", ownerID, map[string]any{"is_approved": true})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-admin, got %d", st)
		}
		st, body := doReq(t, srv.url, "PUT", "/admin/pets/"+petID+"/status", srv.adminID, map[string]any{"is_approved": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
	}

	// 5) Owner recibió la notificación de aprobación
	{
		st, body := doReq(t, srv.url, "GET", "/notifications", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 notifications, got %d", st)
		}
		if !strings.Contains(string(body), "Pet approved") {
			t.Fatalf("expected 'Pet approved' notification, body=%s", string(body))
		}
	}

	// 6) Solicitudes de adopción
	var first map[string]any
	{
		st, body := doReq(t, srv.url, "POST", "/adoptions", aliceID, map[string]any{"pet_id": petID, "message": "I have a garden"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 adoption, got %d body=%s", st, string(body))
		}
		decode(t, body, &first)

		st, _ = doReq(t, srv.url, "POST", "/adoptions", aliceID, map[string]any{"pet_id": petID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate pending request, got %d", st)
		}

		st, _ = doReq(t, srv.url, "POST", "/adoptions", ownerID, map[string]any{"pet_id": petID})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 self adoption, got %d", st)
		}

		st, _ = doReq(t, srv.url, "POST", "/adoptions", bobID, map[string]any{"pet_id": petID})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 second requester, got %d", st)
		}
	}
	firstID := first["id"].(string)

	// 7) Otro usuario no puede decidir; el dueño aprueba
	{
		st, _ := doReq(t, srv.url, "PUT", "/adoptions/"+firstID+"/status", bobID, map[string]any{"status": "approved"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 decide by stranger, got %d", st)
		}
		st, body := doReq(t, srv.url, "PUT", "/adoptions/"+firstID+"/status", ownerID, map[string]any{"status": "approved"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 decide, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, srv.url, "PUT", "/adoptions/"+firstID+"/status", ownerID, map[string]any{"status": "rejected"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 already decided, got %d", st)
		}
	}

	// 8) Cascada: mascota adoptada y la otra pending rechazada
	{
		st, body := doReq(t, srv.url, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var got map[string]any
		decode(t, body, &got)
		if got["status"] != "adopted" {
			t.Fatalf("expected pet adopted, got %v", got["status"])
		}

		st, body = doReq(t, srv.url, "GET", "/pets/"+petID+"/adoptions", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pet adoptions, got %d", st)
		}
		var items []map[string]any
		decode(t, body, &items)
		for _, it := range items {
			want := "rejected"
			if it["id"] == firstID {
				want = "approved"
			}
			if it["status"] != want {
				t.Fatalf("expected request %v %s, got %v", it["id"], want, it["status"])
			}
		}
	}

	// 9) Reviews
	{
		st, _ := doReq(t, srv.url, "POST", "/reviews", bobID, map[string]any{"pet_id": petID, "rating": 6})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid rating, got %d", st)
		}
		st, body := doReq(t, srv.url, "POST", "/reviews", bobID, map[string]any{"pet_id": petID, "rating": 5, "comment": "great"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 review, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, srv.url, "POST", "/reviews", bobID, map[string]any{"pet_id": petID, "rating": 4})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate review, got %d", st)
		}
	}

	// 10) Admin desactiva a bob: pierde identidad en el próximo request
	{
		st, _ := doReq(t, srv.url, "PUT", "/admin/users/"+bobID+"/status", srv.adminID, map[string]any{"is_active": false})
		if st != http.StatusOK {
			t.Fatalf("expected 200 deactivate, got %d", st)
		}
		st, _ = doReq(t, srv.url, "GET", "/users/me", bobID, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for inactive user, got %d", st)
		}
	}

	// 11) Dashboard admin
	{
		st, body := doReq(t, srv.url, "GET", "/admin/dashboard", srv.adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d", st)
		}
		var stats map[string]any
		decode(t, body, &stats)
		reqs := stats["adoption_requests"].(map[string]any)
		if reqs["total"] != float64(2) || reqs["approved"] != float64(1) {
			t.Fatalf("unexpected adoption stats: %v", reqs)
		}
	}
}

func TestHTTP_ReportModeration(t *testing.T) {
	srv := newTestServer(t, nil)
	reporterID := signup(t, srv.url, "finder@example.com")

	st, body := doReq(t, srv.url, "POST", "/reports", reporterID, map[string]any{
		"pet_name":       "Toby",
		"pet_type":       "dog",
		"description":    "brown dog",
		"location_found": "Central Park",
		"contact_info":   "555-1234",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 report, got %d body=%s", st, string(body))
	}
	var rep map[string]any
	decode(t, body, &rep)
	reportID := rep["id"].(string)

	// El admin fue avisado del reporte nuevo
	st, body = doReq(t, srv.url, "GET", "/notifications", srv.adminID, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "New pet report submitted") {
		t.Fatalf("expected admin notified, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, srv.url, "PUT", "/admin/reports/"+reportID+"/status", srv.adminID, map[string]any{"status": "bogus"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid status, got %d", st)
	}

	st, _ = doReq(t, srv.url, "PUT", "/admin/reports/"+reportID+"/status", srv.adminID, map[string]any{"status": "found"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update status, got %d", st)
	}

	st, body = doReq(t, srv.url, "GET", "/notifications/unread-count", reporterID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 unread count, got %d", st)
	}
	var count map[string]int
	decode(t, body, &count)
	if count["unread"] != 1 {
		t.Fatalf("expected 1 unread notification, got %v", count)
	}
}

func TestHTTP_RateLimitOnWrites(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: 0.01,
		Burst:             1,
		CleanupInterval:   time.Minute,
	}, nil)
	defer rl.Stop()

	srv := newTestServer(t, rl)
	userID := signup(t, srv.url, "fast@example.com")

	payload := map[string]any{"pet_name": "Toby"}
	if st, body := doReq(t, srv.url, "POST", "/reports", userID, payload); st != http.StatusCreated {
		t.Fatalf("expected 201 first report, got %d body=%s", st, string(body))
	}
	if st, _ := doReq(t, srv.url, "POST", "/reports", userID, payload); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 second report, got %d", st)
	}

	// Las lecturas no están limitadas
	if st, _ := doReq(t, srv.url, "GET", "/reports", userID, nil); st != http.StatusOK {
		t.Fatalf("expected 200 list reports, got %d", st)
	}

	// El alta directa de pets comparte el mismo límite.
	ownerID := signup(t, srv.url, "lister@example.com")
	pet := map[string]any{"name": "Rex", "pet_type": "dog"}
	if st, body := doReq(t, srv.url, "POST", "/pets", ownerID, pet); st != http.StatusCreated {
		t.Fatalf("expected 201 first pet, got %d body=%s", st, string(body))
	}
	if st, _ := doReq(t, srv.url, "POST", "/pets", ownerID, pet); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 second pet, got %d", st)
	}
	if st, _ := doReq(t, srv.url, "GET", "/pets", ownerID, nil); st != http.StatusOK {
		t.Fatalf("expected 200 list pets, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	st, body := doReq(t, srv.url, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, string(body))
	}

	st, body = doReq(t, srv.url, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "petrescue_http_requests_total") {
		t.Fatalf("expected http counter exposed, body=%s", string(body))
	}
}

func signup(t *testing.T, baseURL, email string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/signup", "", map[string]any{
		"email":    email,
		"password": "password123",
		"name":     strings.Split(email, "@")[0],
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	var out struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, body, &out)
	if out.User.ID == "" {
		t.Fatalf("expected user id in signup response")
	}
	return out.User.ID
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
