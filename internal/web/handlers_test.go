package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/visitor-log/internal/db"
	"github.com/evcraddock/visitor-log/internal/visitor"
)

// stubNotifier fails when err is set.
type stubNotifier struct {
	err error
}

func (n *stubNotifier) Send(context.Context, *visitor.Visitor) error {
	return n.err
}

func testServer(t *testing.T, notifier visitor.Notifier) *Server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "visitors.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing database: %v", err)
		}
	})

	service := visitor.NewService(visitor.NewRepository(database), notifier)
	return NewServer(service, "test")
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func TestIndexBanner(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var banner struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	decode(t, w, &banner)

	if banner.Message == "" {
		t.Error("expected a service banner message")
	}
	if banner.Version != "test" {
		t.Errorf("version = %q, want %q", banner.Version, "test")
	}
	for _, ep := range []string{"POST /api/visitors", "GET /api/visitors", "GET /api/stats"} {
		if _, ok := banner.Endpoints[ep]; !ok {
			t.Errorf("banner missing endpoint %q", ep)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestCreateVisitor(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery","phone_number":"555-0134"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var v visitor.Visitor
	decode(t, w, &v)
	if v.ID != 1 {
		t.Errorf("id = %d, want 1", v.ID)
	}
	if !v.Notified {
		t.Error("notified = false with a working notifier, want true")
	}
	if v.CheckInTime.IsZero() {
		t.Error("check_in_time not set")
	}
}

func TestCreateVisitorNotifierDown(t *testing.T) {
	srv := testServer(t, &stubNotifier{err: errors.New("provider down")})

	w := doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d despite notifier failure", w.Code, http.StatusCreated)
	}

	var v visitor.Visitor
	decode(t, w, &v)
	if v.Notified {
		t.Error("notified = true after failed send, want false")
	}

	// Record is still retrievable.
	w = doJSON(t, srv, "GET", "/api/visitors/1", "")
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCreateVisitorValidation(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "POST", "/api/visitors", `{"name":"Alex"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "apartment_number") {
		t.Errorf("error body %q should name the missing fields", w.Body.String())
	}

	// Nothing persisted.
	w = doJSON(t, srv, "GET", "/api/visitors", "")
	var list listResponse
	decode(t, w, &list)
	if list.Total != 0 {
		t.Errorf("total = %d after failed create, want 0", list.Total)
	}
}

func TestCreateVisitorBadJSON(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "POST", "/api/visitors", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListVisitorsNewestFirst(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	for _, name := range []string{"A", "B", "C"} {
		w := doJSON(t, srv, "POST", "/api/visitors",
			`{"name":"`+name+`","apartment_number":"1A","purpose":"Delivery"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: status %d", name, w.Code)
		}
	}

	w := doJSON(t, srv, "GET", "/api/visitors", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var list listResponse
	decode(t, w, &list)
	if list.Total != 3 {
		t.Fatalf("total = %d, want 3", list.Total)
	}
	want := []string{"C", "B", "A"}
	for i, v := range list.Visitors {
		if v.Name != want[i] {
			t.Errorf("position %d: name = %q, want %q", i, v.Name, want[i])
		}
	}
}

func TestListVisitorsEmpty(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "GET", "/api/visitors", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"visitors":[]`) {
		t.Errorf("body = %q, want an empty visitors array", w.Body.String())
	}
}

func TestListVisitorsPagination(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	for i := 0; i < 5; i++ {
		doJSON(t, srv, "POST", "/api/visitors",
			`{"name":"Guest","apartment_number":"1A","purpose":"Delivery"}`)
	}

	w := doJSON(t, srv, "GET", "/api/visitors?limit=2&offset=1", "")
	var list listResponse
	decode(t, w, &list)
	if len(list.Visitors) != 2 {
		t.Errorf("page length = %d, want 2", len(list.Visitors))
	}
	if list.Total != 5 {
		t.Errorf("total = %d, want 5", list.Total)
	}

	w = doJSON(t, srv, "GET", "/api/visitors?limit=nope", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetVisitorNotFound(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "GET", "/api/visitors/42", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetVisitorBadID(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "GET", "/api/visitors/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateVisitor(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery"}`)

	w := doJSON(t, srv, "PUT", "/api/visitors/1",
		`{"name":"Alexandra","apartment_number":"5C","purpose":"Maintenance"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var v visitor.Visitor
	decode(t, w, &v)
	if v.Name != "Alexandra" || v.ApartmentNumber != "5C" {
		t.Errorf("update not applied: %+v", v)
	}
	if !v.Notified {
		t.Error("update must not clear the notified flag")
	}
}

func TestUpdateVisitorNotFound(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "PUT", "/api/visitors/42",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteVisitor(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery"}`)

	w := doJSON(t, srv, "DELETE", "/api/visitors/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	w = doJSON(t, srv, "GET", "/api/visitors/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = doJSON(t, srv, "DELETE", "/api/visitors/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSearchVisitors(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex Johnson","apartment_number":"4B","purpose":"Delivery"}`)
	doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Blair Smith","apartment_number":"2A","purpose":"Guest"}`)

	w := doJSON(t, srv, "GET", "/api/visitors/search/johnson", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var list listResponse
	decode(t, w, &list)
	if list.Query != "johnson" {
		t.Errorf("query = %q, want %q", list.Query, "johnson")
	}
	if list.Total != 1 || len(list.Visitors) != 1 {
		t.Fatalf("got %d results, want 1", len(list.Visitors))
	}
	if list.Visitors[0].Name != "Alex Johnson" {
		t.Errorf("result name = %q, want %q", list.Visitors[0].Name, "Alex Johnson")
	}
}

// Full scenario: create with a working notifier, read back, check stats.
func TestCheckInScenario(t *testing.T) {
	srv := testServer(t, &stubNotifier{})

	w := doJSON(t, srv, "POST", "/api/visitors",
		`{"name":"Alex","apartment_number":"4B","purpose":"Delivery"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	var created visitor.Visitor
	decode(t, w, &created)
	if created.ID != 1 || !created.Notified {
		t.Fatalf("created = %+v, want id 1 and notified true", created)
	}

	w = doJSON(t, srv, "GET", "/api/visitors/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	var fetched visitor.Visitor
	decode(t, w, &fetched)
	if fetched.ID != created.ID || fetched.Name != created.Name ||
		fetched.Notified != created.Notified || !fetched.CheckInTime.Equal(created.CheckInTime) {
		t.Errorf("fetched %+v differs from created %+v", fetched, created)
	}

	w = doJSON(t, srv, "GET", "/api/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status = %d", w.Code)
	}
	var stats visitor.Stats
	decode(t, w, &stats)
	if stats.TotalVisitors != 1 {
		t.Errorf("total_visitors = %d, want 1", stats.TotalVisitors)
	}
	if stats.NotifiedVisitors != 1 {
		t.Errorf("notified_visitors = %d, want 1", stats.NotifiedVisitors)
	}
}
