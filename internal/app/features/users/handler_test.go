package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	usersfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/users"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
	"github.com/MirzaKrupic/CampusConnect/internal/testutil"
)

// Cache entries expire on their own schedule, unrelated to call timeouts.
const testTTL = time.Hour

func newHandler(t *testing.T) (*usersfeature.Handler, *testutil.FakeCache) {
	t.Helper()
	users := testutil.NewFakeUserStore()
	groups := testutil.NewFakeGroupStore()
	memberships := testutil.NewFakeMembershipStore(users, groups)
	graph := testutil.NewFakeGraph()
	cache := testutil.NewFakeCache()
	svc := usersvc.New(users, memberships, graph, cache, testTTL, zap.NewNop())
	return usersfeature.NewHandler(svc, nil, zap.NewNop()), cache
}

func TestServeCreate(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"email": "Bob@Example.com", "full_name": "Bob Jones"}`
	req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Partial bool `json:"partial"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.User.Email != "bob@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.Partial {
		t.Error("clean create should not be partial")
	}
}

func TestServeCreate_DuplicateEmail(t *testing.T) {
	h, _ := newHandler(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body := `{"email": "bob@example.com", "full_name": "Bob Jones"}`
		req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeCreate(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i+1, want, rec.Code)
		}
	}
}

func TestServeCreate_MissingFields(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest("POST", "/users", strings.NewReader(`{"email": ""}`))
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServeView_NotFound(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/users/42", nil)
	req = testutil.WithChiURLParam(req, "id", "42")
	rec := httptest.NewRecorder()
	h.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != "not_found" {
		t.Errorf("expected not_found code, got %q", resp.Error)
	}
}

func TestServeAddFriend_SelfRejected(t *testing.T) {
	h, _ := newHandler(t)

	// Seed one user through the handler.
	req := httptest.NewRequest("POST", "/users",
		strings.NewReader(`{"email": "a@example.com", "full_name": "A"}`))
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/users/1/friends",
		strings.NewReader(`{"friend_id": 1}`))
	req = testutil.WithChiURLParam(req, "id", "1")
	rec = httptest.NewRecorder()
	h.ServeAddFriend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self friendship, got %d", rec.Code)
	}
}
