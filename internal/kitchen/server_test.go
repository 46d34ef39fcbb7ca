package kitchen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fridgechef/internal/cache"
	"fridgechef/internal/config"
	"fridgechef/internal/credential"
)

func testMux(s *Session, gate *credential.Gate) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(s, gate).Register(mux)
	return mux
}

func postForm(mux *http.ServeMux, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHandleAddIngredientRedirects(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/ingredients", url.Values{"ingredient": {" egg "}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "/" {
		t.Errorf("expected redirect to /, got %q", location)
	}

	items := s.Snapshot().Ingredients
	if len(items) != 1 || items[0] != "egg" {
		t.Errorf("expected trimmed ingredient [egg], got %v", items)
	}
}

func TestHandleRemoveIngredientOutOfRangeIsNoop(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	s.AddIngredient("egg")
	mux := testMux(s, gate)

	for _, path := range []string{"/ingredients/5/delete", "/ingredients/bogus/delete", "/ingredients/-1/delete"} {
		rr := postForm(mux, path, nil)
		if rr.Code != http.StatusSeeOther {
			t.Errorf("%s: expected redirect, got %d", path, rr.Code)
		}
	}
	if got := s.Snapshot().Ingredients; len(got) != 1 {
		t.Errorf("list should be untouched, got %v", got)
	}
}

func TestHandleResetIngredientsClearsList(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	s.AddIngredient("egg")
	s.AddIngredient("onion")
	mux := testMux(s, gate)

	rr := postForm(mux, "/ingredients/reset", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if got := s.Snapshot().Ingredients; len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestHandleMealTimeRejectsUnknownValue(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/mealtime", url.Values{"meal": {"brunch"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestHandleGenerateWithEmptyPantryShowsValidation(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/generate", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	s.Wait()

	home := httptest.NewRecorder()
	mux.ServeHTTP(home, httptest.NewRequest(http.MethodGet, "/", nil))
	if home.Code != http.StatusOK {
		t.Fatalf("expected 200 from home, got %d", home.Code)
	}
	if body := home.Body.String(); !strings.Contains(body, "Add at least one ingredient") {
		t.Errorf("expected validation message in page, got:\n%s", body)
	}
}

func TestHandleGenerateRendersThreeCards(t *testing.T) {
	gate := presentGate(t)
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	s.AddIngredient("egg")
	s.AddIngredient("onion")
	mux := testMux(s, gate)

	rr := postForm(mux, "/generate", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	s.Wait()

	home := httptest.NewRecorder()
	mux.ServeHTTP(home, httptest.NewRequest(http.MethodGet, "/", nil))
	body := home.Body.String()
	for _, title := range []string{"Glue Pizza", "Everything Scramble", "Desperation Soup"} {
		if !strings.Contains(body, title) {
			t.Errorf("expected %q in page", title)
		}
	}
}

func TestHandleSelectKeyUnsupportedEnvironment(t *testing.T) {
	gate := credential.NewGate(config.NewCell(func() string { return "" }), nil, nil)
	gate.Probe(context.Background())
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/credential/select", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if gate.State() != credential.StateAbsent {
		t.Errorf("unsupported picker must not change state, got %v", gate.State())
	}
	if msg := s.Snapshot().Message; !strings.Contains(msg, "isn't available") {
		t.Errorf("expected unsupported message, got %q", msg)
	}
}

func TestHandleSelectKeyFlipsGate(t *testing.T) {
	cell := config.NewCell(func() string { return "" })
	gate := credential.NewGate(cell, credential.EnvPicker{Cred: cell}, nil)
	gate.Probe(context.Background())
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/credential/select", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	gate.Wait()
	if gate.State() != credential.StatePresent {
		t.Errorf("expected optimistic present state, got %v", gate.State())
	}
}

func TestHandleTestConnectionUpdatesIndicator(t *testing.T) {
	cell := config.NewCell(func() string { return "key" })
	gate := credential.NewGate(cell, nil, func(context.Context) bool { return true })
	gate.Probe(context.Background())
	s := NewSession(gate, mock{}, cache.NewInMemoryCache())
	mux := testMux(s, gate)

	rr := postForm(mux, "/credential/test", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if got := gate.ConnectivityResult(); got != credential.TestPassed {
		t.Errorf("expected passed, got %v", got)
	}
}
