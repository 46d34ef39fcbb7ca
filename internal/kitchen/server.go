package kitchen

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fridgechef/internal/credential"
	"fridgechef/internal/pantry"
	"fridgechef/internal/templates"
)

type server struct {
	session *Session
	gate    *credential.Gate
}

// NewHandler returns the http handler set for the single fridge chef page.
func NewHandler(session *Session, gate *credential.Gate) *server {
	return &server{session: session, gate: gate}
}

func (s *server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /ingredients", s.handleAddIngredient)
	mux.HandleFunc("POST /ingredients/{index}/delete", s.handleRemoveIngredient)
	mux.HandleFunc("POST /ingredients/reset", s.handleResetIngredients)
	mux.HandleFunc("POST /mealtime", s.handleMealTime)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /credential/select", s.handleSelectKey)
	mux.HandleFunc("POST /credential/test", s.handleTestConnection)
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := s.session.Snapshot()
	if err := templates.Home.Execute(w, view); err != nil {
		slog.ErrorContext(r.Context(), "home template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *server) handleAddIngredient(w http.ResponseWriter, r *http.Request) {
	if added := s.session.AddIngredient(r.FormValue("ingredient")); !added {
		slog.InfoContext(r.Context(), "ignoring empty ingredient")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleRemoveIngredient(w http.ResponseWriter, r *http.Request) {
	// bad or out-of-range indexes are a no-op, the page just re-renders
	if i, err := strconv.Atoi(r.PathValue("index")); err == nil {
		s.session.RemoveIngredient(i)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleResetIngredients(w http.ResponseWriter, r *http.Request) {
	s.session.ResetIngredients()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleMealTime(w http.ResponseWriter, r *http.Request) {
	meal, err := pantry.ParseMealTime(r.FormValue("meal"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.session.SetMealTime(meal)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.session.Generate()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleSelectKey(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.RequestKeySelection(r.Context()); err != nil {
		if errors.Is(err, credential.ErrUnsupported) {
			s.session.SetMessage(msgUnsupported)
		} else {
			slog.ErrorContext(r.Context(), "key selection failed", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	s.gate.RunConnectivityTest(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
