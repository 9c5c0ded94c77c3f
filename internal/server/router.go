// Package server shares the prospect list and the user's QR code over HTTP.
// Every route is read-only.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/prospect"
	"github.com/hotprospects/hotprospects/internal/qr"
)

const maxQRSize = 2048

// ProspectLister is the read side of the prospect service.
type ProspectLister interface {
	Filtered(ctx context.Context, pred prospect.Predicate) ([]repository.Prospect, error)
}

type Server struct {
	Prospects ProspectLister
	// Profile is read per request so edits made elsewhere show up.
	Profile func() (prefs.Profile, error)
	QRSize  int
	Log     logrus.FieldLogger
}

type listResponse struct {
	Title     string                `json:"title"`
	Count     int                   `json:"count"`
	Prospects []repository.Prospect `json:"prospects"`
}

func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK\n"))
	}).Methods("GET")
	r.HandleFunc("/prospects", s.listProspects).Methods("GET")
	r.HandleFunc("/me", s.getProfile).Methods("GET")
	r.HandleFunc("/me/qr.png", s.getQRCode).Methods("GET")
	r.Use(s.logRequests)
	return r
}

func (s *Server) listProspects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := prospect.ParseFilter(q.Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list, err := s.Prospects.Filtered(r.Context(), prospect.And(f.Predicate(), prospect.Search(q.Get("q"))))
	if err != nil {
		s.Log.WithError(err).Error("list prospects")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, listResponse{Title: f.Title(), Count: len(list), Prospects: list})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.Profile()
	if err != nil {
		s.Log.WithError(err).Error("load profile")
		http.Error(w, "profile unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p)
}

func (s *Server) getQRCode(w http.ResponseWriter, r *http.Request) {
	size := s.QRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxQRSize {
			http.Error(w, "size must be between 1 and 2048", http.StatusBadRequest)
			return
		}
		size = n
	}
	p, err := s.Profile()
	if err != nil {
		s.Log.WithError(err).Error("load profile")
		http.Error(w, "profile unavailable", http.StatusInternalServerError)
		return
	}
	code := qr.Generate(p.Payload())
	if code.Failed() {
		s.Log.WithError(code.Err()).Warn("serving fallback qr image")
	}
	data, err := code.PNG(size)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
