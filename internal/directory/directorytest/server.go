// Package directorytest provides an in-memory location directory service for tests.
package directorytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Server is a fake directory serving the three read endpoints from memory.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	data     map[string]map[string][]string // country -> state -> cities
	order    []string
	states   map[string][]string
	failures map[string]int // request path -> status to answer with
	hits     map[string]int
}

// NewServer starts a fake directory. Call Close when done.
func NewServer() *Server {
	s := &Server{
		data:     make(map[string]map[string][]string),
		states:   make(map[string][]string),
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.count)
	r.Get("/countries", s.handleCountries)
	r.Get("/country={country}/states", s.handleStates)
	r.Get("/country={country}/states={state}/cities", s.handleCities)

	s.Server = httptest.NewServer(r)
	return s
}

// AddCountry registers a country with no states.
func (s *Server) AddCountry(country string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCountryLocked(country)
	return s
}

// AddCities registers country/state and appends cities to it.
func (s *Server) AddCities(country, state string, cities ...string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCountryLocked(country)
	if _, ok := s.data[country][state]; !ok {
		s.states[country] = append(s.states[country], state)
		s.data[country][state] = []string{}
	}
	s.data[country][state] = append(s.data[country][state], cities...)
	return s
}

// FailPath makes every request for path answer with status. A zero status
// restores normal answers.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Hits reports how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) addCountryLocked(country string) {
	if _, ok := s.data[country]; ok {
		return
	}
	s.data[country] = make(map[string][]string)
	s.order = append(s.order, country)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		status, fail := s.failures[r.URL.Path]
		s.mu.Unlock()

		if fail {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	countries := append([]string{}, s.order...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, countries)
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	country := param(r, "country")

	s.mu.Lock()
	states := append([]string{}, s.states[country]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, states)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	country := param(r, "country")
	state := param(r, "state")

	s.mu.Lock()
	cities := append([]string{}, s.data[country][state]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cities)
}

func param(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
