// Package http exposes the registry read-only over HTTP so a fleet's
// runlevel assignments can be inspected remotely. Mutation stays with the
// command line; this surface never writes.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// Server serves the inspection API from a registry.
type Server struct {
	registry ports.Registry
	metrics  *Metrics
}

// ServiceRow is one row of the membership matrix.
type ServiceRow struct {
	Name      string   `json:"name"`
	Runlevels []string `json:"runlevels"`
}

// Matrix is the full service/runlevel membership matrix.
type Matrix struct {
	Runlevels []string     `json:"runlevels"`
	Services  []ServiceRow `json:"services"`
}

// NewHandler creates the HTTP handler for the inspection API.
func NewHandler(registry ports.Registry, metrics *Metrics) http.Handler {
	server := &Server{registry: registry, metrics: metrics}
	r := chi.NewRouter()

	r.Get("/services", server.GetServices)
	r.Get("/runlevels", server.GetRunlevels)
	r.Get("/runlevels/{name}", server.GetRunlevel)
	r.Get("/matrix", server.GetMatrix)
	r.Handle("/metrics", metrics.Handler())

	return r
}

// GetServices handles GET /services.
func (s *Server) GetServices(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("services").Inc()

	services, err := s.registry.ListServices(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, services)
}

// GetRunlevels handles GET /runlevels.
func (s *Server) GetRunlevels(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("runlevels").Inc()

	runlevels, err := s.registry.ListRunlevels(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, runlevels)
}

// GetRunlevel handles GET /runlevels/{name}: the services in one runlevel.
func (s *Server) GetRunlevel(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("runlevel").Inc()

	name := chi.URLParam(r, "name")
	exists, err := s.registry.RunlevelExists(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !exists {
		http.Error(w, fmt.Sprintf("runlevel %q does not exist", name), http.StatusNotFound)
		return
	}

	services, err := s.registry.ListServices(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	members := []string{}
	for _, service := range services {
		member, err := s.registry.IsMember(r.Context(), service, name)
		if err != nil {
			s.fail(w, err)
			return
		}
		if member {
			members = append(members, service)
		}
	}
	writeJSON(w, members)
}

// GetMatrix handles GET /matrix: every service against every runlevel.
func (s *Server) GetMatrix(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("matrix").Inc()

	runlevels, err := s.registry.ListRunlevels(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	services, err := s.registry.ListServices(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	matrix := Matrix{Runlevels: runlevels, Services: make([]ServiceRow, 0, len(services))}
	for _, service := range services {
		row := ServiceRow{Name: service, Runlevels: []string{}}
		for _, runlevel := range runlevels {
			member, err := s.registry.IsMember(r.Context(), service, runlevel)
			if err != nil {
				s.fail(w, err)
				return
			}
			if member {
				row.Runlevels = append(row.Runlevels, runlevel)
			}
		}
		matrix.Services = append(matrix.Services, row)
	}
	writeJSON(w, matrix)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.metrics.registryErrors.Inc()
	http.Error(w, fmt.Sprintf("registry error: %v", err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("encode error: %v\n", err)
	}
}
