package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const checkTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to a health check dependency.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type component struct {
	name     string
	p        pinger
	required bool
}

// HealthHandler serves /live, /ready and /health. The database is required;
// components added with AddComponent only degrade /health.
type HealthHandler struct {
	version    string
	components []component
}

// NewHealthHandler creates a HealthHandler that checks db.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		version:    version,
		components: []component{{name: "database", p: db, required: true}},
	}
}

// AddComponent registers an optional dependency such as the realtime feed.
func (h *HealthHandler) AddComponent(name string, p pinger) {
	h.components = append(h.components, component{name: name, p: p})
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the result of one component check.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live reports that the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready fails with 503 while a required component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.check(r.Context(), true)
	writeJSON(w, httpStatus(status), HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports every component with its latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, comps := h.check(r.Context(), false)
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: comps,
		Timestamp:  time.Now(),
	})
}

// check pings components concurrently. The overall status is "down" when a
// required component fails and "degraded" when only optional ones do.
func (h *HealthHandler) check(ctx context.Context, requiredOnly bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		comps   = make(map[string]CompStatus, len(h.components))
		overall = "ok"
	)

	var g errgroup.Group
	for _, c := range h.components {
		if requiredOnly && !c.required {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := c.p.Ping(ctx)
			cs := CompStatus{Status: "ok", Latency: time.Since(start).String()}
			if err != nil {
				cs = CompStatus{Status: "down"}
			}

			mu.Lock()
			defer mu.Unlock()
			comps[c.name] = cs
			switch {
			case err == nil:
			case c.required:
				overall = "down"
			case overall == "ok":
				overall = "degraded"
			}
			return nil
		})
	}
	_ = g.Wait()

	return overall, comps
}

func httpStatus(overall string) int {
	if overall == "down" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
