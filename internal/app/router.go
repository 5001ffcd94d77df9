package app

import (
	"net/http"

	"github.com/heartmarshall/household-backend/internal/transport/middleware"
	"github.com/heartmarshall/household-backend/internal/transport/rest"
)

type routerDeps struct {
	Health     *rest.HealthHandler
	Items      *rest.ItemHandler
	Recurring  *rest.RecurringHandler
	Sync       *rest.SyncHandler
	Activities *rest.ActivityHandler

	// SyncLimit guards POST /api/sync.
	SyncLimit middleware.Middleware

	// Global middleware, outermost first.
	Middleware []middleware.Middleware
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	// Everything under /api needs an identified member.
	api := http.NewServeMux()

	api.HandleFunc("GET /api/items", d.Items.List)
	api.HandleFunc("POST /api/items", d.Items.Create)
	api.HandleFunc("GET /api/items/suggest", d.Items.Suggest)
	api.HandleFunc("GET /api/items/{id}", d.Items.Get)
	api.HandleFunc("PATCH /api/items/{id}", d.Items.Update)
	api.HandleFunc("DELETE /api/items/{id}", d.Items.Trash)
	api.HandleFunc("POST /api/items/{id}/move", d.Items.Move)
	api.HandleFunc("POST /api/items/{id}/restore", d.Items.Restore)
	api.HandleFunc("DELETE /api/items/{id}/force", d.Items.ForceDelete)

	api.HandleFunc("PUT /api/items/{id}/recurring", d.Recurring.Set)
	api.HandleFunc("DELETE /api/items/{id}/recurring", d.Recurring.Remove)
	api.HandleFunc("GET /api/recurring", d.Recurring.List)

	var sync http.Handler = http.HandlerFunc(d.Sync.Sync)
	if d.SyncLimit != nil {
		sync = d.SyncLimit(sync)
	}
	api.Handle("POST /api/sync", sync)

	api.HandleFunc("GET /api/activities", d.Activities.List)

	mux.Handle("/api/", middleware.RequireUser(api))

	return middleware.Chain(d.Middleware...)(mux)
}
