package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/api-sage/core-banking/src/internal/adapter/http/middleware"
)

const APIPrefix = "/api/v1"

type RouteRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

// New mounts every registrar under APIPrefix behind authMiddleware. Health
// and API docs stay public.
func New(authMiddleware mux.MiddlewareFunc, registrars ...RouteRegistrar) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover)

	r.HandleFunc("/health", health).Methods(http.MethodGet)
	registerSwaggerRoutes(r)

	api := r.PathPrefix(APIPrefix).Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}
	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(api)
		}
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
