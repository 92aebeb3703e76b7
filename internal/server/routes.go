package server

import (
	"log/slog"
	"net/http"
)

// NewMux wires the item routes and wraps them in the standard middleware.
func NewMux(api *API) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", api.ListItems)
	mux.HandleFunc("POST /items", api.CreateItem)
	mux.HandleFunc("GET /items/{id}", api.GetItem)
	mux.HandleFunc("PUT /items/{id}", api.UpdateItem)
	mux.HandleFunc("DELETE /items/{id}", api.DeleteItem)
	mux.HandleFunc("GET /healthz", api.Health)

	logger := api.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return WithRequestID(logger, WithAccessLog(WithRecover(mux)))
}
