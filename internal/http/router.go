package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /board", handler.Boards)
	mux.HandleFunc("GET /board/{league}", handler.BoardByLeague)
	mux.HandleFunc("GET /games/{id}", handler.GameByID)
	mux.HandleFunc("GET /lines/{league}", handler.LineMovements)
	mux.HandleFunc("POST /admin/refresh", handler.AdminRefresh)
	return mux
}
