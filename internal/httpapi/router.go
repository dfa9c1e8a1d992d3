// Package httpapi serves read-only object queries over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"xdao.co/suiobj/archive"
	"xdao.co/suiobj/suiobj"
)

// Handler holds all API handler state.
type Handler struct {
	node    suiobj.Node
	archive *archive.Archive
}

// NewHandler creates a handler backed by node. arch may be nil; when set,
// every object response served is archived and its CID returned in the
// X-Response-CID header.
func NewHandler(node suiobj.Node, arch *archive.Archive) *Handler {
	return &Handler{node: node, archive: arch}
}

// Router builds the HTTP router with common middleware.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLog)

	r.Get("/healthz", h.Health)
	h.Routes(r)
	return r
}

// Routes mounts the v1 API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/objects/{id}", h.GetObject)
		r.Get("/objects/{id}/owner", h.GetOwner)
		r.Get("/owners/{owner}/objects", h.ListOwnedObjects)
	})
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
	RuleID  string `json:"rule_id,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, ruleID string) {
	writeJSON(w, status, map[string]errorBody{"error": {
		Message: message,
		Type:    http.StatusText(status),
		Code:    status,
		RuleID:  ruleID,
	}})
}
