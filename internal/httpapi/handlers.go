package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"xdao.co/suiobj/schema"
	"xdao.co/suiobj/suiobj"
)

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetObject handles GET /v1/objects/{id}.
//
// With ?owner=required the response must carry ownership and a Move object,
// as ParseWithOwner demands.
func (h *Handler) GetObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp, ok := h.fetch(w, r, id)
	if !ok {
		return
	}
	if r.URL.Query().Get("owner") == "required" {
		if _, err := suiobj.ParseWithOwner(resp, schema.Any()); err != nil {
			h.parseFailed(w, err)
			return
		}
	}
	h.archived(w, resp)
	status := http.StatusOK
	if resp.Data == nil && resp.Error != nil {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

type ownerBody struct {
	ObjectID string              `json:"objectId"`
	Kind     string              `json:"kind"`
	Owner    *suiobj.ObjectOwner `json:"owner"`
	Address  string              `json:"address,omitempty"`
	// HasAddress is false for shared and immutable objects.
	HasAddress bool `json:"hasAddress"`
}

// GetOwner handles GET /v1/objects/{id}/owner.
func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp, ok := h.fetch(w, r, id)
	if !ok {
		return
	}
	if resp.Data == nil {
		writeError(w, http.StatusNotFound, "object not found", "")
		return
	}
	if resp.Data.Owner == nil {
		writeError(w, http.StatusUnprocessableEntity, "response doesn't contain an owner", "SUIOBJ-PARSE-002")
		return
	}
	if err := resp.Data.Owner.Validate(); err != nil {
		h.parseFailed(w, err)
		return
	}
	addr, has := suiobj.OwnerAddress(*resp.Data.Owner)
	writeJSON(w, http.StatusOK, ownerBody{
		ObjectID:   resp.Data.ObjectID,
		Kind:       resp.Data.Owner.Kind.String(),
		Owner:      resp.Data.Owner,
		Address:    addr,
		HasAddress: has,
	})
}

// ListOwnedObjects handles GET /v1/owners/{owner}/objects?type=.
//
// The body is NDJSON, one node response per line, written as pages arrive.
// A failure after the first line is reported as a final {"error":...} line.
func (h *Handler) ListOwnedObjects(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	structType := r.URL.Query().Get("type")

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	started := false
	for resp, err := range suiobj.GetOwnedObjects(r.Context(), h.node, owner, structType) {
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			log.Warn().Err(err).Str("owner", owner).Msg("owned objects enumeration failed")
			if !started {
				writeError(w, http.StatusBadGateway, err.Error(), suiobj.RuleID(err))
				return
			}
			_ = enc.Encode(map[string]errorBody{"error": {
				Message: err.Error(),
				Type:    http.StatusText(http.StatusBadGateway),
				Code:    http.StatusBadGateway,
				RuleID:  suiobj.RuleID(err),
			}})
			return
		}
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := enc.Encode(resp); err != nil {
			// Client went away.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	if !started {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request, id string) (*suiobj.ObjectResponse, bool) {
	resp, err := suiobj.GetObject(r.Context(), h.node, id)
	if err != nil {
		log.Warn().Err(err).Str("object_id", id).Msg("get object failed")
		writeError(w, http.StatusBadGateway, err.Error(), suiobj.RuleID(err))
		return nil, false
	}
	if resp == nil {
		writeError(w, http.StatusBadGateway, "node returned no response", "")
		return nil, false
	}
	return resp, true
}

func (h *Handler) parseFailed(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, err.Error(), suiobj.RuleID(err))
}

func (h *Handler) archived(w http.ResponseWriter, resp *suiobj.ObjectResponse) {
	if h.archive == nil {
		return
	}
	id, err := h.archive.Put(resp)
	if err != nil {
		log.Warn().Err(err).Msg("archive response failed")
		return
	}
	w.Header().Set("X-Response-CID", id.String())
}
