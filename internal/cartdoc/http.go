package cartdoc

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"YogaStore/pkg/kit"
)

const maxDocBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) GetHandler() http.HandlerFunc { return s.get }
func (s *Server) PutHandler() http.HandlerFunc { return s.put }

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	uid, ok := UserIDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	doc, found, err := s.Store.Get(r.Context(), uid)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get cart doc failed", zap.Error(err), zap.String("user_id", uid))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "no cart", nil)
		return
	}

	if doc.CartItems == nil {
		doc.CartItems = []Item{}
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	uid, ok := UserIDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := validateDoc(doc); err != "" {
		kit.WriteError(w, r, http.StatusBadRequest, err, nil)
		return
	}

	if err := s.Store.Put(r.Context(), uid, doc); err != nil {
		if s.Log != nil {
			s.Log.Error("put cart doc failed", zap.Error(err), zap.String("user_id", uid))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateDoc enforces the snapshot shape: unique non-empty item ids,
// quantities >= 1, prices non-negative when present. An empty item list is a
// valid document (it is how carts are emptied).
func validateDoc(doc Document) string {
	seen := make(map[string]struct{}, len(doc.CartItems))
	for _, it := range doc.CartItems {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return "item id required"
		}
		if _, dup := seen[id]; dup {
			return "duplicate item id"
		}
		seen[id] = struct{}{}

		if it.Quantity < 1 {
			return "quantity must be >= 1"
		}
		if it.Price != nil && *it.Price < 0 {
			return "price must be >= 0"
		}
	}
	return ""
}
