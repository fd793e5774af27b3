package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"YogaStore/pkg/kit"
)

const maxCreateBody = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

type createReq struct {
	Customer   Customer `json:"customer"`
	Items      []Item   `json:"items"`
	TotalPrice float64  `json:"total_price"`
}

func (s *Server) CreateHandler() http.HandlerFunc { return s.create }
func (s *Server) GetHandler() http.HandlerFunc    { return s.get }
func (s *Server) ListHandler() http.HandlerFunc   { return s.list }

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	req, err := decodeCreateRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if msg := validateCreate(req); msg != "" {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	o := Order{
		ID:         "o_" + uuid.NewString(),
		UserID:     u.ID,
		Customer:   req.Customer,
		Items:      req.Items,
		TotalPrice: req.TotalPrice,
		OrderDate:  time.Now().UTC(),
	}

	if err := s.Store.Create(r.Context(), o); err != nil {
		if isTimeoutErr(err) {
			kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
			return
		}
		if s.Log != nil {
			s.Log.Error("store create order failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	o, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("store get order failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if o.UserID != u.ID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	orders, err := s.Store.ListByUser(r.Context(), u.ID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("store list orders failed", zap.Error(err), zap.String("user_id", u.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, orders)
}

func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (createReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createReq
	if err := dec.Decode(&req); err != nil {
		return createReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return createReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

func validateCreate(req createReq) string {
	if len(req.Items) == 0 {
		return "items required"
	}
	if strings.TrimSpace(req.Customer.Name) == "" ||
		strings.TrimSpace(req.Customer.PhoneNumber) == "" ||
		strings.TrimSpace(req.Customer.Email) == "" {
		return "customer name/phone/email required"
	}
	if req.TotalPrice < 0 {
		return "total must be >= 0"
	}

	seen := make(map[string]struct{}, len(req.Items))
	for _, it := range req.Items {
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

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
