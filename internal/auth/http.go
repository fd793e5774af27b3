package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"YogaStore/pkg/kit"
)

const (
	maxBodyBytes   = 1 << 20
	minPasswordLen = 8
	accessTokenTTL = 15 * time.Minute
)

type Server struct {
	Log   *zap.Logger
	Store UserStore
	JWT   *TokenMaker
}

type registerReq struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req registerReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"email", req.Email},
		{"phone_number", req.PhoneNumber},
		{"password", req.Password},
		{"confirm_password", req.ConfirmPassword},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "missing required fields", map[string]any{"fields": missing})
		return
	}
	if len(req.Password) < minPasswordLen {
		kit.WriteError(w, r, http.StatusBadRequest, "password too short", map[string]any{"min_len": minPasswordLen})
		return
	}
	if req.Password != req.ConfirmPassword {
		kit.WriteError(w, r, http.StatusBadRequest, "passwords do not match", nil)
		return
	}

	u := User{
		ID:          "u_" + uuid.NewString(),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.Store.Create(r.Context(), u, req.Password); err != nil {
		if err == ErrEmailExists {
			kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
			return
		}
		s.Log.Error("create user failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Password = strings.TrimSpace(req.Password)

	if req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required", nil)
		return
	}

	u, err := s.Store.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	tok, err := s.JWT.New(u.ID, u.Email, accessTokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok, UserID: u.ID})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.bearerClaims(w, r)
	if !ok {
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": claims.UserID,
		"email":   claims.Email,
	})
}

type profileResp struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.bearerClaims(w, r)
	if !ok {
		return
	}

	u, found, err := s.Store.Get(r.Context(), claims.UserID)
	if err != nil {
		s.Log.Error("get profile failed", zap.Error(err), zap.String("user_id", claims.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "profile not found", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, profileResp{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	})
}

func (s *Server) bearerClaims(w http.ResponseWriter, r *http.Request) (Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return Claims{}, false
	}

	claims, err := s.JWT.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return Claims{}, false
	}

	return claims, true
}
