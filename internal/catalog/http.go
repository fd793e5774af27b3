package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"YogaStore/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/courses", s.listCourses)
	r.Get("/courses/{id}", s.getCourse)
	r.Get("/courses/{id}/classes", s.listClasses)

	return r
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Store.ListCourses(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list courses failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, courses)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok, err := s.Store.GetCourse(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get course failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) listClasses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// A listing for an unknown course must 404, not return an empty list.
	if _, ok, err := s.Store.GetCourse(r.Context(), id); err != nil {
		if s.Log != nil {
			s.Log.Error("get course failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	} else if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	classes, err := s.Store.ListClasses(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list classes failed", zap.Error(err), zap.String("course_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, classes)
}
