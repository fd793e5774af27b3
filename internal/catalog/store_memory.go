package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu      sync.RWMutex
	courses map[string]Course
	classes map[string][]Class // keyed by course id
}

// NewMemStore seeds a small catalog for local runs and tests.
func NewMemStore() *MemStore {
	s := &MemStore{
		courses: map[string]Course{},
		classes: map[string][]Class{},
	}

	s.courses["c1"] = Course{
		ID: "c1", Name: "Flow Yoga", Description: "Dynamic vinyasa flow",
		DayOfWeek: "Monday", Time: "10:00", Price: 10,
	}
	s.courses["c2"] = Course{
		ID: "c2", Name: "Aerial Yoga", Description: "Hammock-supported practice",
		DayOfWeek: "Thursday", Time: "18:30", Price: 15,
	}

	s.classes["c1"] = []Class{
		{ID: "k1", CourseID: "c1", Name: "Flow Yoga", Date: "2025-01-06", Teacher: "May Tran"},
		{ID: "k2", CourseID: "c1", Name: "Flow Yoga", Date: "2025-01-13", Teacher: "May Tran", Comments: "Bring a towel"},
	}
	s.classes["c2"] = []Class{
		{ID: "k3", CourseID: "c2", Name: "Aerial Yoga", Date: "2025-01-09", Teacher: "Linh Vu"},
	}

	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListCourses(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetCourse(ctx context.Context, id string) (Course, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	return c, ok, nil
}

func (s *MemStore) ListClasses(ctx context.Context, courseID string) ([]Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Class, len(s.classes[courseID]))
	copy(out, s.classes[courseID])
	return out, nil
}
