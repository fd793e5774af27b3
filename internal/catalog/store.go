package catalog

import "context"

// Course is a recurring yoga course. Price is per class instance, in GBP.
type Course struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DayOfWeek   string  `json:"day_of_week"`
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
}

// Class is one dated instance of a course. It carries no price; clients copy
// the course price when they put a class in a cart.
type Class struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Teacher  string `json:"teacher"`
	Comments string `json:"comments,omitempty"`
}

type Store interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (Course, bool, error)
	ListClasses(ctx context.Context, courseID string) ([]Class, error)
	Ping(ctx context.Context) error
}
