package catalog

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, description, day_of_week, class_time, price
			FROM courses
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Course, 0, 16)
		for rows.Next() {
			var c Course
			if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DayOfWeek, &c.Time, &c.Price); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) GetCourse(ctx context.Context, id string) (Course, bool, error) {
	var c Course

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, description, day_of_week, class_time, price
			FROM courses
			WHERE id = $1
		`, id).Scan(&c.ID, &c.Name, &c.Description, &c.DayOfWeek, &c.Time, &c.Price)
	})

	if err == sql.ErrNoRows {
		return Course{}, false, nil
	}
	if err != nil {
		return Course{}, false, err
	}
	return c, true, nil
}

func (s *PostgresStore) ListClasses(ctx context.Context, courseID string) ([]Class, error) {
	var out []Class

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, course_id, name, class_date, teacher, comments
			FROM class_instances
			WHERE course_id = $1
			ORDER BY class_date ASC, id ASC
		`, courseID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Class, 0, 8)
		for rows.Next() {
			var c Class
			if err := rows.Scan(&c.ID, &c.CourseID, &c.Name, &c.Date, &c.Teacher, &c.Comments); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
