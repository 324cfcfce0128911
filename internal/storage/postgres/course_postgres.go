package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const courseColumns = `id, title, slug, description, COALESCE(image_object_key, ''), created_at, author_id`

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO courses (
			id, title, slug, description, image_object_key, created_at, author_id
		) VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), $6, $7
		)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(
		ctx,
		query,
		course.ID,
		course.Title,
		course.Slug,
		course.Description,
		course.ImageObjectKey,
		course.CreatedAt,
		course.AuthorID,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "courses_slug_key") {
			return uuid.Nil, app_errors.ErrSlugTaken
		}
		return uuid.Nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return course.ID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return r.scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return r.scanCourse(r.db.QueryRow(ctx, query, slug))
}

func (r *CoursePostgres) scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.ImageObjectKey,
		&course.CreatedAt,
		&course.AuthorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *CoursePostgres) CountCourses(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return total, nil
}

func (r *CoursePostgres) ListCourses(ctx context.Context, limit, offset int) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		  FROM courses
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	return r.collectCourses(rows)
}

// CoursesByIDs keeps the order of ids; unknown ids are skipped.
func (r *CoursePostgres) CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + courseColumns + `
		  FROM courses
		 WHERE id = ANY($1::uuid[])
		 ORDER BY array_position($1::uuid[], id)
	`
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	rows, err := r.db.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses by ids: %w", err)
	}
	return r.collectCourses(rows)
}

func (r *CoursePostgres) collectCourses(rows pgx.Rows) ([]models.Course, error) {
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.ImageObjectKey, &c.CreatedAt, &c.AuthorID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CoursePostgres) SetImage(ctx context.Context, id uuid.UUID, objectKey string) error {
	const query = `UPDATE courses SET image_object_key = $2 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, objectKey)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes the course; lectures, comments and tests go with it
// through ON DELETE CASCADE.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}
