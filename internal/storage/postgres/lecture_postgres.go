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

const maxLectureOrderQuery = `SELECT COALESCE(MAX(lecture_order), 0) FROM lectures WHERE course_id = $1`

type LecturePostgres struct {
	db *pgxpool.Pool
}

func NewLecturePostgres(db *pgxpool.Pool) *LecturePostgres {
	return &LecturePostgres{db: db}
}

// CreateLecture inserts the lecture with order = next(current max order of
// the course). The owning course row stays locked until commit, so order
// assignment is serialized per course.
func (r *LecturePostgres) CreateLecture(ctx context.Context, lecture models.Lecture, next func(currentMax int) int) (*models.Lecture, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var courseID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, lecture.CourseID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to lock course: %w", err)
	}

	var max int
	if err := tx.QueryRow(ctx, maxLectureOrderQuery, lecture.CourseID).Scan(&max); err != nil {
		return nil, fmt.Errorf("failed to get max lecture order: %w", err)
	}
	order := next(max)
	lecture.Order = &order

	if lecture.ID == uuid.Nil {
		lecture.ID = uuid.New()
	}
	lecture.CreatedAt = time.Now().UTC()

	insertQuery := `
    INSERT INTO lectures (
        id, course_id, title, video_url, created_at, lecture_order
    ) VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err = tx.Exec(ctx, insertQuery,
		lecture.ID, lecture.CourseID, lecture.Title,
		lecture.VideoURL, lecture.CreatedAt, lecture.Order,
	)
	if err != nil {
		if isUniqueViolation(err, "lectures_course_order_key") {
			return nil, app_errors.ErrDuplicateLecture
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *LecturePostgres) GetMaxLectureOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, maxLectureOrderQuery, courseID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max lecture order: %w", err)
	}
	return max, nil
}

func (r *LecturePostgres) GetLectureByID(ctx context.Context, id uuid.UUID) (models.Lecture, error) {
	var lecture models.Lecture
	query := `
    SELECT id, course_id, title, video_url, created_at, lecture_order
      FROM lectures
     WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&lecture.ID, &lecture.CourseID, &lecture.Title,
		&lecture.VideoURL, &lecture.CreatedAt, &lecture.Order,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lecture{}, app_errors.ErrLectureNotFound
		}
		return models.Lecture{}, fmt.Errorf("failed to get lecture: %w", err)
	}
	return lecture, nil
}

func (r *LecturePostgres) LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	query := `
        SELECT id, course_id, title, video_url, created_at, lecture_order
          FROM lectures
         WHERE course_id = $1
         ORDER BY lecture_order NULLS LAST, created_at
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures by course: %w", err)
	}
	defer rows.Close()

	var lectures []models.Lecture
	for rows.Next() {
		var l models.Lecture
		if err := rows.Scan(
			&l.ID, &l.CourseID, &l.Title, &l.VideoURL, &l.CreatedAt, &l.Order,
		); err != nil {
			return nil, err
		}
		lectures = append(lectures, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lectures, nil
}

// DeleteLecture removes the lecture together with its comments and tests.
// Orders of the remaining lectures are left untouched.
func (r *LecturePostgres) DeleteLecture(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lectures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLectureNotFound
	}
	return nil
}
