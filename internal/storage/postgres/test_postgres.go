package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestPostgres struct {
	db *pgxpool.Pool
}

func NewTestPostgres(db *pgxpool.Pool) *TestPostgres {
	return &TestPostgres{db: db}
}

func (r *TestPostgres) CreateTest(ctx context.Context, test models.Test) (*models.Test, error) {
	if test.ID == uuid.Nil {
		test.ID = uuid.New()
	}
	choices, err := json.Marshal(test.Choices)
	if err != nil {
		return nil, fmt.Errorf("marshal choices: %w", err)
	}
	query := `
		INSERT INTO tests (id, lecture_id, question, correct_answer, choices)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(ctx, query, test.ID, test.LectureID, test.Question, test.CorrectAnswer, choices)
	if err != nil {
		return nil, fmt.Errorf("failed to insert test: %w", err)
	}
	return &test, nil
}

func (r *TestPostgres) UpdateTest(ctx context.Context, test models.Test) (*models.Test, error) {
	choices, err := json.Marshal(test.Choices)
	if err != nil {
		return nil, fmt.Errorf("marshal choices: %w", err)
	}
	query := `
		UPDATE tests
		   SET question = $2, correct_answer = $3, choices = $4
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, test.ID, test.Question, test.CorrectAnswer, choices)
	if err != nil {
		return nil, fmt.Errorf("failed to update test: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, app_errors.ErrTestNotFound
	}
	return &test, nil
}

func (r *TestPostgres) TestByID(ctx context.Context, id uuid.UUID) (models.Test, error) {
	query := `
		SELECT id, lecture_id, question, correct_answer, choices
		  FROM tests
		 WHERE id = $1
	`
	test, err := scanTest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Test{}, app_errors.ErrTestNotFound
		}
		return models.Test{}, err
	}
	return test, nil
}

func (r *TestPostgres) TestsByLecture(ctx context.Context, lectureID uuid.UUID) ([]models.Test, error) {
	query := `
		SELECT id, lecture_id, question, correct_answer, choices
		  FROM tests
		 WHERE lecture_id = $1
		 ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, lectureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tests: %w", err)
	}
	defer rows.Close()

	var tests []models.Test
	for rows.Next() {
		test, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tests, nil
}

func scanTest(row pgx.Row) (models.Test, error) {
	var test models.Test
	var choices []byte
	if err := row.Scan(&test.ID, &test.LectureID, &test.Question, &test.CorrectAnswer, &choices); err != nil {
		return models.Test{}, err
	}
	if err := json.Unmarshal(choices, &test.Choices); err != nil {
		return models.Test{}, fmt.Errorf("decode choices of test %s: %w", test.ID, err)
	}
	return test, nil
}
