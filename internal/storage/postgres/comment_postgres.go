package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentPostgres struct {
	db *pgxpool.Pool
}

func NewCommentPostgres(db *pgxpool.Pool) *CommentPostgres {
	return &CommentPostgres{db: db}
}

func (r *CommentPostgres) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO comments (id, lecture_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		comment.ID, comment.LectureID, comment.AuthorID, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentPostgres) CountComments(ctx context.Context, lectureID uuid.UUID) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE lecture_id = $1`, lectureID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, nil
}

// CommentsByLecture returns comments newest first.
func (r *CommentPostgres) CommentsByLecture(ctx context.Context, lectureID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.lecture_id, c.author_id, u.username, c.text, c.created_at
		  FROM comments c
		  JOIN users u ON u.id = c.author_id
		 WHERE c.lecture_id = $1
		 ORDER BY c.created_at DESC, c.id
		 LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, lectureID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.LectureID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
