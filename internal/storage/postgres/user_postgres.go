package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userByQuery = `
		SELECT u.id, u.username, u.password, u.email,
		       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
		  FROM users u
		  LEFT JOIN user_roles ur ON u.id = ur.user_id
		  LEFT JOIN roles r ON ur.role_id = r.id
		 WHERE %s
		 GROUP BY u.id
	`

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.userBy(ctx, fmt.Sprintf(userByQuery, "u.id = $1"), id)
}

func (r *UserPostgres) UserByName(ctx context.Context, name string) (*models.User, error) {
	return r.userBy(ctx, fmt.Sprintf(userByQuery, "u.username = $1"), name)
}

func (r *UserPostgres) userBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	queryUser := `INSERT INTO users (username, password, email) VALUES ($1, $2, $3) RETURNING id`
	err = tx.QueryRow(ctx, queryUser, user.Username, user.Password, user.Email).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, app_errors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	queryRole := `SELECT id FROM roles WHERE name = $1`
	insertUserRole := `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, roleName := range user.Roles {
		var roleID int
		if err = tx.QueryRow(ctx, queryRole, roleName).Scan(&roleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, app_errors.NewValidationError("role", "unknown role "+roleName)
			}
			return nil, err
		}
		if _, err = tx.Exec(ctx, insertUserRole, user.ID, roleID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &user, nil
}
