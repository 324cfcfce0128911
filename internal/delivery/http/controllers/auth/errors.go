package auth

import (
	"errors"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
)

// loginError hides whether the username exists.
func loginError(err error) error {
	if errors.Is(err, app_errors.ErrUserNotFound) {
		return app_errors.ErrIncorrectPassword
	}
	return err
}

func refreshError(err error) error {
	if errors.Is(err, app_errors.ErrUserNotFound) {
		return app_errors.ErrInvalidToken
	}
	return err
}
