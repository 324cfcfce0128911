package authoring

import (
	"encoding/json"
	"strings"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
)

// ValidateAndParseChoices turns the raw JSON text of a test's answer options
// into a list of at least two choices, preserving their order.
func ValidateAndParseChoices(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, app_errors.ErrEmptyChoices
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, app_errors.ErrMalformedChoices
	}
	list, ok := decoded.([]any)
	if !ok || len(list) < 2 {
		return nil, app_errors.ErrInsufficientChoices
	}

	choices := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, app_errors.ErrMalformedChoices
		}
		choices = append(choices, s)
	}
	return choices, nil
}
