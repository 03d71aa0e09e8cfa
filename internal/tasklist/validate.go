package tasklist

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskman/internal/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type draftInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1000"`
}

// normalizeDraft trims the draft and checks the field limits.
// Duplicate titles are checked separately because they depend on the loaded
// collection.
func normalizeDraft(draft service.Task) (service.Task, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if draft.Status == "" {
		draft.Status = service.StatusPending
	}

	err := validate.Struct(draftInput{Title: draft.Title, Description: draft.Description})
	if err == nil {
		return draft, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return draft, &service.ValidationError{Field: "title", Message: err.Error()}
	}
	fe := fieldErrs[0]
	switch fe.Field() + "." + fe.Tag() {
	case "Title.required":
		return draft, &service.ValidationError{Field: "title", Message: MsgTitleRequired}
	case "Title.max":
		return draft, &service.ValidationError{Field: "title", Message: MsgTitleTooLong}
	default:
		return draft, &service.ValidationError{Field: "description", Message: "Task description cannot exceed 1000 characters"}
	}
}
