package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/enterprisehub/portal/internal/core/domain"
)

// formValidator wraps go-playground/validator so Echo can call
// c.Validate(form). Failures come back as domain.ValidationErrors so the
// controllers can surface them inline next to the offending fields.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns a formValidator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (fv *formValidator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(domain.ValidationErrors, 0, len(ve))
			for _, fe := range ve {
				out = append(out, domain.FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: fieldMessage(fe),
				})
			}
			return out
		}
		return err
	}
	return nil
}

// fieldMessage converts a single validation failure into a human-readable
// message.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
