package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormError lists every field that failed validation, in declaration order.
type FormError struct {
	Fields   []string
	messages []string
}

func (e *FormError) Error() string {
	return strings.Join(e.messages, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(form).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Field failures come back
// as a *FormError.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fe := &FormError{
		Fields:   make([]string, 0, len(ve)),
		messages: make([]string, 0, len(ve)),
	}
	for _, f := range ve {
		fe.Fields = append(fe.Fields, strings.ToLower(f.Field()))
		fe.messages = append(fe.messages, fieldError(f))
	}
	return fe
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
