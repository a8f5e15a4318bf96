package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field is a user-editable draft field
type Field int

const (
	FieldDescription Field = iota + 1
	FieldPrice
	FieldContact
)

// MinLength returns the minimal accepted length of the field in characters
func (f Field) MinLength() int {
	switch f {
	case FieldDescription:
		return 10
	case FieldPrice:
		return 2
	case FieldContact:
		return 3
	default:
		return 1
	}
}

func (f Field) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldPrice:
		return "price"
	case FieldContact:
		return "contact"
	default:
		return "field"
	}
}

var validate = validator.New()

// ValidateField trims value and checks it against the field rules.
// The returned error wraps ErrValidation.
func ValidateField(f Field, value string) (string, error) {
	value = strings.TrimSpace(value)
	rule := fmt.Sprintf("required,min=%d", f.MinLength())
	if err := validate.Var(value, rule); err != nil {
		return "", fmt.Errorf("%w: %s must be at least %d characters", ErrValidation, f, f.MinLength())
	}
	return value, nil
}
