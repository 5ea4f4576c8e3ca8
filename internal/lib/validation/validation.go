// Package validation owns the shared validator instance and the
// violation-collecting error the services report. Field rules never fail
// fast: every broken rule of a payload comes back in one Error.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// loose "10+ digits and separators" shape, not a real phone parser
var phoneRe = regexp.MustCompile(`^[0-9+\-\s().]{10,}$`)

// New returns a validator with the storefront's custom rules registered.
func New() *validator.Validate {
	v := validator.New()

	// never fails on nil pointers; omitempty handles optional fields
	_ = v.RegisterValidation("loosephone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	return v
}

// Error carries every violated rule of a payload.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Violations, ", ")
}

// Wrap translates a validator result into an *Error with human-readable
// violations. Non-validation errors pass through untouched.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, messageFor(fe))
	}

	return &Error{Violations: violations}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "email must be a valid address"
	case "Password":
		return "password must be at least 6 characters"
	case "Name":
		return "name must be at least 2 characters"
	case "Phone":
		return "phone number looks invalid"
	case "FarmName":
		return "farm name is required for producer accounts"
	case "Role":
		return "role must be one of buyer, producer, admin"
	case "Title":
		return "title is required"
	case "Price":
		return "price must be greater than zero"
	case "Image":
		return "image must be a valid URL"
	case "SellerID":
		return "seller id is required"
	default:
		return strings.ToLower(fe.Field()) + " is invalid"
	}
}
