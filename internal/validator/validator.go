package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Row letter A-Z followed by a column number without leading zeros. Whether a
// syntactically valid code fits a particular showtime's grid is decided by the
// seat map, not here.
var seatCodeRgx = regexp.MustCompile(`^[A-Z][1-9][0-9]?$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_code", validateSeatCode)

	return validator
}

func validateSeatCode(fl validator.FieldLevel) bool {
	return seatCodeRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must contain at least %s element(s)", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", err.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", err.Param())
	case "url":
		return "must be a valid URL"
	case "seat_code":
		return "must be a seat code like A1 or B12"
	default:
		return "is invalid"
	}
}
