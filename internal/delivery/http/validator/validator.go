// Package validator wires go-playground/validator into echo. Violations are
// collected per field instead of stopping at the first failure, so clients
// get every problem in one response.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	domainerrors "addrbook/internal/domain/errors"
)

var (
	// personNamePattern allows letters, spaces and the characters ' - , .
	personNamePattern = regexp.MustCompile(`^[a-zA-Z '\-,.]+$`)

	// mobilePattern allows an optional leading + followed by 8 to 15 digits.
	mobilePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

	passwordLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigitPattern  = regexp.MustCompile(`[0-9]`)
)

// RequestValidator implements echo.Validator on top of validator/v10.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds the validator with the custom rules used across request DTOs.
func New() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Registration errors can only come from invalid tags, which would be
	// caught by any test touching the validator, so they are ignored here.
	_ = validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("passwordcomplexity", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()

		return passwordLetterPattern.MatchString(value) && passwordDigitPattern.MatchString(value)
	})

	return &RequestValidator{validate: validate}
}

// Validate checks the struct and converts violations into the application's
// ValidationError so the error handler can render them.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only occurs for non-struct input.
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	appErr := domainerrors.NewValidationError()
	for _, fieldErr := range validationErrs {
		appErr.Add(fieldErr.Field(), messageFor(fieldErr))
	}

	return appErr
}

// messageFor maps a failed rule to a user-facing message.
func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "eqfield":
		return "must match " + fieldErr.Param()
	case "personname":
		return "only allows letters, spaces and the characters ' - , ."
	case "mobile":
		return "must be 8 to 15 digits with an optional leading +"
	case "passwordcomplexity":
		return "must contain at least one letter and one number"
	default:
		return "is invalid"
	}
}
