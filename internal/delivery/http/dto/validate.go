package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on a bound request payload.
func Validate(v any) error {
	return validate.Struct(v)
}
