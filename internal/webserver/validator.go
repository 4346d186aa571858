package webserver

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator backs echo's c.Validate with go-playground/validator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
