package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// moneyValidation accepts integer amounts in the smallest currency unit.
// Negative amounts are rejected at the binding layer so service code only ever
// sees non-negative money.
func moneyValidation(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= 0
}

// RegisterValidations installs custom binding validations on gin's validator
// engine. Call once during startup, before the router handles requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("money", moneyValidation)
}
