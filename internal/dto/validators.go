package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs the binding validators referenced by
// request DTO tags. Must be called once before routes are registered.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("dgt0", validateDecimalGreaterThanZero)
	}
}

// dgt0 accepts only strictly positive decimal amounts. Zero and negative
// movements are rejected at the binding layer before the ledger sees them.
func validateDecimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.GreaterThan(decimal.Zero)
}
