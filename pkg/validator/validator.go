package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("nonneg_decimal", validateNonNegativeDecimal)
	v.RegisterValidation("money", validateMoney)
	v.RegisterValidation("bcrypt_len", validateBcryptLength)
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "url":
				errors[field] = field + " must be a valid URL"
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "nonneg_decimal":
				errors[field] = field + " must not be negative"
			case "money":
				errors[field] = field + " must have at most 2 decimal places and be below 100000000"
			case "bcrypt_len":
				errors[field] = field + " must be at most 72 bytes"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return !v.IsNegative()
	case *decimal.Decimal:
		return v == nil || !v.IsNegative()
	}
	return false
}

// Money columns are numeric(10,2).
var maxMoney = decimal.New(1, 8)

func validateMoney(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return isMoney(v)
	case *decimal.Decimal:
		return v == nil || isMoney(*v)
	}
	return false
}

func isMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}

// bcrypt only hashes the first 72 bytes of a password.
func validateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= 72
}
