// Package validation provides custom validators for the application
package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Initialize registers all custom validators
func Initialize() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("nospaces", validateNoSpaces); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("phone", validatePhone); err != nil {
			panic(err)
		}
	}
}

// validateNoSpaces checks if a string contains non-space characters
func validateNoSpaces(fl validator.FieldLevel) bool {
	return noSpacesValueValid(fl.Field().String())
}

func noSpacesValueValid(value string) bool {
	return strings.TrimSpace(value) != ""
}

// validatePhone accepts loosely formatted phone numbers: an optional leading
// "+" followed by digits, with spaces allowed anywhere.
func validatePhone(fl validator.FieldLevel) bool {
	return phoneValueValid(fl.Field().String())
}

func phoneValueValid(value string) bool {
	value = strings.ReplaceAll(value, " ", "")
	value = strings.TrimPrefix(value, "+")
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
