package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneRegexp = regexp.MustCompile(`^\d{10}$`)

func registerCustomRules(v *validator.Validate) error {
	// phone: 10 digit number, matching the registration contract.
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}
