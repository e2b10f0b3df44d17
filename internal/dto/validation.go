package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var journalTypes = map[string]struct{}{
	"GENERAL":     {},
	"PURCHASE":    {},
	"LANDED_COST": {},
	"REVERSAL":    {},
}

// RegisterValidations installs custom binding validators on gin's validator
// engine. Call once at startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("journaltype", func(fl validator.FieldLevel) bool {
		_, known := journalTypes[fl.Field().String()]
		return known
	})
}
