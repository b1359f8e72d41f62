package handlers

import (
	"errors"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	romanianPhone = regexp.MustCompile(`^(\+40|0)(7\d{8}|2\d{8}|3\d{8})$`)

	bindingOnce sync.Once
	bindingErr  error
)

// ConfigureBinding makes JSON binding reject unknown fields and registers
// the custom validation tags used by the request inputs:
//
//	rophone  Romanian phone number, +40 or 0 prefix
func ConfigureBinding() error {
	bindingOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			bindingErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		bindingErr = v.RegisterValidation("rophone", func(fl validator.FieldLevel) bool {
			return romanianPhone.MatchString(fl.Field().String())
		})
	})
	return bindingErr
}
