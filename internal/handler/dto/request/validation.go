package request

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/pkg/errs"
)

var registerOnce sync.Once

// RegisterValidators adds the custom tags used by request DTOs to gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errs.New("gin validator engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("date", validateDate)
	})
	return err
}

// date accepts YYYY-MM-DD or an RFC 3339 timestamp.
func validateDate(fl validator.FieldLevel) bool {
	_, err := stay.ParseDate(fl.Field().String())
	return err == nil
}
