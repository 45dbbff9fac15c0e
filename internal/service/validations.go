package service

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
	})
}

// validateStruct flattens validator output into one joined error so callers
// see every failed field at once.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		joined := []error{errorvalues.ErrValidation}
		for _, fieldErr := range validationError {
			joined = append(joined, fieldErr)
		}
		return errors.Join(joined...)
	}
	return errors.New("validation unexpected error: " + err.Error())
}
