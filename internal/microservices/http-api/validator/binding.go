package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// RegisterBindings exposes the domain checks as gin binding tags:
// `slug`, `pastyear` and `score`.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	rules := map[string]playground.Func{
		"slug": func(fl playground.FieldLevel) bool {
			return ValidateSlug(fl.Field().String()) == nil
		},
		"pastyear": func(fl playground.FieldLevel) bool {
			return ValidateYear(int(fl.Field().Int())) == nil
		},
		"score": func(fl playground.FieldLevel) bool {
			return ValidateScore(int(fl.Field().Int())) == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}
