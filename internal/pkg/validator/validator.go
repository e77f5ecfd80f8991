package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// FieldError is a single failed rule, named by the field's json name.
type FieldError struct {
	Field string
	Tag   string
}

// First returns the first failing field in struct declaration order, or nil.
func First(v interface{}) *FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &FieldError{Tag: err.Error()}
	}
	return &FieldError{Field: errs[0].Field(), Tag: errs[0].Tag()}
}
