// Package validator wraps go-playground/validator for struct tag validation.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs using `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports fields by their json name.
func New() *Validator {
	return NewWithTagName("json")
}

// NewWithTagName creates a Validator that reports fields by the name found in
// the given struct tag, falling back to the Go field name.
func NewWithTagName(tag string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s based on its validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// FieldErrors returns the failed fields in err, or nil if err is not a
// validation error.
func FieldErrors(err error) validator.ValidationErrors {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return verrs
	}
	return nil
}
