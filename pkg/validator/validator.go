// Package validator valida structs de request con go-playground/validator.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describe una regla de validación incumplida.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Tag)
}

// ValidateStruct evalúa las tags `validate` del struct y devuelve los campos
// que fallaron (nil si todo está bien).
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Describe arma un mensaje legible con todos los campos fallidos.
func Describe(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
