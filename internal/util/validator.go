package util

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"
)

// NewValidator builds the request validator. The null wrapper types are
// registered as custom types so rules like `oneof` and `max` apply to the
// wrapped value instead of the wrapper struct.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(unwrapNullInt, null.Int{})
	validate.RegisterCustomTypeFunc(unwrapNullString, null.String{})

	return validate
}

func unwrapNullInt(field reflect.Value) interface{} {
	if v, ok := field.Interface().(null.Int); ok {
		return v.Int64
	}

	return nil
}

func unwrapNullString(field reflect.Value) interface{} {
	if v, ok := field.Interface().(null.String); ok {
		return v.String
	}

	return nil
}
