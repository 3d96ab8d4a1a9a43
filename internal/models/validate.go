package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Usar los nombres JSON en las rutas de error
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// check ejecuta el validador y convierte el primer fallo en ValidationError
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Invalid("", "invalid", err.Error())
	}

	fe := fieldErrs[0]
	return Invalid(fieldPath(fe.Namespace()), constraint(fe), describe(fe))
}

// fieldPath quita el nombre del tipo raíz: "Product.price.inc_vat" -> "price.inc_vat"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "http_url":
		return "must be a valid http(s) URL"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// DecodeError convierte un error de decodificación JSON en ValidationError
func DecodeError(err error) error {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Invalid(typeErr.Field, "type", "must be of type "+typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Invalid("", "json", "malformed JSON body")
	}

	if ve, ok := IsValidation(err); ok {
		return ve
	}

	return Invalid("", "json", err.Error())
}
