package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// year must be a non-zero integer.
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n != 0
	})

	return v
}

// messages maps "<field>.<tag>" (or "<field>" for any tag) to a message.
type messages map[string]string

func (m messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return field + " is invalid"
}

// validateStruct runs the validator over s and collects every violation
// into a ValidationError. Each field gets at most one message.
func validateStruct(s any, msgs messages) *ValidationError {
	verr := &ValidationError{}

	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("form", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := verr.FieldErrors[field]; seen {
			continue
		}
		verr.add(field, msgs.lookup(field, fe.Tag()))
	}
	return verr
}
