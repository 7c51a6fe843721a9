package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("failed to register notblank validation: " + err.Error())
	}
	if err := v.RegisterValidation("bcryptmax", bcryptMax); err != nil {
		panic("failed to register bcryptmax validation: " + err.Error())
	}
	// В сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// MaxPasswordBytes предел bcrypt, считается в байтах, а не в символах
const MaxPasswordBytes = 72

func bcryptMax(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

// FieldError описывает одно нарушенное правило
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required", "notblank":
		return f.Field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f.Field, f.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f.Field, f.Param)
	case "bcryptmax":
		return fmt.Sprintf("%s must be at most %d bytes", f.Field, MaxPasswordBytes)
	case "alphanum":
		return f.Field + " must contain only letters and digits"
	default:
		return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
	}
}

// ValidationError возвращается, когда входные данные не прошли проверку
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return strings.Join(msgs, "; ")
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
