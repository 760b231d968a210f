package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if val, ok := field.Interface().(decimal.Decimal); ok {
			return val.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		parsed, err := decimal.NewFromString(fl.Field().String())
		return err == nil && parsed.IsPositive()
	})
	_ = v.RegisterValidation("balance", func(fl validator.FieldLevel) bool {
		parsed, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !parsed.IsNegative()
	})
	_ = v.RegisterValidation("scale2", func(fl validator.FieldLevel) bool {
		parsed, err := decimal.NewFromString(fl.Field().String())
		return err == nil && parsed.Equal(parsed.Truncate(2))
	})

	return v
}

// validateStruct runs the tag rules on req and flattens failures into one
// error of the form "field rule; field rule".
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "amount":
		return field + " must be greater than zero"
	case "balance":
		return field + " cannot be negative"
	case "scale2":
		return field + " must have at most 2 decimal places"
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "datetime":
		return field + " must be in YYYY-MM-DD format"
	case "numeric", "len":
		return field + " must be exactly 10 digits"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
