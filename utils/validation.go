package utils

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate = newValidator()

	hasDigit  = regexp.MustCompile(`[0-9]`)
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasSymbol = regexp.MustCompile(`[!@#$%^&]`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// notblank rejects empty strings behind a set pointer
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("active_flag", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "Yes" || s == "No"
	})
	return v
}

// StrongPassword requires a digit, an uppercase letter and one of !@#$%^&.
// Length is checked separately.
func StrongPassword(password string) bool {
	return hasDigit.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasSymbol.MatchString(password)
}

// Validate checks every field of s and reports the first violation.
func Validate(s any) error {
	return firstViolation(validate.Struct(s))
}

// ValidatePresent checks only the pointer fields of s that were supplied.
// Nil pointers are treated as absent and skipped.
func ValidatePresent(s any) error {
	absent := absentFields(s)
	err := validate.StructFiltered(s, func(ns []byte) bool {
		name := ns[bytes.LastIndexByte(ns, '.')+1:]
		_, skip := absent[string(name)]
		return skip
	})
	return firstViolation(err)
}

func absentFields(s any) map[string]struct{} {
	absent := map[string]struct{}{}
	v := reflect.Indirect(reflect.ValueOf(s))
	if v.Kind() != reflect.Struct {
		return absent
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Ptr && f.IsNil() {
			absent[t.Field(i).Name] = struct{}{}
		}
	}
	return absent
}

func firstViolation(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return InternalError(err)
	}
	return ValidationError("%s", violationMessage(errs[0]))
}

func violationMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required."
	case "email":
		return label + " must be a valid email address."
	case "alpha":
		return label + " must contain only letters."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "password":
		return label + " must contain at least one number, one symbol, and one capital letter."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "active_flag":
		return label + " must be Yes or No."
	case "url":
		return label + " must be a valid URL."
	}
	return fmt.Sprintf("%s is invalid.", label)
}

func fieldLabel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
