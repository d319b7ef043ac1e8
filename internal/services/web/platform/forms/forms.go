// Package forms validates submitted form structs and maps failures to
// localization keys per field.
package forms

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// PasswordPolicyKey is the message shown when a password fails the policy.
const PasswordPolicyKey = "auth.password.policy"

const minPasswordLength = 8

// Errors maps form field names to localization keys.
type Errors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks value's `validate` tags. It returns nil when the struct is
// valid.
func Validate(value any) Errors {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return Errors{"": "core.validation.invalid"}
	}
	out := make(Errors, len(invalid))
	for _, fieldErr := range invalid {
		if _, ok := out[fieldErr.Field()]; ok {
			continue
		}
		out[fieldErr.Field()] = messageKey(fieldErr.Tag())
	}
	return out
}

func messageKey(tag string) string {
	switch tag {
	case "required":
		return "core.validation.required"
	case "email":
		return "core.validation.email"
	case "max":
		return "core.validation.max"
	case "url", "http_url":
		return "core.validation.url"
	case "numeric":
		return "core.validation.numeric"
	case "password":
		return PasswordPolicyKey
	default:
		return "core.validation.invalid"
	}
}

// ValidPassword reports whether password has at least eight characters with
// a lowercase letter, an uppercase letter, a digit and a symbol. Length is
// counted in UTF-16 code units, as browsers count it, so a character outside
// the Basic Multilingual Plane counts twice. Line terminators are rejected.
func ValidPassword(password string) bool {
	units := 0
	var lower, upper, digit, symbol bool
	for _, r := range password {
		units += utf16.RuneLen(r)
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return false
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return units >= minPasswordLength && lower && upper && digit && symbol
}

// Value returns the trimmed form value for name.
func Value(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.PostFormValue(name))
}

// Secret returns the untrimmed form value for name. Passwords keep
// surrounding whitespace.
func Secret(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	return r.PostFormValue(name)
}
