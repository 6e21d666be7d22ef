// Package validation checks records against their struct-tag schema and
// reports every failing field at once.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"example.com/userapi/internal/domain"
)

const (
	msgRequired   = "This field is required."
	msgNotString  = "Not a valid string."
	msgNotInteger = "A valid integer is required."
)

// FieldErrors maps a field name (as it appears in JSON) to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		f[field] = append(f[field], msgs...)
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Fields returns the failing field names in sorted order.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for field := range f {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("notdigits", notDigits)
	return &Validator{v: v}
}

// Struct validates s and translates each failing field into a message.
// The result is empty when s is valid.
func (v *Validator) Struct(s any) FieldErrors {
	errs := FieldErrors{}
	err := v.v.Struct(s)
	if err == nil {
		return errs
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		errs.Add("non_field_errors", err.Error())
		return errs
	}
	for _, fe := range ves {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

// NewUser coerces a loosely typed payload into a candidate and validates it.
// Type errors win over rule errors for the same field.
func (v *Validator) NewUser(payload map[string]any) (domain.NewUser, FieldErrors) {
	in, errs := DecodeNewUser(payload)
	rules := v.Struct(in)
	for field := range errs {
		delete(rules, field)
	}
	errs.Merge(rules)
	return in, errs
}

// DecodeNewUser reads name, email, age and city out of payload. Strings are
// trimmed; an age may be a JSON number or a string of digits.
func DecodeNewUser(payload map[string]any) (domain.NewUser, FieldErrors) {
	errs := FieldErrors{}
	in := domain.NewUser{
		Name:  stringField(payload, "name", true, errs),
		Email: stringField(payload, "email", true, errs),
		Age:   intField(payload, "age", errs),
		City:  stringField(payload, "city", false, errs),
	}
	return in, errs
}

func stringField(payload map[string]any, key string, required bool, errs FieldErrors) string {
	raw, ok := payload[key]
	if !ok || raw == nil {
		if required {
			errs.Add(key, msgRequired)
		}
		return ""
	}
	switch val := raw.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		errs.Add(key, msgNotString)
		return ""
	}
}

func intField(payload map[string]any, key string, errs FieldErrors) int {
	raw, ok := payload[key]
	if !ok || raw == nil {
		errs.Add(key, msgRequired)
		return 0
	}
	switch val := raw.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return wholeNumber(val, key, errs)
	case json.Number:
		if n, err := strconv.Atoi(val.String()); err == nil {
			return n
		}
		f, err := val.Float64()
		if err != nil {
			errs.Add(key, msgNotInteger)
			return 0
		}
		return wholeNumber(f, key, errs)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			errs.Add(key, msgNotInteger)
			return 0
		}
		return n
	default:
		errs.Add(key, msgNotInteger)
		return 0
	}
}

// wholeNumber accepts a float with no fractional part, so 22.0 reads as 22.
func wholeNumber(f float64, key string, errs FieldErrors) int {
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		errs.Add(key, msgNotInteger)
		return 0
	}
	return int(f)
}

// notDigits rejects a string made only of Unicode decimal digits.
func notDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return "Enter a valid email address."
	case "notdigits":
		return "Must not consist of digits only."
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed the %q rule.", fe.Tag())
	}
}
