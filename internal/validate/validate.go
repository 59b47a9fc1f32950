package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rushikulya/marketkit/internal/apperrs"
)

var v = validator.New()

func init() {
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return Phone10(fl.Field().String())
	})
}

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone10 reports whether s contains exactly 10 digits after stripping
// non-digit characters.
func Phone10(s string) bool {
	return len(Digits(s)) == 10
}

// Struct validates in and converts the first violation into a field-level
// validation error. The user-facing message comes from the field's vmsg tag,
// a comma-separated list of tag=message pairs ("*" matches any tag); required
// violations without a vmsg entry fall back to "All fields are required".
func Struct(in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrs.Validation("All fields are required")
	}
	return apperrs.Validation(messageFor(in, verrs[0]))
}

func messageFor(in interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(in)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := lookupMessage(f.Tag.Get("vmsg"), fe.Tag()); msg != "" {
			return msg
		}
	}
	return "All fields are required"
}

func lookupMessage(spec, tag string) string {
	if spec == "" {
		return ""
	}
	var wildcard string
	for _, pair := range strings.Split(spec, ",") {
		k, msg, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if k == tag {
			return msg
		}
		if k == "*" {
			wildcard = msg
		}
	}
	return wildcard
}
