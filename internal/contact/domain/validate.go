package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field to a message fit for showing next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			return name
		})
	})
	return validate
}

// Validate checks f and returns FieldErrors when anything is wrong.
// Call Normalize first.
func (f *Form) Validate() error {
	err := formValidator().Struct(f)
	fe := FieldErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, v := range verrs {
			if _, seen := fe[v.Field()]; !seen {
				fe[v.Field()] = messageFor(v)
			}
		}
	} else if err != nil {
		return err
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

func messageFor(v validator.FieldError) string {
	switch v.Field() + "." + v.Tag() {
	case "name.required":
		return "Name is required"
	case "email.required":
		return "Email is required"
	case "email.email":
		return "Please enter a valid email address"
	case "message.required":
		return "Message is required"
	}
	if v.Tag() == "max" {
		return fmt.Sprintf("%s must be %s characters or fewer", label(v.Field()), v.Param())
	}
	return fmt.Sprintf("%s is invalid", label(v.Field()))
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
