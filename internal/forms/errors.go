package forms

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Explain turns a binding error into per-field messages.
func Explain(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "The submitted form could not be read."}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, dup := out[field]; !dup {
			out[field] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "phone":
		return "Use the format 123-456-7890."
	case "url":
		return "Enter a full URL, including http:// or https://."
	case "usstate":
		return "Choose a state from the list."
	case "genre":
		return "Choose genres from the list."
	case "min":
		return "Choose at least one."
	case "max":
		return "This value is too long."
	case "uuid":
		return "Enter a valid ID."
	case "starttime":
		return "Use the format YYYY-MM-DD HH:MM."
	case "oneof":
		return "Invalid choice."
	}
	return "Invalid value."
}
