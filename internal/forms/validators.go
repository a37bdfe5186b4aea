package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// startTimeLayouts are tried in order when parsing a show's start time.
// Times without a zone are read as UTC.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized start time")
}

var registerOnce sync.Once

// rules are the custom tags used in the form structs' binding tags.
var rules = map[string]validator.Func{
	"notblank": validators.NotBlank,
	"phone": func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	},
	"usstate": func(fl validator.FieldLevel) bool {
		return IsState(fl.Field().String())
	},
	"genre": func(fl validator.FieldLevel) bool {
		return IsGenre(fl.Field().String())
	},
	"starttime": func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	},
}

// RegisterValidators installs the form rules on gin's validator engine.
// It is safe to call more than once and panics if a rule cannot be
// installed, since binding would otherwise panic on the unknown tag later.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("forms: gin validator engine is not go-playground/validator")
		}
		if err := register(v, rules); err != nil {
			panic(err)
		}
	})
}

func register(v *validator.Validate, fns map[string]validator.Func) error {
	v.RegisterTagNameFunc(formFieldName)
	var errs []error
	for tag, fn := range fns {
		if err := v.RegisterValidation(tag, fn); err != nil {
			errs = append(errs, fmt.Errorf("register %q: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

func formFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
	if name == "-" {
		return ""
	}
	return name
}
