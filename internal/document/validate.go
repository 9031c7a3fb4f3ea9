package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ivlev/animio/internal/curve"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their document name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"interpolation": func(s string) bool { return curve.Interpolation(s).Valid() },
		"easing":        func(s string) bool { return curve.Easing(s).Valid() },
		"handle_type":   func(s string) bool { return curve.HandleType(s).Valid() },
		"keyframe_type": func(s string) bool { return curve.KeyframeType(s).Valid() },
	}
	for tag, valid := range enums {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			panic(fmt.Errorf("register %q validation: %w", tag, err))
		}
	}
	return v
}

// validateRecord checks required fields and enum values of a decoded record.
func validateRecord(record any) error {
	validateOnce.Do(func() {
		validate = newValidator()
	})

	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return malformed(err, "")
	}
	out := &MalformedDocumentError{}
	for _, fe := range fieldErrs {
		out.Problems = append(out.Problems, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	// Drop the root struct name from "Document.curves[0].keyframes[1].time".
	path := fe.Namespace()
	if _, rest, found := strings.Cut(path, "."); found {
		path = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: missing required field", path)
	case "min":
		return fmt.Sprintf("%s: must be at least %s", path, fe.Param())
	case "len":
		return fmt.Sprintf("%s: expected %s items", path, fe.Param())
	case "interpolation", "easing", "handle_type", "keyframe_type":
		return fmt.Sprintf("%s: unknown %s %q", path, strings.ReplaceAll(fe.Tag(), "_", " "), fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q validation", path, fe.Tag())
	}
}
