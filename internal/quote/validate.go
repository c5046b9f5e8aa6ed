package quote

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected field, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "alnumspace", textOnly(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }))
	mustRegister(v, "alphaspace", textOnly(unicode.IsLetter))
	mustRegister(v, "printer_type", inSet(printerTypes))
	mustRegister(v, "nozzle", inSet(nozzleSizes))
	mustRegister(v, "support_type", inSet(supportTypes))
	mustRegister(v, "filament_type", inSet(filamentTypes))
	mustRegister(v, "filament_color", inSet(filamentColors))
	mustRegister(v, "maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	mustRegister(v, "filament_diameter", func(fl validator.FieldLevel) bool {
		_, ok := filamentDiameters[fl.Field().Float()]
		return ok
	})

	v.RegisterStructValidation(validateSupports, ModelData{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// textOnly accepts strings made of runes allowed by ok plus spaces.
func textOnly(ok func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.ReplaceAll(fl.Field().String(), " ", "")
		if s == "" {
			return false
		}
		for _, r := range s {
			if !ok(r) {
				return false
			}
		}
		return true
	}
}

func inSet(allowed map[string]struct{}) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}

// validateSupports enforces that support type and weight are present exactly when supports are used.
func validateSupports(sl validator.StructLevel) {
	m := sl.Current().Interface().(ModelData)
	if m.Supports {
		if m.SupportType == "" {
			sl.ReportError(m.SupportType, "support_type", "SupportType", "required_with_supports", "")
		}
		if m.SupportWeight <= 0 {
			sl.ReportError(m.SupportWeight, "support_weight", "SupportWeight", "required_with_supports", "")
		}
		return
	}
	if m.SupportType != "" {
		sl.ReportError(m.SupportType, "support_type", "SupportType", "excluded_without_supports", "")
	}
	if m.SupportWeight > 0 {
		sl.ReportError(m.SupportWeight, "support_weight", "SupportWeight", "excluded_without_supports", "")
	}
}

// Validate checks v against its validate tags and returns a *ValidationError
// describing every rejected field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "maxbytes":
		return "must be at most " + fe.Param() + " bytes"
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "must match " + fe.Param()
	case "alnumspace":
		return "may only contain letters, digits and spaces"
	case "alphaspace":
		return "may only contain letters and spaces"
	case "required_with_supports":
		return "is required when supports is true"
	case "excluded_without_supports":
		return "must be empty when supports is false"
	case "printer_type", "nozzle", "support_type", "filament_type", "filament_color", "filament_diameter":
		return fmt.Sprintf("%v is not an accepted value", fe.Value())
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
