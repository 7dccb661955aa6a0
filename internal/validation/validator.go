package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/miphreal/drf-tweaks/internal/codes"
)

// Rule describes how failures of a validator tag are reported.
// Message may reference the tag parameter with %s.
type Rule struct {
	Alias   string
	Case    string
	Message string
}

// Validator wraps validator.Validate and reports failures as an Error whose
// leaves are tokens. The wrapped instance is private to the Validator, so
// rules registered here never leak into other users of the library.
type Validator struct {
	validate *validator.Validate

	mu    sync.RWMutex
	rules map[string]Rule
}

// New creates a Validator reporting json field names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v, rules: make(map[string]Rule)}
}

// RegisterRule adds a custom validation tag with its reporting rule.
func (v *Validator) RegisterRule(tag string, fn validator.Func, rule Rule) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register rule %q: %w", tag, err)
	}
	v.mu.Lock()
	v.rules[tag] = rule
	v.mu.Unlock()
	return nil
}

// Struct validates s. It returns nil, a *Error, or a wrapped error when s
// cannot be validated at all.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		// Types may carry their own check in addition to tags.
		if sv, ok := s.(interface{ Validate() error }); ok {
			return sv.Validate()
		}
		return nil
	}
	return v.translate("", err)
}

// Var validates a single value against tag and reports failures under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	return v.translate(field, err)
}

func (v *Validator) translate(field string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Detail: &Errors{}}
	for _, fe := range fieldErrs {
		path := field
		if path == "" {
			path = fieldPath(fe.Namespace())
		}
		out.Detail.Add(path, v.token(fe))
	}
	return out
}

func (v *Validator) token(fe validator.FieldError) string {
	v.mu.RLock()
	rule, ok := v.rules[fe.Tag()]
	v.mu.RUnlock()
	if !ok {
		rule = builtinRule(fe)
	}

	msg := rule.Message
	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, fe.Param())
	}
	return Encode(Message{Text: msg, Code: rule.Alias, Case: rule.Case})
}

// fieldPath turns "Login.items[0].name" into "items.0.name".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	rest = strings.ReplaceAll(rest, "]", "")
	return rest
}

func sized(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return true
	default:
		return false
	}
}

func builtinRule(fe validator.FieldError) Rule {
	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return Rule{Alias: codes.AliasRequired, Message: "This field is required."}
	case "min", "gte", "gt":
		if sized(fe.Kind()) {
			return Rule{Alias: codes.AliasMinLength, Message: "Ensure this field has at least %s characters."}
		}
		return Rule{Alias: codes.AliasMinValue, Message: "Ensure this value is greater than or equal to %s."}
	case "max", "lte", "lt":
		if sized(fe.Kind()) {
			return Rule{Alias: codes.AliasMaxLength, Message: "Ensure this field has no more than %s characters."}
		}
		return Rule{Alias: codes.AliasMaxValue, Message: "Ensure this value is less than or equal to %s."}
	case "oneof":
		return Rule{Alias: codes.AliasInvalidChoice, Message: fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))}
	case "email":
		return Rule{Alias: codes.AliasInvalid, Message: "Enter a valid email address."}
	case "url", "http_url":
		return Rule{Alias: codes.AliasInvalid, Message: "Enter a valid URL."}
	case "uuid", "uuid4":
		return Rule{Alias: codes.AliasInvalid, Message: fmt.Sprintf("%q is not a valid UUID.", fmt.Sprint(fe.Value()))}
	case "datetime":
		return Rule{Alias: codes.AliasInvalid, Message: "Datetime has wrong format."}
	case "number", "numeric":
		return Rule{Alias: codes.AliasInvalid, Message: "A valid integer is required."}
	default:
		return Rule{Alias: codes.AliasInvalid, Message: "Enter a valid value."}
	}
}
