package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/miphreal/drf-tweaks/internal/casing"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v. Object keys are converted from
// camelCase to snake_case first, so v is declared with snake_case json tags.
// An empty body leaves v untouched; malformed JSON is a ParseError.
func DecodeJSON(r *http.Request, v interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return domain.NewParseError("").Wrap(err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return parseError(err)
	}
	normalized, err := json.Marshal(casing.Underscoreize(generic))
	if err != nil {
		return parseError(err)
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		return parseError(err)
	}
	return nil
}

func parseError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validation.FieldError(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".", codes.AliasInvalid)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.NewParseError("JSON parse error - " + syntaxErr.Error()).Wrap(err)
	}
	return domain.NewParseError("").Wrap(err)
}

// Bind decodes the body into v and validates it.
func Bind(r *http.Request, v interface{}, validator *validation.Validator) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return validator.Struct(v)
}
