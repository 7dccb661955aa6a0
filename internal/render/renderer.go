// Package render turns handler results into the response envelope:
//
//	{"code": 0, "status": "OK", "msg": null, "data": ..., "meta": ...}
//
// Errors are classified against the code registry. Validation failures are
// flattened into sub-errors, and unclassified failures become InternalError
// with their details kept out of the response.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/miphreal/drf-tweaks/internal/casing"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/pagination"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/redact"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// Renderer builds response bodies. It is safe for concurrent use.
type Renderer struct {
	registry *codes.Registry
	debug    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDebug exposes the error text of unclassified failures in "msg".
func WithDebug(debug bool) Option {
	return func(r *Renderer) { r.debug = debug }
}

// New creates a Renderer over registry. A nil registry means codes.Default().
func New(registry *codes.Registry, opts ...Option) *Renderer {
	if registry == nil {
		registry = codes.Default()
	}
	r := &Renderer{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transform renders payload into the final, camelized body. An error payload
// is classified; a codes.Code is rendered as that code; anything else is
// success data under OK.
func (r *Renderer) Transform(ctx context.Context, payload any, extra Extra) (any, error) {
	body, err := casing.CamelizeJSON(r.envelope(ctx, payload, extra))
	if err != nil {
		return nil, fmt.Errorf("render envelope: %w", err)
	}
	return body, nil
}

func (r *Renderer) envelope(ctx context.Context, payload any, extra Extra) map[string]any {
	switch p := payload.(type) {
	case error:
		return r.errorEnvelope(ctx, p, extra)
	case codes.Code:
		var data any
		if p.HasData() {
			data = p.Data()
		}
		return envelope(p, data, extra)
	default:
		return envelope(codes.OK, payload, extra)
	}
}

func (r *Renderer) errorEnvelope(ctx context.Context, err error, extra Extra) map[string]any {
	var pe *pagination.ParamError
	if errors.As(err, &pe) {
		err = pagination.AsValidationError(err)
	}

	if ve, ok := validation.AsError(err); ok {
		return r.validationEnvelope(ctx, ve, extra)
	}

	if de, ok := domain.AsError(err); ok {
		c := r.registry.ByExceptionName(de.Name)
		if _, has := c.Message(); !has {
			c = c.Derive(codes.WithMessage(de.Detail))
		}
		var data any
		if c.HasData() {
			data = c.Data()
		}
		return envelope(c, data, extra)
	}

	log := logger.FromContext(ctx)
	log.ErrorContext(ctx, "unhandled error rendered as internal error",
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)))

	c := codes.InternalError
	if r.debug {
		c = c.Derive(codes.WithMessage(err.Error()))
	}
	return envelope(c, nil, extra)
}

func (r *Renderer) validationEnvelope(ctx context.Context, ve *validation.Error, extra Extra) map[string]any {
	var subErrors []any
	for _, leaf := range ve.Detail.Flatten() {
		for _, token := range leaf.Messages {
			m := validation.Decode(token)
			subErrors = append(subErrors, subError(r.registry.ByValidationAlias(m.Code), leaf.Field, m))
		}
	}

	switch len(subErrors) {
	case 0:
		log := logger.FromContext(ctx)
		log.ErrorContext(ctx, "validation error without messages")
		return envelope(codes.ValidationError, nil, extra)
	case 1:
		return envelope(codes.ValidationError, subErrors[0], extra)
	default:
		return envelope(codes.MultipleErrors, subErrors, extra)
	}
}
