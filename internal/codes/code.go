package codes

import "fmt"

// Code is an immutable catalog entry pairing a numeric status with a symbolic
// name and optional defaults for the human message and structured data.
//
// Code values are safe to share between goroutines: Derive never mutates the
// receiver, it returns a specialised copy.
type Code struct {
	value   int
	name    string
	message string
	hasMsg  bool
	data    map[string]any
	subcode string
}

// Option overrides one field of a Code when constructing or deriving it.
type Option func(*Code)

// WithMessage sets the human readable message. An empty message leaves the
// current one in place.
func WithMessage(msg string) Option {
	return func(c *Code) {
		if msg == "" {
			return
		}
		c.message = msg
		c.hasMsg = true
	}
}

// WithData sets the structured data attached to the code. Empty maps are
// ignored so a derived code keeps its defaults.
func WithData(data map[string]any) Option {
	return func(c *Code) {
		if len(data) == 0 {
			return
		}
		c.data = data
	}
}

// WithSubcode sets the validation subcode, rendered as "case".
func WithSubcode(subcode string) Option {
	return func(c *Code) {
		if subcode == "" {
			return
		}
		c.subcode = subcode
	}
}

// New creates a Code. Registration happens separately through NewRegistry.
func New(value int, name string, opts ...Option) Code {
	c := Code{value: value, name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Derive returns a copy of c with the given overrides layered on top of its
// defaults. The receiver is left untouched.
func (c Code) Derive(opts ...Option) Code {
	derived := c
	for _, opt := range opts {
		opt(&derived)
	}
	return derived
}

// Value is the numeric code sent to clients as "code".
func (c Code) Value() int { return c.value }

// Name is the symbolic identifier sent to clients as "status".
func (c Code) Name() string { return c.name }

// Message returns the message and whether one is set at all.
func (c Code) Message() (string, bool) { return c.message, c.hasMsg }

// Data returns a copy of the attached data, or nil when none is set.
func (c Code) Data() map[string]any {
	if c.data == nil {
		return nil
	}
	out := make(map[string]any, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// HasData reports whether structured data is attached.
func (c Code) HasData() bool { return c.data != nil }

// Subcode returns the validation subcode or "".
func (c Code) Subcode() string { return c.subcode }

// IsZero reports whether c is the zero Code.
func (c Code) IsZero() bool { return c.name == "" && c.value == 0 }

// String implements fmt.Stringer.
func (c Code) String() string {
	return fmt.Sprintf("%s(%d)", c.name, c.value)
}
