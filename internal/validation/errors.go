package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Errors is a tree of field failures. Messages hold tokens (or plain text)
// raised at this node; Fields hold nested nodes keyed by field name. List
// elements are keyed by their index.
type Errors struct {
	Messages []string
	Fields   map[string]*Errors
}

// Add appends a message at the dotted path. An empty path adds to the node
// itself.
func (e *Errors) Add(path, msg string) {
	node := e
	if path != "" {
		for _, part := range strings.Split(path, ".") {
			node = node.child(part)
		}
	}
	node.Messages = append(node.Messages, msg)
}

// Merge grafts other onto e under prefix.
func (e *Errors) Merge(prefix string, other *Errors) {
	if other == nil {
		return
	}
	for _, leaf := range other.Flatten() {
		for _, msg := range leaf.Messages {
			e.Add(joinPath(prefix, leaf.Field), msg)
		}
	}
}

// Empty reports whether the tree holds no message at all.
func (e *Errors) Empty() bool {
	if e == nil {
		return true
	}
	if len(e.Messages) > 0 {
		return false
	}
	for _, f := range e.Fields {
		if !f.Empty() {
			return false
		}
	}
	return true
}

// HasFields reports whether failures are keyed by field rather than raised
// against the whole input.
func (e *Errors) HasFields() bool {
	return e != nil && len(e.Fields) > 0
}

// FieldMessages is one flattened leaf of the tree.
type FieldMessages struct {
	Field    string
	Messages []string
}

// Flatten walks the tree depth first and returns one entry per node that
// carries messages. Paths are dotted and fully qualified; siblings are
// visited in key order, numeric keys numerically.
func (e *Errors) Flatten() []FieldMessages {
	var out []FieldMessages
	e.flatten("", &out)
	return out
}

func (e *Errors) flatten(prefix string, out *[]FieldMessages) {
	if e == nil {
		return
	}
	if len(e.Messages) > 0 {
		*out = append(*out, FieldMessages{Field: prefix, Messages: append([]string(nil), e.Messages...)})
	}
	for _, key := range sortedKeys(e.Fields) {
		e.Fields[key].flatten(joinPath(prefix, key), out)
	}
}

func (e *Errors) child(name string) *Errors {
	if e.Fields == nil {
		e.Fields = make(map[string]*Errors)
	}
	c, ok := e.Fields[name]
	if !ok {
		c = &Errors{}
		e.Fields[name] = c
	}
	return c
}

func sortedKeys(m map[string]*Errors) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	default:
		return prefix + "." + field
	}
}

// Error is returned by validators and handlers for rejected input. The
// renderer is the only consumer that unpacks its tokens.
type Error struct {
	Detail *Errors
}

// Error implements the error interface with a short, token free summary.
func (e *Error) Error() string {
	leaves := e.Detail.Flatten()
	if len(leaves) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		texts := make([]string, 0, len(leaf.Messages))
		for _, msg := range leaf.Messages {
			texts = append(texts, Decode(msg).Text)
		}
		if leaf.Field == "" {
			parts = append(parts, strings.Join(texts, "; "))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", leaf.Field, strings.Join(texts, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ErrorOption customises a token built by NewError or FieldError.
type ErrorOption func(*Message)

// WithCase attaches a subcode, rendered as "case".
func WithCase(c string) ErrorOption {
	return func(m *Message) { m.Case = c }
}

// WithData attaches extra data merged into the rendered "data" object.
func WithData(data map[string]any) ErrorOption {
	return func(m *Message) { m.Data = data }
}

// Token builds an encoded token for msg and alias.
func Token(msg, alias string, opts ...ErrorOption) string {
	m := Message{Text: msg, Code: alias}
	for _, opt := range opts {
		opt(&m)
	}
	return Encode(m)
}

// NewError raises a single failure against the whole input. With an empty
// alias the message travels as plain text.
func NewError(msg, alias string, opts ...ErrorOption) *Error {
	e := &Error{Detail: &Errors{}}
	e.Detail.Add("", tokenOrText(msg, alias, opts))
	return e
}

// FieldError raises a single failure for the field at the dotted path.
func FieldError(path, msg, alias string, opts ...ErrorOption) *Error {
	e := &Error{Detail: &Errors{}}
	e.Detail.Add(path, tokenOrText(msg, alias, opts))
	return e
}

func tokenOrText(msg, alias string, opts []ErrorOption) string {
	if alias == "" && len(opts) == 0 {
		return msg
	}
	return Token(msg, alias, opts...)
}

// AsError unwraps err into a validation error.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
