package render

import (
	"github.com/miphreal/drf-tweaks/internal/casing"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/validation"
)

// Envelope keys. Every response body is an object with at least code,
// status, msg and data.
const (
	KeyCode   = "code"
	KeyStatus = "status"
	KeyMsg    = "msg"
	KeyData   = "data"
	KeyMeta   = "meta"
	KeyCase   = "case"
	KeyField  = "field"
)

// Extra carries per-response overrides applied on top of the classified code.
type Extra struct {
	// Meta is attached as "meta" when non-nil.
	Meta any
	// StatusText replaces the code name in "status".
	StatusText string
	// Message replaces "msg".
	Message string
}

// serializeCode renders the code, status and msg keys of c, plus data when the
// code carries any and case when it has a subcode.
func serializeCode(c codes.Code) map[string]any {
	out := map[string]any{
		KeyCode:   c.Value(),
		KeyStatus: c.Name(),
		KeyMsg:    nil,
	}
	if msg, ok := c.Message(); ok {
		out[KeyMsg] = msg
	}
	if c.HasData() {
		out[KeyData] = c.Data()
	}
	if sc := c.Subcode(); sc != "" {
		out[KeyCase] = sc
	}
	return out
}

// envelope builds the top level object. data always wins over the code's own
// data, even when nil.
func envelope(c codes.Code, data any, extra Extra) map[string]any {
	out := serializeCode(c)
	out[KeyData] = data
	if extra.Meta != nil {
		out[KeyMeta] = extra.Meta
	}
	if extra.StatusText != "" {
		out[KeyStatus] = extra.StatusText
	}
	if extra.Message != "" {
		out[KeyMsg] = extra.Message
	}
	return out
}

// subError renders one validation failure. Field failures get
// data.field with the camelized dotted path; custom data from the token is
// merged over it.
func subError(c codes.Code, field string, m validation.Message) map[string]any {
	out := map[string]any{
		KeyCode:   c.Value(),
		KeyStatus: c.Name(),
		KeyMsg:    m.Text,
	}

	var data map[string]any
	switch {
	case field != "":
		data = map[string]any{KeyField: casing.CamelKey(field)}
	case c.HasData():
		data = c.Data()
	}
	if len(m.Data) > 0 {
		if data == nil {
			data = make(map[string]any, len(m.Data))
		}
		for k, v := range m.Data {
			data[k] = v
		}
	}
	if data != nil {
		out[KeyData] = data
	}

	if m.Case != "" {
		out[KeyCase] = m.Case
	}
	return out
}
