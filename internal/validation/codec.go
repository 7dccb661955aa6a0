package validation

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// Token layout, version 1:
//
//	vt1.<message>.<alias>.<case>.<data>
//
// Every segment is unpadded base64url so the token is plain printable text.
// The data segment is the base64url JSON object, or "~" when no data is set.
// An empty case segment means no case.
const (
	tokenPrefix = "vt1."
	noData      = "~"
	segments    = 4
)

var tokenEncoding = base64.RawURLEncoding

// Message is the decoded content of a validation token.
type Message struct {
	Text string
	// Code is the validation alias, e.g. "required". Empty for plain text.
	Code string
	Case string
	// Data holds JSON values. Integral numbers decode as int, other numbers
	// as float64.
	Data map[string]any
}

// Encode packs m into an opaque token. Data must be JSON encodable; when it is
// not, the data is dropped so the message and alias still travel.
func Encode(m Message) string {
	var b strings.Builder
	b.WriteString(tokenPrefix)
	b.WriteString(tokenEncoding.EncodeToString([]byte(m.Text)))
	b.WriteByte('.')
	b.WriteString(tokenEncoding.EncodeToString([]byte(m.Code)))
	b.WriteByte('.')
	b.WriteString(tokenEncoding.EncodeToString([]byte(m.Case)))
	b.WriteByte('.')

	data := noData
	if m.Data != nil {
		if raw, err := json.Marshal(m.Data); err == nil {
			data = tokenEncoding.EncodeToString(raw)
		}
	}
	b.WriteString(data)
	return b.String()
}

// Decode unpacks a token. It never fails: anything that is not a well formed
// token comes back as a Message carrying the raw text only.
func Decode(token string) Message {
	m, ok := decode(token)
	if !ok {
		return Message{Text: token}
	}
	return m
}

// IsToken reports whether s decodes as a token.
func IsToken(s string) bool {
	_, ok := decode(s)
	return ok
}

func decode(token string) (Message, bool) {
	body, found := strings.CutPrefix(token, tokenPrefix)
	if !found {
		return Message{}, false
	}
	parts := strings.Split(body, ".")
	if len(parts) != segments {
		return Message{}, false
	}

	text, err := tokenEncoding.DecodeString(parts[0])
	if err != nil {
		return Message{}, false
	}
	code, err := tokenEncoding.DecodeString(parts[1])
	if err != nil {
		return Message{}, false
	}
	subcode, err := tokenEncoding.DecodeString(parts[2])
	if err != nil {
		return Message{}, false
	}

	m := Message{Text: string(text), Code: string(code), Case: string(subcode)}
	if parts[3] != noData {
		raw, err := tokenEncoding.DecodeString(parts[3])
		if err != nil {
			return Message{}, false
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&m.Data); err != nil || m.Data == nil {
			return Message{}, false
		}
		m.Data = restoreNumbers(m.Data).(map[string]any)
	}
	return m, true
}

func restoreNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = restoreNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = restoreNumbers(item)
		}
		return x
	case json.Number:
		if n, err := strconv.ParseInt(x.String(), 10, 0); err == nil {
			return int(n)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}
