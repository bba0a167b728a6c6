package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ValueKind tags the JSON type a card attribute arrived as
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	// KindRaw holds nested objects and arrays as compact JSON text
	KindRaw
)

// Value is one loosely-typed card attribute
type Value struct {
	kind ValueKind
	text string
}

func StringValue(s string) Value { return Value{kind: KindString, text: s} }

func NumberValue(n json.Number) Value { return Value{kind: KindNumber, text: n.String()} }

func BoolValue(b bool) Value { return Value{kind: KindBool, text: strconv.FormatBool(b)} }

func NullValue() Value { return Value{} }

// Kind returns the JSON type of the value
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value was JSON null
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value the way it should be sent to backends:
// strings unquoted, numbers as written, null as empty.
func (v Value) String() string { return v.text }

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty attribute value")
	}

	switch data[0] {
	case 'n':
		*v = NullValue()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*v = Value{kind: KindRaw, text: buf.String()}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.text)
	default:
		return []byte(v.text), nil
	}
}

// AttributeMap is the CardData object CCMS sends. Keys are caller-defined.
type AttributeMap map[string]Value

// ErrEmptyCardData is returned when CardData decodes to JSON null
var ErrEmptyCardData = errors.New("card data is empty")

// ParseAttributeMap decodes the JSON-encoded CardData string
func ParseAttributeMap(cardData string) (AttributeMap, error) {
	var attrs AttributeMap
	if err := json.Unmarshal([]byte(cardData), &attrs); err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, ErrEmptyCardData
	}
	return attrs, nil
}

// Keys returns the attribute names, for logging
func (m AttributeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
