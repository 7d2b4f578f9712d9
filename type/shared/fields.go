package shared

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderedFields is a string-keyed map that remembers insertion order.
// Certificates carry template-specific extra data (amount, grade, ...)
// in one of these; the order the issuer supplied the columns in is the
// order they render in.
type OrderedFields struct {
	keys   []string
	values map[string]string
}

func NewOrderedFields() *OrderedFields {
	return &OrderedFields{values: make(map[string]string)}
}

func (f *OrderedFields) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f *OrderedFields) Get(key string) (string, bool) {
	if f == nil || f.values == nil {
		return "", false
	}
	v, ok := f.values[key]
	return v, ok
}

func (f *OrderedFields) Keys() []string {
	if f == nil {
		return nil
	}
	return f.keys
}

func (f *OrderedFields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

func (f *OrderedFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *OrderedFields) UnmarshalJSON(data []byte) error {
	f.keys = nil
	f.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("extra fields must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid extra field key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		// Numbers and booleans are tolerated and kept as their string form.
		switch v := valTok.(type) {
		case string:
			f.Set(key, v)
		case json.Number:
			f.Set(key, v.String())
		case bool:
			f.Set(key, fmt.Sprintf("%t", v))
		case nil:
			f.Set(key, "")
		default:
			return fmt.Errorf("extra field %q has unsupported value type", key)
		}
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Value implements driver.Valuer so the map can live in a JSON column.
func (f *OrderedFields) Value() (driver.Value, error) {
	if f == nil || len(f.keys) == 0 {
		return []byte("{}"), nil
	}
	return f.MarshalJSON()
}

// Scan implements sql.Scanner.
func (f *OrderedFields) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		f.keys = nil
		f.values = make(map[string]string)
		return nil
	case []byte:
		return f.UnmarshalJSON(v)
	case string:
		return f.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into OrderedFields", src)
	}
}
