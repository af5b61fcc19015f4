package coerce

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a backend identifier that may arrive as a number or a string.
// The zero value encodes as JSON null.
type ID string

// ToID reads an identifier from a scalar. Anything else yields the zero ID.
func ToID(v any) ID {
	switch v.(type) {
	case string, json.Number, float64, float32, int, int64:
		s, _ := Text(v)
		return ID(s)
	default:
		return ""
	}
}

// FirstID returns the first non-null identifier among keys.
func FirstID(m Object, keys ...string) ID {
	return ToID(First(m, keys...))
}

// Valid reports whether the identifier is set.
func (id ID) Valid() bool {
	return id != ""
}

func (id ID) String() string {
	return string(id)
}

// MarshalJSON keeps integer ids numeric and everything else quoted.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts null, numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
