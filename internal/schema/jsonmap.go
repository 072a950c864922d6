package schema

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONMap stores a JSON object in a TEXT column.
// Reads are parse-or-default: malformed or NULL content scans as an empty map.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = make(JSONMap)
		return nil
	}

	if len(bytes) == 0 {
		*m = make(JSONMap)
		return nil
	}
	if err := json.Unmarshal(bytes, m); err != nil {
		*m = make(JSONMap)
	}
	return nil
}
