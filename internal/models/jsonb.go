// Package models - JSON column types shared by every SQL dialect
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB is an opaque JSON object column (rules, properties, validation, ...).
// It is stored as JSON text on every dialect.
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// StringArray is a list of strings stored as a JSON array
type StringArray []string

// Value implements the driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (s *StringArray) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*s = make(StringArray, 0)
		return nil
	}

	// Try JSON array first
	var result []string
	if err := json.Unmarshal(raw, &result); err != nil {
		// Rows written by hand as a PostgreSQL array literal: {val1,val2,val3}
		str := string(raw)
		if len(str) >= 2 && str[0] == '{' && str[len(str)-1] == '}' {
			str = str[1 : len(str)-1]
			if str == "" {
				*s = make(StringArray, 0)
				return nil
			}
			result = splitPostgresArray(str)
		} else {
			return err
		}
	}
	if result == nil {
		result = make([]string, 0)
	}
	*s = result
	return nil
}

// columnBytes normalizes the representations drivers hand back for text/json columns
func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported column type for JSON value")
	}
}

func splitPostgresArray(s string) []string {
	var result []string
	var current []rune
	inQuotes := false

	for _, c := range s {
		switch c {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				result = append(result, string(current))
				current = current[:0]
			} else {
				current = append(current, c)
			}
		default:
			current = append(current, c)
		}
	}
	if len(current) > 0 {
		result = append(result, string(current))
	}
	return result
}
