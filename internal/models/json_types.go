package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList stores a list of strings as a JSON column. Works on both
// Postgres (jsonb) and SQLite (text) so the same models run in tests.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// GormDataType tells gorm to create a JSON-capable column.
func (StringList) GormDataType() string {
	return "json"
}

// PrivacySettings is the user's privacy block, stored as a JSON column.
type PrivacySettings struct {
	GhostMode         bool `json:"ghostMode"`
	ShowExactLocation bool `json:"showExactLocation"`
	AllowCheckIns     bool `json:"allowCheckIns"`
}

// Value implements driver.Valuer.
func (p PrivacySettings) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *PrivacySettings) Scan(src any) error {
	if src == nil {
		*p = PrivacySettings{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported source type for PrivacySettings")
	}
}

// GormDataType tells gorm to create a JSON-capable column.
func (PrivacySettings) GormDataType() string {
	return "json"
}
