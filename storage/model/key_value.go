package model

import (
	"gorm.io/datatypes"
)

const (
	KeyValueScopeGlobal = ""
	KeyValueScopeAuth   = "auth"

	KeyValueKeySigningSecret = "signing_secret"
)

// KeyValue stores arbitrary key-value data.
//
// Values are serialized using GORM's JSON datatype, which leverages the
// database JSON type when available (e.g., PostgreSQL, MySQL), and falls back
// to TEXT in others (e.g., SQLite). The `Scope` field enables namespacing to
// avoid key collisions across different features.
type KeyValue struct {
	CreatedAt int `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int `gorm:"autoUpdateTime" json:"updated_at"`

	// Scope allows grouping keys by namespace; empty string is global scope.
	Scope string `gorm:"primaryKey;size:64" json:"scope"`

	// Key is the identifier within a scope.
	Key string `gorm:"primaryKey;size:128" json:"key"`

	// Value is stored as native JSON/JSONB (where supported) using datatypes.JSON.
	Value datatypes.JSON `json:"value"`
}

// KeyValueStore defines common operations for key-value storage.
// Implementations should honor the uniqueness of (scope,key) and
// JSON-serialized values.
type KeyValueStore interface {
	// Get retrieves the value for a (scope, key). Returns (nil, nil) if not found.
	Get(scope, key string) (datatypes.JSON, error)
	// Set stores/replaces the value for a (scope, key).
	Set(scope, key string, value datatypes.JSON) error
	// Delete removes the entry for a (scope, key). No error if missing.
	Delete(scope, key string) error
	// GetAs unmarshals the value for a (scope, key) into out; returns false if
	// not found.
	GetAs(scope, key string, out any) (bool, error)
	// SetAny marshals v to JSON and stores it at (scope, key).
	SetAny(scope, key string, v any) error
}
