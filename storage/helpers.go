package storage

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

const signingSecretLen = 32

// GetOrCreateSigningSecret returns the token signing secret stored in the
// key-value store. If none is stored yet, a random secret is generated and
// persisted.
func GetOrCreateSigningSecret(kvStorage model.KeyValueStore) ([]byte, error) {
	if kvStorage == nil {
		return nil, errors.New("key value store is not set")
	}
	var encoded string
	found, err := kvStorage.GetAs(model.KeyValueScopeAuth, model.KeyValueKeySigningSecret, &encoded)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read signing secret")
	}
	if found && encoded != "" {
		secret, err := base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Wrap(err, "stored signing secret is malformed")
		}
		return secret, nil
	}
	secret := make([]byte, signingSecretLen)
	if _, err = rand.Read(secret); err != nil {
		return nil, err
	}
	if err = kvStorage.SetAny(
		model.KeyValueScopeAuth, model.KeyValueKeySigningSecret,
		base64.RawStdEncoding.EncodeToString(secret),
	); err != nil {
		return nil, errors.Wrap(err, "failed to store signing secret")
	}
	return secret, nil
}

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	if
	// SQLite
	(containsAny(msg, "UNIQUE constraint failed", "constraint failed")) ||
		// MySQL
		(containsAny(msg, "Duplicate entry", "Error 1062")) ||
		// Postgres
		(containsAny(msg, "duplicate key value", "violates unique constraint")) {
		return true
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
