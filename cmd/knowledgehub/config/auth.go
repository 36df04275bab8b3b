package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"

	"github.com/knowledgehub/knowledgehub/auth"
	"github.com/knowledgehub/knowledgehub/storage"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

// minSecretLen is the minimum length of a configured jwt secret
const minSecretLen = 16

type authConf struct {
	// JWTSecret is the token signing secret; if empty a secret is generated
	// and kept in the database
	JWTSecret     string                  `yaml:"jwt_secret"`
	Alg           string                  `yaml:"alg"`
	TokenLifetime duration.DurationOption `yaml:"token_lifetime"`
}

func (c *authConf) validate() error {
	if c.JWTSecret != "" && len(c.JWTSecret) < minSecretLen {
		return errors.Errorf("error in auth conf: jwt_secret must be at least %d characters", minSecretLen)
	}
	switch c.Alg {
	case "", "HS256", "HS384", "HS512":
	default:
		return errors.Errorf("error in auth conf: unsupported alg '%s'", c.Alg)
	}
	if c.TokenLifetime.Duration() < 0 {
		return errors.New("error in auth conf: token_lifetime must not be negative")
	}
	return nil
}

// TokenIssuer creates the auth.TokenIssuer for this configuration, using the
// secret stored in kv if no secret is configured
func (c authConf) TokenIssuer(kv model.KeyValueStore) (*auth.TokenIssuer, error) {
	secret := []byte(c.JWTSecret)
	if len(secret) == 0 {
		var err error
		secret, err = storage.GetOrCreateSigningSecret(kv)
		if err != nil {
			return nil, err
		}
	}
	return auth.NewTokenIssuer(
		auth.Config{
			Secret:   secret,
			Alg:      c.Alg,
			Lifetime: c.TokenLifetime.Duration(),
		},
	)
}

var defaultAuthConf = authConf{
	Alg:           "HS256",
	TokenLifetime: duration.DurationOption(24 * time.Hour),
}
