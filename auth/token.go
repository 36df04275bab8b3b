// Package auth issues and verifies the bearer tokens that carry an actor's
// identity.
package auth

import (
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/pkg/errors"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

// DefaultTokenLifetime is the lifetime of issued tokens if none is configured
const DefaultTokenLifetime = 24 * time.Hour

const (
	claimID       = "id"
	claimRole     = "role"
	claimUsername = "username"
)

var supportedAlgs = map[string]jwa.SignatureAlgorithm{
	"HS256": jwa.HS256(),
	"HS384": jwa.HS384(),
	"HS512": jwa.HS512(),
}

// Config configures the TokenIssuer
type Config struct {
	Secret   []byte
	Alg      string
	Lifetime time.Duration
}

// TokenIssuer signs and verifies bearer tokens
type TokenIssuer struct {
	secret   []byte
	alg      jwa.SignatureAlgorithm
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer; the algorithm defaults to HS256
func NewTokenIssuer(conf Config) (*TokenIssuer, error) {
	if len(conf.Secret) == 0 {
		return nil, errors.New("token signing secret must not be empty")
	}
	if conf.Alg == "" {
		conf.Alg = "HS256"
	}
	alg, ok := supportedAlgs[conf.Alg]
	if !ok {
		return nil, errors.Errorf("unsupported token signing algorithm '%s'", conf.Alg)
	}
	if conf.Lifetime <= 0 {
		conf.Lifetime = DefaultTokenLifetime
	}
	return &TokenIssuer{
		secret:   conf.Secret,
		alg:      alg,
		lifetime: conf.Lifetime,
		now:      time.Now,
	}, nil
}

// Issue returns a signed token for the passed user
func (i *TokenIssuer) Issue(user model.User) (string, error) {
	now := i.now()
	id := strconv.FormatUint(uint64(user.ID), 10)
	tok, err := jwt.NewBuilder().
		Subject(id).
		IssuedAt(now).
		Expiration(now.Add(i.lifetime)).
		Claim(claimID, id).
		Claim(claimRole, string(user.Role)).
		Claim(claimUsername, user.Username).
		Build()
	if err != nil {
		return "", errors.Wrap(err, "failed to build token")
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(i.alg, i.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// Verify checks signature and expiry of a token and returns the Actor it
// carries
func (i *TokenIssuer) Verify(token string) (*model.Actor, error) {
	tok, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(i.alg, i.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(i.now)),
	)
	if err != nil {
		return nil, model.AuthenticationError("invalid or expired token")
	}
	var id, role, username string
	if err = tok.Get(claimID, &id); err != nil {
		return nil, model.AuthenticationError("token is missing the id claim")
	}
	if err = tok.Get(claimRole, &role); err != nil {
		return nil, model.AuthenticationError("token is missing the role claim")
	}
	if err = tok.Get(claimUsername, &username); err != nil {
		return nil, model.AuthenticationError("token is missing the username claim")
	}
	uid, err := strconv.ParseUint(id, 10, 64)
	if err != nil || uid == 0 {
		return nil, model.AuthenticationError("token carries an invalid id")
	}
	return &model.Actor{
		ID:       uint(uid),
		Username: username,
		Role:     model.NormalizeRole(role),
	}, nil
}
