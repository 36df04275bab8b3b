package storage

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

func TestUsersCreate(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "wonderland", "")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Empty(t, u.PasswordHash)

	admin, err := users.Create("root", "toor", "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	superuser, err := users.Create("mallory", "pw", "superuser")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, superuser.Role)

	_, err = users.Create("alice", "other", "user")
	var exists model.AlreadyExistsError
	require.True(t, errors.As(err, &exists))
	assert.Equal(t, "username already taken", err.Error())
	first, err := users.Authenticate("alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, u.ID, first.ID)
	_, err = users.Authenticate("alice", "other")
	var authErr model.AuthenticationError
	assert.True(t, errors.As(err, &authErr))

	var verr model.ValidationError
	_, err = users.Create("", "pw", "user")
	assert.True(t, errors.As(err, &verr))
	_, err = users.Create("eve", "", "user")
	assert.True(t, errors.As(err, &verr))

	count, err := users.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestUsersListAndGet(t *testing.T) {
	users := newTestStorage(t).UsersStorage()
	_, err := users.Create("alice", "wonderland", "user")
	require.NoError(t, err)
	_, err = users.Create("bob", "builder", "admin")
	require.NoError(t, err)

	list, err := users.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Username)
	for _, u := range list {
		assert.Empty(t, u.PasswordHash)
	}

	u, err := users.Get("bob")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Empty(t, u.PasswordHash)

	_, err = users.Get("carol")
	var nf model.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestUsersAuthenticate(t *testing.T) {
	users := newTestStorage(t).UsersStorage()
	created, err := users.Create("alice", "wonderland", "user")
	require.NoError(t, err)

	u, err := users.Authenticate("alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Empty(t, u.PasswordHash)

	_, wrongPassword := users.Authenticate("alice", "looking-glass")
	_, unknownUser := users.Authenticate("carol", "wonderland")
	var authErr model.AuthenticationError
	require.True(t, errors.As(wrongPassword, &authErr))
	require.True(t, errors.As(unknownUser, &authErr))
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestUsersAuthenticateRehashes(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.UsersStorage().Create("alice", "wonderland", "user")
	require.NoError(t, err)

	stronger := testHashParams
	stronger.Time = 2
	upgraded := &UsersStorage{
		db:     s.db,
		params: stronger,
	}
	_, err = upgraded.Authenticate("alice", "wonderland")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, s.db.Where("username = ?", "alice").First(&stored).Error)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))
	params, err := extractArgon2idParams(stored.PasswordHash)
	require.NoError(t, err)
	assert.EqualValues(t, 2, params.Time)

	_, err = upgraded.Authenticate("alice", "wonderland")
	require.NoError(t, err)
}

func TestArgon2idRoundTrip(t *testing.T) {
	hash, err := hashPasswordArgon2id("secret", testHashParams)
	require.NoError(t, err)

	ok, err := verifyPasswordArgon2id(hash, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyPasswordArgon2id(hash, "Secret")
	require.NoError(t, err)
	assert.False(t, ok)

	params, err := extractArgon2idParams(hash)
	require.NoError(t, err)
	assert.True(t, argon2idParamsEqual(testHashParams, params))

	_, err = verifyPasswordArgon2id("$bcrypt$nope", "secret")
	assert.Error(t, err)
}
