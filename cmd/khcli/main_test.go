package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(
		`storage:
  driver: sqlite
  data_dir: %s
  password_hashing:
    time: 1
    memory_kib: 8192
    parallelism: 1
    key_len: 32
    salt_len: 16
`, dir,
	)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsersCommands(t *testing.T) {
	conf := writeTestConfig(t)

	out, err := run(t, "--config", conf, "users", "create", "root", "--password", "toor", "--role", "admin")
	require.NoError(t, err)
	var created userOut
	require.NoError(t, yaml.Unmarshal([]byte(out), &created))
	assert.Equal(t, "root", created.Username)
	assert.Equal(t, "admin", created.Role)

	_, err = run(t, "--config", conf, "users", "create", "alice", "--password", "pw", "--role", "superuser")
	require.NoError(t, err)

	_, err = run(t, "--config", conf, "users", "create", "alice", "--password", "pw")
	assert.Error(t, err)

	_, err = run(t, "--config", conf, "users", "create", "bob")
	assert.Error(t, err)

	out, err = run(t, "--config", conf, "users", "list")
	require.NoError(t, err)
	var users []userOut
	require.NoError(t, yaml.Unmarshal([]byte(out), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[1].Username)
	assert.Equal(t, "user", users[1].Role)
	assert.NotContains(t, out, "argon2id")
}

func TestArticlesList(t *testing.T) {
	conf := writeTestConfig(t)

	out, err := run(t, "--config", conf, "articles", "list", "--page", "3", "--limit", "2")
	require.NoError(t, err)
	var page articlePageOut
	require.NoError(t, yaml.Unmarshal([]byte(out), &page))
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Articles)
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "users", "list")
	assert.Error(t, err)
}
