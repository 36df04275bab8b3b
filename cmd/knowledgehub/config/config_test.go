package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgehub/knowledgehub/cache"
	"github.com/knowledgehub/knowledgehub/storage"
	"github.com/knowledgehub/knowledgehub/summarizer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 5000, c.Server.Port)
	assert.Equal(t, storage.DriverSQLite, c.Storage.Driver)
	assert.Equal(t, "HS256", c.Auth.Alg)
	assert.Equal(t, 24*time.Hour, c.Auth.TokenLifetime.Duration())
	assert.Equal(t, summarizer.ProviderMock, c.Summarizer.Provider)
	assert.Equal(t, 30*time.Second, c.Summarizer.Timeout.Duration())
	assert.Equal(t, cache.BackendMemory, c.Caching.Backend)
	assert.Equal(t, "INFO", c.Logging.Internal.Level)
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(
		t, `
server:
  port: 8080
storage:
  driver: postgres
  user: hub
  password: secret
  host: db.example.org
  db: hub
auth:
  jwt_secret: 0123456789abcdef0123
  alg: HS512
summarizer:
  provider: openai
  api_key: sk-test
  model: gpt-4o-mini
caching:
  backend: redis
  redis_addr: redis:6379
  redis_db: 2
`,
	)
	c, err := load(p)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "host=db.example.org user=hub password=secret dbname=hub port=5432", c.Storage.DSN)
	assert.Equal(t, "HS512", c.Auth.Alg)
	assert.Equal(t, "0123456789abcdef0123", c.Auth.JWTSecret)

	sc := c.Summarizer.SummarizerConfig()
	assert.Equal(t, summarizer.ProviderOpenAI, sc.Provider)
	assert.Equal(t, "sk-test", sc.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", sc.OpenAI.Model)

	cc := c.Caching.CacheConfig()
	assert.Equal(t, cache.BackendRedis, cc.Backend)
	assert.Equal(t, "redis:6379", cc.RedisAddr)
	assert.Equal(t, 2, cc.RedisDB)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvJWTSecret, "from-the-environment-secret")
	t.Setenv(EnvOpenAIAPIKey, "sk-env")
	t.Setenv(EnvDBDSN, "file:hub.db")

	c, err := load(
		writeConfig(
			t, `
auth:
  jwt_secret: from-the-config-file
summarizer:
  provider: openai
`,
		),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-the-environment-secret", c.Auth.JWTSecret)
	assert.Equal(t, "sk-env", c.Summarizer.APIKey)
	assert.Equal(t, "file:hub.db", c.Storage.DSN)
	assert.Equal(t, "file:hub.db", c.Storage.StorageConfig().DSN)
}

func TestValidationErrors(t *testing.T) {
	tests := map[string]string{
		"unknown provider":   "summarizer:\n  provider: magic\n",
		"openai without key": "summarizer:\n  provider: openai\n",
		"unknown cache":      "caching:\n  backend: memcached\n",
		"redis without addr": "caching:\n  backend: redis\n",
		"short secret":       "auth:\n  jwt_secret: short\n",
		"unknown alg":        "auth:\n  alg: RS256\n",
		"unknown driver":     "storage:\n  driver: oracle\n",
		"sqlite without dir": "storage:\n  data_dir: \"\"\n",
		"tls without cert":   "server:\n  tls:\n    enabled: true\n",
		"missing log dir":    "logging:\n  internal:\n    dir: /does/not/exist/knowledgehub\n",
		"invalid yaml":       "server: [\n",
	}
	for name, content := range tests {
		t.Run(
			name, func(t *testing.T) {
				_, err := load(writeConfig(t, content))
				assert.Error(t, err)
			},
		)
	}
}

func TestCachingDisabled(t *testing.T) {
	c, err := load(writeConfig(t, "caching:\n  disabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, cache.BackendNone, c.Caching.Backend)
}

func TestMissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTokenIssuerFromStore(t *testing.T) {
	s, err := storage.NewStorage(
		storage.Config{
			Driver:  storage.DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
	require.NoError(t, err)
	defer s.Close()

	c := defaultAuthConf
	issuer, err := c.TokenIssuer(s.KeyValue())
	require.NoError(t, err)
	require.NotNil(t, issuer)

	found, err := s.KeyValue().GetAs("auth", "signing_secret", new(string))
	require.NoError(t, err)
	assert.True(t, found)
}
