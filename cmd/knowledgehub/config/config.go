// Package config loads and validates the knowledge hub configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/knowledgehub/knowledgehub"
)

// Environment variables that override secrets from the config file
const (
	EnvJWTSecret    = "KNOWLEDGEHUB_JWT_SECRET"
	EnvOpenAIAPIKey = "KNOWLEDGEHUB_OPENAI_API_KEY"
	EnvDBDSN        = "KNOWLEDGEHUB_DB_DSN"
)

const configFileName = "config.yaml"

var possibleConfigLocations = []string{
	".",
	"config",
	"/config",
	"/knowledgehub",
	"/knowledgehub/config",
	"/etc/knowledgehub",
}

// Config holds the complete configuration
type Config struct {
	Server     knowledgehub.ServerConf `yaml:"server"`
	Storage    storageConf             `yaml:"storage"`
	Auth       authConf                `yaml:"auth"`
	Summarizer summarizerConf          `yaml:"summarizer"`
	Caching    cachingConf             `yaml:"caching"`
	API        apiConf                 `yaml:"api"`
	Logging    loggingConf             `yaml:"logging"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

func defaultConfig() *Config {
	return &Config{
		Server:     defaultServerConf,
		Storage:    defaultStorageConf,
		Auth:       defaultAuthConf,
		Summarizer: defaultSummarizerConf,
		Caching:    defaultCachingConf,
		Logging:    defaultLoggingConf,
	}
}

// Load reads the config file at filename, or the first config file found in
// the default locations if filename is empty, and exits on errors
func Load(filename string) {
	if _, err := LoadFile(filename); err != nil {
		log.WithError(err).Fatal("could not load config")
	}
}

// LoadFile is like Load but returns errors
func LoadFile(filename string) (*Config, error) {
	c, err := load(filename)
	if err != nil {
		return nil, err
	}
	conf = c
	return c, nil
}

func load(filename string) (*Config, error) {
	if filename == "" {
		filename = findConfigFile()
	}
	c := defaultConfig()
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config file '%s'", filename)
		}
		if err = yaml.Unmarshal(data, c); err != nil {
			return nil, errors.Wrapf(err, "could not parse config file '%s'", filename)
		}
	}
	c.applyEnv()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func findConfigFile() string {
	for _, dir := range possibleConfigLocations {
		if p := filepath.Join(dir, configFileName); fileutils.FileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.Summarizer.APIKey = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Storage.DSN = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return errors.New("error in server conf: port must be set")
	}
	if c.Server.TLS.Enabled && (c.Server.TLS.Cert == "" || c.Server.TLS.Key == "") {
		return errors.New("error in server conf: tls.cert and tls.key must be specified")
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if err := c.Auth.validate(); err != nil {
		return err
	}
	if err := c.Summarizer.validate(); err != nil {
		return err
	}
	if err := c.Caching.validate(); err != nil {
		return err
	}
	return c.Logging.validate()
}

var defaultServerConf = knowledgehub.ServerConf{
	Port: 5000,
}
