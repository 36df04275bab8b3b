package config

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/storage"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

type storageConf struct {
	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`

	storage.DSNConf `yaml:",inline"`

	Debug           bool                   `yaml:"debug"`
	PasswordHashing storage.Argon2idParams `yaml:"password_hashing"`
}

func (c *storageConf) validate() error {
	if c.Driver == storage.DriverSQLite {
		if c.DataDir == "" && c.DSN == "" {
			return errors.New("error in storage conf: data_dir must be specified")
		}
		return nil
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return errors.Wrap(err, "error in storage conf")
}

// StorageConfig returns the storage.Config for this configuration
func (c storageConf) StorageConfig() storage.Config {
	return storage.Config{
		Driver:    c.Driver,
		DSN:       c.DSN,
		DataDir:   c.DataDir,
		Debug:     c.Debug,
		UsersHash: c.PasswordHashing,
	}
}

var defaultStorageConf = storageConf{
	Driver:  storage.DriverSQLite,
	DataDir: ".",
	DSNConf: storage.DSNConf{
		User: "knowledgehub",
		Host: "localhost",
		DB:   "knowledgehub",
	},
	PasswordHashing: storage.Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		KeyLen:      32,
		SaltLen:     16,
	},
}

// LoadStorage opens the storage for the passed configuration
func LoadStorage(c storageConf) (*storage.Storage, model.Backends, error) {
	s, err := storage.NewStorage(c.StorageConfig())
	if err != nil {
		return nil, model.Backends{}, err
	}
	log.WithField("driver", c.Driver).Info("Loaded storage backend")
	return s, s.Backends(), nil
}
