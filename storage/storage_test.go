package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testHashParams = Argon2idParams{
	Time:        1,
	MemoryKiB:   8 * 1024,
	Parallelism: 1,
	KeyLen:      32,
	SaltLen:     16,
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(
		Config{
			Driver:    DriverSQLite,
			DataDir:   t.TempDir(),
			UsersHash: testHashParams,
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		driver  DriverType
		conf    DSNConf
		want    string
		wantErr bool
	}{
		{
			name:   "mysql default port",
			driver: DriverMySQL,
			conf: DSNConf{
				User:     "khub",
				Password: "pw",
				Host:     "db",
				DB:       "knowledgehub",
			},
			want: "khub:pw@tcp(db:3306)/knowledgehub?charset=utf8mb4&parseTime=True",
		},
		{
			name:   "postgres",
			driver: DriverPostgres,
			conf: DSNConf{
				User:     "khub",
				Password: "pw",
				Host:     "db",
				Port:     6543,
				DB:       "knowledgehub",
			},
			want: "host=db user=khub password=pw dbname=knowledgehub port=6543",
		},
		{
			name:    "sqlite",
			driver:  DriverSQLite,
			wantErr: true,
		},
		{
			name:    "unknown",
			driver:  "oracle",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(
			test.name, func(t *testing.T) {
				dsn, err := DSN(test.driver, test.conf)
				if test.wantErr {
					require.Error(t, err)
					return
				}
				require.NoError(t, err)
				require.Equal(t, test.want, dsn)
			},
		)
	}
}
