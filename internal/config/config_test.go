package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "smc"
password = "from-file"
dbname = "bookings"

[catalog_service]
url = "http://catalog:8081"
`)
	t.Setenv("SMC_DB_PASSWORD", "from-env")
	t.Setenv("SMC_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPPort, cfg.Server.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Notifications.Brokers)
	assert.Equal(t, DefaultNotificationsTopic, cfg.Notifications.Topic)
	assert.Equal(t, LockBackendNone, cfg.Lock.Backend)
	assert.Equal(t, DefaultClientTimeout, cfg.CatalogService.Timeout)
	assert.Equal(t, "host=localhost port=5432 user=smc password=from-env dbname=bookings sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MemoryDriverNeedsNoHost(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[catalog_service]
url = "http://catalog:8081"
timeout = 2

[scheduling]
timezone = "UTC"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2, cfg.CatalogService.Timeout)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown driver", content: "[database]\ndriver = \"mysql\"\n[catalog_service]\nurl = \"http://c\""},
		{name: "postgres without host", content: "[catalog_service]\nurl = \"http://c\""},
		{name: "redis without address", content: "[database]\ndriver = \"memory\"\n[catalog_service]\nurl = \"http://c\"\n[lock]\nbackend = \"redis\""},
		{name: "missing catalog", content: "[database]\ndriver = \"memory\""},
		{name: "bad timezone", content: "[database]\ndriver = \"memory\"\n[catalog_service]\nurl = \"http://c\"\n[scheduling]\ntimezone = \"Mars/Olympus\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
