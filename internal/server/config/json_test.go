package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJson_LoadsAllFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr_http": ":9999",
		"database_dsn": "postgres://json-host/taskkeeper",
		"secret_key": "json-secret",
		"token_validity_duration": "24h",
		"sendgrid_api_key": "SG.json",
		"mail_from_address": "json@example.com",
		"avatar_store": "s3",
		"s3_root_user": "json-user",
		"s3_root_password": "json-pass",
		"s3_bucket": "json-bucket",
		"s3_region": "eu-central-1",
		"s3_base_endpoint": "http://json:9000/"
	}`)

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9999", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json-host/taskkeeper", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "SG.json", c.SendGridAPIKey)
	assert.Equal(t, "json@example.com", c.MailFromAddress)
	assert.Equal(t, AvatarStoreS3, c.AvatarStore)
	assert.Equal(t, "json-user", c.S3RootUser)
	assert.Equal(t, "json-pass", c.S3RootPassword)
	assert.Equal(t, "json-bucket", c.S3Bucket)
	assert.Equal(t, "eu-central-1", c.S3Region)
	assert.Equal(t, "http://json:9000/", c.S3BaseEndpoint)
}

func TestParseJson_NoFileFlagLeavesDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = oldArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
}

func TestParseJson_InvalidJsonPanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
