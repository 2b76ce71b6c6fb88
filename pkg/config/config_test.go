package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokpds15/Myself/pkg/config"
)

var overrideVars = []string{
	config.ConfigPathEnv, "PORT", "FRONTEND_DIR", "BACKEND_URL", "DATABASE_PATH",
	"GMAIL_USER", "GMAIL_APP_PASSWORD", "SMTP_HOST", "SMTP_PORT", "MAIL_DISABLED",
	"BLOGGER_API_KEY", "BLOGGER_BLOG_ID", "ADMIN_API_KEY", "KAFKA_BROKERS", "KAFKA_TOPIC",
}

// clearEnv blanks every override so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range overrideVars {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name               string
		configContent      string
		missingPath        string
		expectedListenAddr string
		expectedBlogID     string
		expectError        bool
	}{
		{
			name: "full config",
			configContent: `
server:
  listenAddress: ":8080"
  allowedOrigins:
    - "http://localhost:3000"
database:
  path: "/tmp/subs.db"
mail:
  host: "smtp.example.com"
  port: 2525
  user: "sender@example.com"
  password: "secret"
blogger:
  blogID: "123"
  apiKey: "abc"
admin:
  apiKey: "admin"
`,
			expectedListenAddr: ":8080",
			expectedBlogID:     "123",
		},
		{
			name: "minimal config",
			configContent: `
server:
  listenAddress: ":3000"
`,
			expectedListenAddr: ":3000",
		},
		{
			name:          "invalid YAML",
			configContent: `invalid: yaml: content [`,
			expectError:   true,
		},
		{
			name:        "explicit file not found",
			missingPath: "/nonexistent/path/config.yaml",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			path := tt.missingPath
			if tt.configContent != "" {
				path = writeConfig(t, tt.configContent)
			}

			cfg, err := config.Load(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedListenAddr, cfg.Server.ListenAddress)
			assert.Equal(t, tt.expectedBlogID, cfg.Blogger.BlogID)
		})
	}
}

func TestLoadDefaultPathMissingIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.ListenAddress)
}

func TestLoadConfigPathEnvMustExist(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.ConfigPathEnv, "/nonexistent/config.yaml")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  listenAddress: ":8080"
mail:
  user: "file@example.com"
admin:
  apiKey: "from-file"
`)
	t.Setenv("PORT", "5001")
	t.Setenv("GMAIL_USER", "env@gmail.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-password")
	t.Setenv("ADMIN_API_KEY", "from-env")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("MAIL_DISABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.Server.ListenAddress)
	assert.Equal(t, "env@gmail.com", cfg.Mail.User)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.Disabled)
	assert.Equal(t, "from-env", cfg.Admin.APIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.Kafka.Brokers)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even to "".
	for _, k := range []string{"ADMIN_API_KEY", "BLOGGER_BLOG_ID"} {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("ADMIN_API_KEY")
		_ = os.Unsetenv("BLOGGER_BLOG_ID")
	})
	require.NoError(t, os.WriteFile(".env", []byte("ADMIN_API_KEY=dotenv-key\nBLOGGER_BLOG_ID=42\n"), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.Admin.APIKey)
	assert.Equal(t, "42", cfg.Blogger.BlogID)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Admin: config.Admin{APIKey: "k"},
		Mail:  config.Mail{User: "u@gmail.com", Password: "p"},
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "missing admin key",
			mutate:  func(c *config.Config) { c.Admin.APIKey = "  " },
			wantErr: "ADMIN_API_KEY",
		},
		{
			name:    "mail enabled without credentials",
			mutate:  func(c *config.Config) { c.Mail.Password = "" },
			wantErr: "GMAIL_APP_PASSWORD",
		},
		{
			name: "mail disabled without credentials",
			mutate: func(c *config.Config) {
				c.Mail = config.Mail{Disabled: true}
			},
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *config.Config) { c.Mail.MaxConcurrentSends = -1 },
			wantErr: "maxConcurrentSends",
		},
		{
			name:    "tls cert without key",
			mutate:  func(c *config.Config) { c.Server.TLSCertFile = "cert.pem" },
			wantErr: "tlsKeyFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
