package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultConfigPath is read when no explicit path is given. A missing
	// file at this path is not an error; environment variables are enough.
	DefaultConfigPath = "./config.yaml"
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "PORTFOLIO_CONFIG_PATH"

	defaultBloggerBaseURL = "https://www.googleapis.com/blogger/v3"
)

type Server struct {
	ListenAddress string `yaml:"listenAddress"`
	TLSCertFile   string `yaml:"tlsCertFile"`
	TLSKeyFile    string `yaml:"tlsKeyFile"`
	// AllowedOrigins lists the SPA origins allowed by CORS. Empty allows all,
	// which matches a bare cors() middleware.
	AllowedOrigins []string `yaml:"allowedOrigins"`
	TrustedProxies []string `yaml:"trustedProxies"`
	// PublicRateLimit is requests per second per client IP on the public
	// subscribe/unsubscribe/posts routes. Zero uses the ratelimit defaults.
	PublicRateLimit float64 `yaml:"publicRateLimit"`
	PublicBurst     int     `yaml:"publicBurst"`
}

type Frontend struct {
	// BaseURL is the backend URL the SPA talks to (REACT_APP_BACKEND_URL).
	BaseURL string `yaml:"baseURL"`
	// Dir optionally points at the built SPA to serve for unmatched routes.
	Dir          string `yaml:"dir"`
	BrandingName string `yaml:"brandingName"`
}

type Database struct {
	Path string `yaml:"path"`
}

type Mail struct {
	Disabled           bool   `yaml:"disabled"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	SenderAddress      string `yaml:"senderAddress"`
	SenderName         string `yaml:"senderName"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	// MaxConcurrentSends caps in-flight sends per notification run.
	// Zero means no cap.
	MaxConcurrentSends int `yaml:"maxConcurrentSends"`
}

type Blogger struct {
	BaseURL string `yaml:"baseURL"`
	BlogID  string `yaml:"blogID"`
	APIKey  string `yaml:"apiKey"`
	// RequestTimeout is a Go duration string, e.g. "10s".
	RequestTimeout string `yaml:"requestTimeout"`
}

type Admin struct {
	APIKey string `yaml:"apiKey"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Audit struct {
	Kafka Kafka `yaml:"kafka"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Frontend Frontend `yaml:"frontend"`
	Database Database `yaml:"database"`
	Mail     Mail     `yaml:"mail"`
	Blogger  Blogger  `yaml:"blogger"`
	Admin    Admin    `yaml:"admin"`
	Audit    Audit    `yaml:"audit"`
}

// Load reads the YAML config (if any), loads a .env file from the working
// directory (if any) and applies environment overrides on top.
// An explicitly passed or PORTFOLIO_CONFIG_PATH file must exist.
func Load(configPath ...string) (Config, error) {
	var cfg Config

	path := os.Getenv(ConfigPathEnv)
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("error unmarshaling YAML %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("trying to open config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.ListenAddress = ":" + strings.TrimPrefix(port, ":")
	}
	if v := os.Getenv("FRONTEND_DIR"); v != "" {
		c.Frontend.Dir = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		c.Frontend.BaseURL = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv("GMAIL_USER"); v != "" {
		c.Mail.User = v
	}
	if v := os.Getenv("GMAIL_APP_PASSWORD"); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Mail.Port = p
		}
	}
	if v := os.Getenv("MAIL_DISABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Mail.Disabled = b
		}
	}

	if v := os.Getenv("BLOGGER_API_KEY"); v != "" {
		c.Blogger.APIKey = v
	}
	if v := os.Getenv("BLOGGER_BLOG_ID"); v != "" {
		c.Blogger.BlogID = v
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		c.Admin.APIKey = v
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Audit.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Audit.Kafka.Topic = v
	}
}

// Defaults fills unset values.
func (c *Config) Defaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":5000"
	}
	if c.Frontend.BrandingName == "" {
		c.Frontend.BrandingName = "My Portfolio"
	}
	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost" + c.Server.ListenAddress
	}
	if c.Database.Path == "" {
		c.Database.Path = "subscribers.db"
	}
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.SenderAddress == "" {
		c.Mail.SenderAddress = c.Mail.User
	}
	if c.Blogger.BaseURL == "" {
		c.Blogger.BaseURL = defaultBloggerBaseURL
	}
	if c.Blogger.RequestTimeout == "" {
		c.Blogger.RequestTimeout = "10s"
	}
	if c.Audit.Kafka.Topic == "" {
		c.Audit.Kafka.Topic = "portfolio-audit"
	}
}

// Validate reports configuration that prevents the server from starting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Admin.APIKey) == "" {
		return errors.New("ADMIN_API_KEY is required")
	}
	if !c.Mail.Disabled && (c.Mail.User == "" || c.Mail.Password == "") {
		return errors.New("GMAIL_USER and GMAIL_APP_PASSWORD must be set unless mail is disabled")
	}
	if c.Mail.MaxConcurrentSends < 0 {
		return errors.New("mail.maxConcurrentSends must not be negative")
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		return errors.New("server.tlsCertFile and server.tlsKeyFile must be set together")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
