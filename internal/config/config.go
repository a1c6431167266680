package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full runtime configuration for the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mailgun   MailgunConfig   `mapstructure:"mailgun"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	Store     StoreConfig     `mapstructure:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MailgunConfig holds email provider settings. APIKey and Domain are
// required; startup fails without them.
type MailgunConfig struct {
	APIKey string `mapstructure:"api_key"`
	Domain string `mapstructure:"domain"`
	// Sender is the fixed From address. Defaults to the sandbox
	// postmaster of the configured domain.
	Sender string `mapstructure:"sender"`
	// AuthorizedRecipients is the static allow-list of destination
	// addresses, matched exactly and case-sensitively.
	AuthorizedRecipients []string `mapstructure:"authorized_recipients"`
}

// FirestoreConfig holds document store settings.
type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Collection      string `mapstructure:"collection"`
}

// StoreConfig selects the event store backend.
type StoreConfig struct {
	// Backend is "firestore" or "memory". Memory is for local development
	// only; it loses all data on restart.
	Backend string `mapstructure:"backend"`
}

// Load reads configuration from an optional config.yaml plus environment
// variables (REMINDD_ prefixed, e.g. REMINDD_MAILGUN_API_KEY).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/remindd")

	v.SetEnvPrefix("REMINDD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare provider variables are also honored so the service can run
	// with the same environment the hosted deployments already use.
	v.BindEnv("mailgun.api_key", "REMINDD_MAILGUN_API_KEY", "MAILGUN_API_KEY")
	v.BindEnv("mailgun.domain", "REMINDD_MAILGUN_DOMAIN", "MAILGUN_DOMAIN")
	v.BindEnv("firestore.project_id", "REMINDD_FIRESTORE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	v.BindEnv("firestore.credentials_file", "REMINDD_FIRESTORE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Mailgun.Sender == "" && cfg.Mailgun.Domain != "" {
		cfg.Mailgun.Sender = fmt.Sprintf("Remindd <postmaster@%s>", cfg.Mailgun.Domain)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required provider credentials are present.
func (c *Config) Validate() error {
	if c.Mailgun.APIKey == "" {
		return fmt.Errorf("mailgun api key is required (set MAILGUN_API_KEY)")
	}
	if c.Mailgun.Domain == "" {
		return fmt.Errorf("mailgun domain is required (set MAILGUN_DOMAIN)")
	}
	if c.Store.Backend != "firestore" && c.Store.Backend != "memory" {
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "firestore" && c.Firestore.CredentialsFile == "" {
		return fmt.Errorf("firestore credentials file is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("store.backend", "firestore")
	v.SetDefault("firestore.credentials_file", "./serviceAccountKey.json")
	v.SetDefault("firestore.collection", "events")
	// Sample sandbox recipients; replace in deployment config.
	v.SetDefault("mailgun.authorized_recipients", []string{
		"avelisk@gmail.com",
		"a.velisk@outlook.com",
	})
}
