package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment names accepted for SW_ENV. The development environment enables
// the demo identity shortcut in the tenant resolver; nothing else may.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Env  string
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	OIDC struct {
		Issuer       string
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}
	// SuperadminEmail marks the matching user as a platform superadmin the
	// first time they log in. Leave empty to disable the bootstrap.
	SuperadminEmail string
	SessionLifetime time.Duration
}

// Load reads config from environment (SW_ prefix) and optional sitework.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("sitework")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("env", EnvProduction)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.lifetime", "720h")

	cfg := &Config{}
	cfg.Env = v.GetString("env")
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.OIDC.Issuer = v.GetString("oidc.issuer")
	cfg.OIDC.ClientID = v.GetString("oidc.client_id")
	cfg.OIDC.ClientSecret = v.GetString("oidc.client_secret")
	cfg.OIDC.RedirectURL = v.GetString("oidc.redirect_url")
	cfg.SuperadminEmail = v.GetString("superadmin_email")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid SW_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if cfg.Env != EnvProduction && cfg.Env != EnvDevelopment {
		return nil, fmt.Errorf("SW_ENV must be %q or %q, got %q", EnvProduction, EnvDevelopment, cfg.Env)
	}
	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("SW_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("SW_DB_DSN is required")
	}
	if cfg.OIDC.Issuer == "" {
		return nil, fmt.Errorf("SW_OIDC_ISSUER is required")
	}
	if cfg.OIDC.ClientID == "" {
		return nil, fmt.Errorf("SW_OIDC_CLIENT_ID is required")
	}
	if cfg.OIDC.ClientSecret == "" {
		return nil, fmt.Errorf("SW_OIDC_CLIENT_SECRET is required")
	}
	if cfg.OIDC.RedirectURL == "" {
		return nil, fmt.Errorf("SW_OIDC_REDIRECT_URL is required")
	}

	return cfg, nil
}

// DevMode reports whether the demo identity shortcut may be enabled.
func (c *Config) DevMode() bool {
	return c.Env == EnvDevelopment
}
