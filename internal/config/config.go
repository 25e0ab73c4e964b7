// Package config loads service settings from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/csg33k/approval-form/internal/domain"
)

type Config struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`

	SMTPHost      string        `mapstructure:"smtp_host"`
	SMTPPort      int           `mapstructure:"smtp_port"`
	SMTPTimeout   time.Duration `mapstructure:"smtp_timeout"`
	EmailUser     string        `mapstructure:"email_user"`
	EmailPassword string        `mapstructure:"email_password"`
	FromName      string        `mapstructure:"from_name"`
	AdminEmail    string        `mapstructure:"admin_email"`

	// EndpointURL is where the form posts; empty means this server's own endpoint.
	EndpointURL        string   `mapstructure:"endpoint_url"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	ExposeErrorDetails bool     `mapstructure:"expose_error_details"`

	DirectoryDB string              `mapstructure:"directory_db"`
	Supervisors []domain.Supervisor `mapstructure:"supervisors"`

	PDFFontPath string `mapstructure:"pdf_font_path"`
	Timezone    string `mapstructure:"timezone"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "prod")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_timeout", 30*time.Second)
	v.SetDefault("email_user", "")
	v.SetDefault("email_password", "")
	v.SetDefault("from_name", "فرم تایید کار ماهانه")
	v.SetDefault("admin_email", "")
	v.SetDefault("endpoint_url", "")
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("expose_error_details", false)
	v.SetDefault("directory_db", "")
	v.SetDefault("pdf_font_path", "")
	v.SetDefault("timezone", "Asia/Tehran")
}

// Load reads file, or config.yaml from the working directory or
// /etc/approval-form when file is empty. A missing config file is not an
// error; environment variables (EMAIL_USER, ADMIN_EMAIL, ...) override it.
func Load(file string) (*Config, error) {
	v := viper.New()
	defaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/approval-form")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// Validate reports every missing setting the mail relay needs.
func (c *Config) Validate() error {
	var missing []string
	if c.EmailUser == "" {
		missing = append(missing, "email_user")
	}
	if c.EmailPassword == "" {
		missing = append(missing, "email_password")
	}
	if c.AdminEmail == "" {
		missing = append(missing, "admin_email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Dev() bool { return c.Env == "dev" }
