package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout int    `yaml:"timeout" json:"timeout"`
}

type MailConfig struct {
	OrderEmail   string `yaml:"order_email" json:"order_email"`
	SMTPEnable   bool   `yaml:"smtp_enable" json:"smtp_enable"`
	SMTPHost     string `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port" json:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username" json:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password" json:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from" json:"smtp_from"`
}

type SessionConfig struct {
	Filename string `yaml:"filename" json:"filename"`
}

type CatalogConfig struct {
	PageSize        int    `yaml:"page_size" json:"page_size"`
	RefreshInterval string `yaml:"refresh_interval" json:"refresh_interval"`
	RefreshWorkers  int    `yaml:"refresh_workers" json:"refresh_workers"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
	API     APIConfig     `yaml:"api" json:"api"`
	Mail    MailConfig    `yaml:"mail" json:"mail"`
	Session SessionConfig `yaml:"session" json:"session"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Workdir:  "/var/marketkit",
			Location: "Asia/Kolkata",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/marketkit/marketkit.log",
		},
		API: APIConfig{
			BaseURL: "http://127.0.0.1:5000",
			Timeout: 15,
		},
		Mail: MailConfig{
			OrderEmail: "drpatrospvtltd@gmail.com",
			SMTPPort:   587,
		},
		Session: SessionConfig{
			Filename: "session.db",
		},
		Catalog: CatalogConfig{
			PageSize:        10,
			RefreshInterval: "@every 10m",
			RefreshWorkers:  4,
		},
	}
}

// SessionPath is the bbolt file location under the workdir.
func (c *AppConfig) SessionPath() string {
	return filepath.Join(c.System.Workdir, c.Session.Filename)
}

// LoadConfig reads the yaml file at path over the defaults, then applies
// MARKETKIT_ environment overrides. A missing file is not an error: the
// defaults stand.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvString("MARKETKIT_WORKDIR", &cfg.System.Workdir)
	setEnvString("MARKETKIT_LOCATION", &cfg.System.Location)
	setEnvBool("MARKETKIT_DEBUG", &cfg.System.Debug)
	setEnvString("MARKETKIT_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvString("MARKETKIT_API_BASE_URL", &cfg.API.BaseURL)
	setEnvInt("MARKETKIT_API_TIMEOUT", &cfg.API.Timeout)
	setEnvString("MARKETKIT_ORDER_EMAIL", &cfg.Mail.OrderEmail)
	setEnvBool("MARKETKIT_SMTP_ENABLE", &cfg.Mail.SMTPEnable)
	setEnvString("MARKETKIT_SMTP_HOST", &cfg.Mail.SMTPHost)
	setEnvInt("MARKETKIT_SMTP_PORT", &cfg.Mail.SMTPPort)
	setEnvString("MARKETKIT_SMTP_USERNAME", &cfg.Mail.SMTPUsername)
	setEnvString("MARKETKIT_SMTP_PASSWORD", &cfg.Mail.SMTPPassword)
	setEnvInt("MARKETKIT_CATALOG_PAGE_SIZE", &cfg.Catalog.PageSize)
	setEnvString("MARKETKIT_CATALOG_REFRESH", &cfg.Catalog.RefreshInterval)
}

func setEnvString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setEnvInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		*target = cast.ToInt(v)
	}
}

func setEnvBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		*target = cast.ToBool(v)
	}
}
