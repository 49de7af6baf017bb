package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Secret      string `yaml:"secret"`
	JwtExpireHr int    `yaml:"jwt_expire_hr"`
	// UploadLimit is passed to the body-limit middleware, e.g. "16M".
	UploadLimit string `yaml:"upload_limit"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// DSN builds the postgres connection string, unless the full string is
// supplied through STOREFRONT_DATABASE_URL.
func (c DBConfig) DSN() string {
	if dsn := os.Getenv("STOREFRONT_DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.Host, c.Port, c.User, c.Passwd, c.Name)
}

type SmtpConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	NotifyTo string `yaml:"notify_to"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Smtp     SmtpConfig `yaml:"smtp"`
	Logger   LogConfig  `yaml:"logger"`
}

// DefaultAppConfig carries the documented local-development defaults.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "storefront",
		Location: "Europe/Tirane",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        5000,
		Secret:      "9b6bb556-b89f-4f41-9b26-2e7a6dee9e07",
		JwtExpireHr: 24,
		UploadLimit: "16M",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "embroidery",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  50,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/storefront/storefront.log",
	},
}

func setEnvStringValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*val = i
		}
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// environment overrides on top. A missing file is not an error: the
// defaults above serve local development.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config: parse %s: %v\n", cfile, err)
				os.Exit(1)
			}
		}
	}

	setEnvStringValue("STOREFRONT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvStringValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)
	setEnvStringValue("STOREFRONT_WEB_SECRET", &cfg.Web.Secret)
	setEnvStringValue("STOREFRONT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("STOREFRONT_DB_PORT", &cfg.Database.Port)
	setEnvStringValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvStringValue("STOREFRONT_DB_USER", &cfg.Database.User)
	setEnvStringValue("STOREFRONT_DB_PASSWD", &cfg.Database.Passwd)
	setEnvStringValue("STOREFRONT_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("STOREFRONT_SMTP_PORT", &cfg.Smtp.Port)
	setEnvStringValue("STOREFRONT_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvStringValue("STOREFRONT_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvStringValue("STOREFRONT_SMTP_FROM", &cfg.Smtp.From)
	setEnvStringValue("STOREFRONT_SMTP_NOTIFY_TO", &cfg.Smtp.NotifyTo)

	return cfg
}
