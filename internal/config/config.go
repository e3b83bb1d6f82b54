package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	Invoice   InvoiceConfig   `yaml:"invoice"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	AdminUser     string `yaml:"admin_user"`
	AdminPassHash string `yaml:"admin_pass_hash"` // bcrypt
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig selects and configures the outgoing mail provider
type EmailConfig struct {
	Provider      string `yaml:"provider"` // "smtp" or "sendgrid"
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	From          string `yaml:"from"`
	FromName      string `yaml:"from_name"`
	SendGridKey   string `yaml:"sendgrid_api_key"`
	OperatorEmail string `yaml:"operator_email"`
}

// InvoiceConfig carries the lessor identity printed on rental contracts
type InvoiceConfig struct {
	LessorName    string `yaml:"lessor_name"`
	LessorAddress string `yaml:"lessor_address"`
	LessorCity    string `yaml:"lessor_city"`
	LessorICO     string `yaml:"lessor_ico"`
	LessorPhone   string `yaml:"lessor_phone"`
	LessorEmail   string `yaml:"lessor_email"`
	BankAccount   string `yaml:"bank_account"` // IBAN used in the payment QR
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	UploadDir string `yaml:"upload_dir"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig holds cron expressions for background jobs
type SchedulerConfig struct {
	SweepReservationStatuses string `yaml:"sweep_reservation_statuses"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("EMAIL_PROVIDER"); val != "" {
		c.Email.Provider = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Email.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Email.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Email.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Email.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("EMAIL_FROM_NAME"); val != "" {
		c.Email.FromName = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridKey = val
	}
	if val := os.Getenv("OPERATOR_EMAIL"); val != "" {
		c.Email.OperatorEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Server.SessionSecret = val
	}
	if val := os.Getenv("ADMIN_USER"); val != "" {
		c.Server.AdminUser = val
	}
	if val := os.Getenv("ADMIN_PASS_HASH"); val != "" {
		c.Server.AdminPassHash = val
	}

	// Invoice
	if val := os.Getenv("BANK_ACCOUNT"); val != "" {
		c.Invoice.BankAccount = val
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "smtp"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "./uploads"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.SessionSecret == "" {
		return fmt.Errorf("session secret is required")
	}
	if len(c.Server.SessionSecret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}
	if c.Server.AdminUser == "" || c.Server.AdminPassHash == "" {
		return fmt.Errorf("admin credentials are required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	switch c.Email.Provider {
	case "smtp":
		if c.Email.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.Email.Port <= 0 || c.Email.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Email.Port)
		}
	case "sendgrid":
		if c.Email.SendGridKey == "" {
			return fmt.Errorf("SendGrid API key is required")
		}
	default:
		return fmt.Errorf("unknown email provider: %s", c.Email.Provider)
	}
	if c.Email.From == "" {
		return fmt.Errorf("email sender address is required")
	}
	if c.Email.OperatorEmail == "" {
		return fmt.Errorf("operator email is required")
	}

	if c.Invoice.BankAccount == "" {
		c.Invoice.BankAccount = "CZ3955000000000857593001"
	}

	// Scheduler defaults
	if c.Scheduler.SweepReservationStatuses == "" {
		c.Scheduler.SweepReservationStatuses = "0 0 2 * * *" // 2 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
