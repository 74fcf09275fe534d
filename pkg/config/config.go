package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	Storage StorageConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Mail    MailConfig
	Alerts  AlertsConfig
	Billing BillingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // local, development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StorageConfig selecciona el backend de persistencia: "postgres" o "memory" (desarrollo).
type StorageConfig struct {
	Driver string
}

// JWTConfig configuración de JWT (access + refresh).
type JWTConfig struct {
	Secret            string
	Expiration        int // minutos del access token
	RefreshExpiration int // minutos del refresh token
	Issuer            string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché compartida para los marcadores de enfriamiento de alertas.
// Addr vacío = caché en memoria del proceso.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMTPConfig servidor de correo saliente. Host vacío = los correos solo se registran en el log.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// MailConfig remitente y dirección de respaldo.
type MailConfig struct {
	From            string
	FallbackAddress string
}

// AlertsConfig alertas de stock bajo.
type AlertsConfig struct {
	Threshold int
	Cooldown  time.Duration
}

// BillingConfig parámetros de facturación.
type BillingConfig struct {
	TaxRate       decimal.Decimal // 0.19 = 19%
	Currency      string
	PaymentMethod string
	InvoicePrefix string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Con APP_ENV=local se carga además .env.local.
func Load() (*Config, error) {
	if envIsLocal() {
		_ = godotenv.Load(".env.local")
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cooldown, err := time.ParseDuration(getString(v, "ALERT_COOLDOWN", "90m"))
	if err != nil {
		return nil, fmt.Errorf("ALERT_COOLDOWN inválido: %w", err)
	}
	taxRate, err := decimal.NewFromString(getString(v, "BILLING_TAX_RATE", "0"))
	if err != nil {
		return nil, fmt.Errorf("BILLING_TAX_RATE inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "tienda-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
		},
		Storage: StorageConfig{
			Driver: getString(v, "STORAGE_DRIVER", "postgres"),
		},
		JWT: JWTConfig{
			Secret:            getString(v, "JWT_SECRET", ""),
			Expiration:        getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			RefreshExpiration: getInt(v, "JWT_REFRESH_EXPIRATION_MINUTES", 7*24*60),
			Issuer:            getString(v, "JWT_ISSUER", "tienda-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			Username: getString(v, "SMTP_USERNAME", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
		},
		Mail: MailConfig{
			From:            getString(v, "MAIL_FROM", "no-reply@tienda.local"),
			FallbackAddress: getString(v, "MAIL_FALLBACK_ADDRESS", ""),
		},
		Alerts: AlertsConfig{
			Threshold: getInt(v, "ALERT_THRESHOLD", 5),
			Cooldown:  cooldown,
		},
		Billing: BillingConfig{
			TaxRate:       taxRate,
			Currency:      getString(v, "BILLING_CURRENCY", "COP"),
			PaymentMethod: getString(v, "BILLING_PAYMENT_METHOD", "mercadopago"),
			InvoicePrefix: getString(v, "BILLING_INVOICE_PREFIX", "FAC"),
		},
	}

	return cfg, nil
}

func envIsLocal() bool {
	v := viper.New()
	v.AutomaticEnv()
	return strings.EqualFold(v.GetString("APP_ENV"), "local")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
