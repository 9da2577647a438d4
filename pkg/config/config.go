package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Backend BackendConfig
	Query   QueryConfig
	Polling PollingConfig
	Access  AccessConfig
	Company CompanyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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
	MinConns    int
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

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	// ReapEvery cada cuánto se cierran los workspaces cuya sesión expiró.
	ReapEvery  time.Duration
}

// TTL duración de vida de un token.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
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

// RedisConfig configuración del almacén de sesiones. Addr vacío = almacén en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Modos de backend soportados.
const (
	BackendModePostgres = "postgres"
	BackendModeRemote   = "remote"
	BackendModeMemory   = "memory"
)

// BackendConfig indica dónde viven los registros del ERP.
type BackendConfig struct {
	Mode    string // postgres | remote | memory
	URL     string // base del gateway remoto (modo remote)
	Timeout time.Duration
}

// QueryConfig niveles de frescura de la caché y reintentos de lectura.
type QueryConfig struct {
	StaleShort  time.Duration
	StaleMedium time.Duration
	StaleLong   time.Duration
	Retry       int
}

// PollingConfig granularidad del gating de polling: "module" o "global".
type PollingConfig struct {
	Gating string
}

// AccessConfig reglas de acceso fijas.
type AccessConfig struct {
	SecondaryAdminEmails []string
}

// CompanyConfig datos del emisor impresos en facturas y etiquetas.
type CompanyConfig struct {
	Name    string
	GSTIN   string
	Address string
	Phone   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, BACKEND_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sahil-erp"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "sahil_erp"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "sahil-erp"),
			ReapEvery:  seconds(getInt(v, "SESSION_REAP_SECONDS", 60)),
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
		Backend: BackendConfig{
			Mode:    strings.ToLower(getString(v, "BACKEND_MODE", BackendModePostgres)),
			URL:     strings.TrimRight(getString(v, "BACKEND_URL", ""), "/"),
			Timeout: seconds(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)),
		},
		Query: QueryConfig{
			StaleShort:  seconds(getInt(v, "QUERY_STALE_SHORT_SECONDS", 10)),
			StaleMedium: seconds(getInt(v, "QUERY_STALE_MEDIUM_SECONDS", 30)),
			StaleLong:   seconds(getInt(v, "QUERY_STALE_LONG_SECONDS", 60)),
			Retry:       getInt(v, "QUERY_RETRY", 1),
		},
		Polling: PollingConfig{
			Gating: strings.ToLower(getString(v, "POLLING_GATING", "module")),
		},
		Access: AccessConfig{
			SecondaryAdminEmails: splitCSV(getString(v, "SECONDARY_ADMIN_EMAILS", "")),
		},
		Company: CompanyConfig{
			Name:    getString(v, "COMPANY_NAME", "Sahil Garments"),
			GSTIN:   getString(v, "COMPANY_GSTIN", ""),
			Address: getString(v, "COMPANY_ADDRESS", ""),
			Phone:   getString(v, "COMPANY_PHONE", ""),
		},
	}

	switch cfg.Backend.Mode {
	case BackendModePostgres, BackendModeRemote, BackendModeMemory:
	default:
		return nil, fmt.Errorf("config: BACKEND_MODE inválido %q (postgres|remote|memory)", cfg.Backend.Mode)
	}
	if cfg.Backend.Mode == BackendModeRemote && cfg.Backend.URL == "" {
		return nil, fmt.Errorf("config: BACKEND_URL requerido en modo remote")
	}
	if cfg.Query.Retry < 0 || cfg.Query.Retry > 3 {
		return nil, fmt.Errorf("config: QUERY_RETRY debe estar entre 0 y 3")
	}
	if cfg.JWT.ReapEvery <= 0 {
		return nil, fmt.Errorf("config: SESSION_REAP_SECONDS debe ser mayor que 0")
	}
	if cfg.Polling.Gating != "module" && cfg.Polling.Gating != "global" {
		return nil, fmt.Errorf("config: POLLING_GATING inválido %q (module|global)", cfg.Polling.Gating)
	}
	return cfg, nil
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

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
