package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del harness (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	Webapp  WebappConfig
	Browser BrowserConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, ci, production
	Name     string
	LogLevel string
}

// Drivers de base de datos soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DBConfig configuración de la base de datos de la aplicación bajo prueba.
// Si DatabaseURL no está vacío, se usa como connection string completo; User y Password
// (si están definidos) reemplazan las credenciales de la URL.
type DBConfig struct {
	Driver      string // sqlite (embebida, modo hermético) o postgres
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
}

// ConnectionString devuelve el DSN a usar según el driver.
func (c DBConfig) ConnectionString() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.withCredentials(c.DatabaseURL)
	}
	return c.DSN()
}

// InMemory indica si la base es una SQLite en memoria, que se pierde al cerrar la conexión.
func (c DBConfig) InMemory() bool {
	if c.Driver != DriverSQLite {
		return false
	}
	return c.SQLitePath == "" || strings.Contains(c.SQLitePath, ":memory:") || strings.Contains(c.SQLitePath, "mode=memory")
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

func (c DBConfig) withCredentials(raw string) string {
	if c.User == "" && c.Password == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	user := c.User
	if user == "" && u.User != nil {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.Password)
	return u.String()
}

// WebappConfig ubicación de la aplicación web bajo prueba.
// BaseURL vacío significa levantar el stub embebido (modo hermético).
type WebappConfig struct {
	BaseURL     string
	ContextPath string
}

// Stubbed indica si las pruebas de UI usan el front end embebido.
func (c WebappConfig) Stubbed() bool {
	return c.BaseURL == ""
}

// Drivers de navegador soportados.
const (
	BrowserHTTP   = "http"
	BrowserChrome = "chrome"
)

// BrowserConfig configuración del cliente que recorre las páginas.
type BrowserConfig struct {
	Driver        string
	Headless      bool
	ScriptTimeout time.Duration // límite para scripts de página (solo chrome)
	HTTPTimeout   time.Duration
}

// HTTPConfig dirección de escucha del stub cuando se ejecuta con `acceptance serve`.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_DRIVER, DATABASE_URL, WEBAPP_URL, etc.
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "webapp-acceptance"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", "")),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", ""),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "vvs_webappdemo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			SQLitePath:  getString(v, "SQLITE_PATH", ":memory:"),
		},
		Webapp: WebappConfig{
			BaseURL:     getString(v, "WEBAPP_URL", ""),
			ContextPath: getString(v, "WEBAPP_CONTEXT_PATH", "/VVS_webappdemo"),
		},
		Browser: BrowserConfig{
			Driver:        strings.ToLower(getString(v, "BROWSER_DRIVER", BrowserHTTP)),
			Headless:      getBool(v, "BROWSER_HEADLESS", true),
			ScriptTimeout: time.Duration(getInt(v, "BROWSER_SCRIPT_TIMEOUT_SECONDS", 15)) * time.Second,
			HTTPTimeout:   time.Duration(getInt(v, "HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	// Sin driver explícito: postgres si hay datos de conexión, si no la base embebida.
	if cfg.DB.Driver == "" {
		if cfg.DB.DatabaseURL != "" || v.IsSet("DB_HOST") {
			cfg.DB.Driver = DriverPostgres
		} else {
			cfg.DB.Driver = DriverSQLite
		}
	}
	if cfg.DB.Driver == DriverPostgres && cfg.DB.User == "" && cfg.DB.DatabaseURL == "" {
		cfg.DB.User = "postgres"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER no soportado: %q", c.DB.Driver)
	}
	switch c.Browser.Driver {
	case BrowserHTTP, BrowserChrome:
	default:
		return fmt.Errorf("BROWSER_DRIVER no soportado: %q", c.Browser.Driver)
	}
	if c.Webapp.BaseURL != "" {
		if _, err := url.Parse(c.Webapp.BaseURL); err != nil {
			return fmt.Errorf("WEBAPP_URL inválida: %w", err)
		}
	}
	if c.Browser.ScriptTimeout <= 0 {
		return fmt.Errorf("BROWSER_SCRIPT_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
