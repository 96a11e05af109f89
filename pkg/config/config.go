package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	JWT   JWTConfig
	Auth  AuthConfig
	HTTP  HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
}

// StoreConfig selecciona el backend del roster.
type StoreConfig struct {
	Driver string // postgres | memory
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
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig operador del roster. PasswordHash es un hash bcrypt.
type AuthConfig struct {
	OperatorEmail        string
	OperatorPasswordHash string
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:         v.GetString("APP_ENV"),
			Name:        v.GetString("APP_NAME"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			SwaggerFile: v.GetString("SWAGGER_FILE"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		Auth: AuthConfig{
			OperatorEmail:        v.GetString("AUTH_OPERATOR_EMAIL"),
			OperatorPasswordHash: v.GetString("AUTH_OPERATOR_PASSWORD_HASH"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "tagihan-api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SWAGGER_FILE", "./docs/swagger.json")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "tagihan")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "tagihan-api")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es requerido")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
}
