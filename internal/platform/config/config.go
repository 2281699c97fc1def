package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	AuthDev    = "dev"
	AuthJWT    = "jwt"
	AuthRemote = "remote"
)

type Config struct {
	App  string
	HTTP HTTPConfig
	Log  LogConfig

	Store StoreConfig
	Auth  AuthConfig
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Driver string

	PostgresDSN string

	MongoURI      string
	MongoDatabase string
}

type AuthConfig struct {
	Mode string

	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string

	RemoteURL    string
	RemoteAPIKey string
}

// SetDefaults registra defaults y nombres de env en v.
// Env: clave con "." -> "_" en mayúsculas (store.driver => STORE_DRIVER).
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cat-registry")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("mongo.database", "cats")
	v.SetDefault("auth.mode", AuthDev)
	v.SetDefault("auth.jwt.ttl", 24*time.Hour)
	v.SetDefault("auth.jwt.issuer", "cat-registry")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Nombres legacy que ya usaba el deploy.
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("postgres.dsn", "POSTGRES_DSN", "DB_DSN")
}

// Load lee la config desde v (flags, env, archivo) ya inicializado con SetDefaults.
func Load(v *viper.Viper) (Config, error) {
	addr := strings.TrimSpace(v.GetString("http.addr"))
	if addr == "" {
		// PORT=9090 (estilo PaaS) solo aplica si no hay http.addr explícito.
		addr = ":8080"
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			addr = ":" + port
		}
	}

	cfg := Config{
		App: v.GetString("app.name"),
		HTTP: HTTPConfig{
			Addr:            addr,
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
			PostgresDSN:   v.GetString("postgres.dsn"),
			MongoURI:      v.GetString("mongo.uri"),
			MongoDatabase: v.GetString("mongo.database"),
		},
		Auth: AuthConfig{
			Mode:         strings.ToLower(strings.TrimSpace(v.GetString("auth.mode"))),
			JWTSecret:    v.GetString("auth.jwt.secret"),
			JWTTTL:       v.GetDuration("auth.jwt.ttl"),
			JWTIssuer:    v.GetString("auth.jwt.issuer"),
			RemoteURL:    v.GetString("auth.remote.url"),
			RemoteAPIKey: v.GetString("auth.remote.api_key"),
		},
	}

	// Sin driver explícito: Postgres si hay DSN (compat DB_DSN), si no in-memory.
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverMemory
		if strings.TrimSpace(cfg.Store.PostgresDSN) != "" {
			cfg.Store.Driver = DriverPostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Store.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres.dsn is required for the postgres driver"))
		}
	case DriverMongo:
		if strings.TrimSpace(c.Store.MongoURI) == "" {
			errs = append(errs, errors.New("mongo.uri is required for the mongo driver"))
		}
		if strings.TrimSpace(c.Store.MongoDatabase) == "" {
			errs = append(errs, errors.New("mongo.database is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}

	switch c.Auth.Mode {
	case AuthDev:
	case AuthJWT:
		if len(c.Auth.JWTSecret) < 16 {
			errs = append(errs, errors.New("auth.jwt.secret must be at least 16 characters"))
		}
		if c.Auth.JWTTTL <= 0 {
			errs = append(errs, errors.New("auth.jwt.ttl must be positive"))
		}
	case AuthRemote:
		if strings.TrimSpace(c.Auth.RemoteURL) == "" {
			errs = append(errs, errors.New("auth.remote.url is required for remote auth"))
		}
		if strings.TrimSpace(c.Auth.RemoteAPIKey) == "" {
			errs = append(errs, errors.New("auth.remote.api_key is required for remote auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth.mode %q", c.Auth.Mode))
	}

	return errors.Join(errs...)
}
