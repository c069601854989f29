package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "INVENTARIO"
	configFileEnvName = "INVENTARIO_CONFIG_FILE"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	EnvDevelopment = "development"
)

type httpConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type storageConfig struct {
	Driver string `mapstructure:"driver"`
}

type mongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type postgresConfig struct {
	URL string `mapstructure:"url"`
}

type redisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type jwtConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type alertsConfig struct {
	SummaryInterval time.Duration `mapstructure:"summary_interval"`
}

type Config struct {
	AppName  string         `mapstructure:"app_name"`
	Env      string         `mapstructure:"env"`
	LogLevel string         `mapstructure:"log_level"`
	HTTP     httpConfig     `mapstructure:"http"`
	Storage  storageConfig  `mapstructure:"storage"`
	Mongo    mongoConfig    `mapstructure:"mongo"`
	Postgres postgresConfig `mapstructure:"postgres"`
	Redis    redisConfig    `mapstructure:"redis"`
	JWT      jwtConfig      `mapstructure:"jwt"`
	Alerts   alertsConfig   `mapstructure:"alerts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "inventario")
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log_level", "info")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.driver", DriverMongo)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "inventario")
	v.SetDefault("postgres.url", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 30*24*time.Hour)
	v.SetDefault("alerts.summary_interval", 24*time.Hour)
}

// Load resolves the configuration from defaults, an optional YAML file, a .env
// file and INVENTARIO_* environment variables, in increasing precedence.
// The --config flag is registered on flags before args are parsed.
func Load(flags *pflag.FlagSet, args []string) (Config, error) {
	configFile := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := *configFile
	if env, ok := os.LookupEnv(configFileEnvName); ok && path == "" {
		path = env
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("mongo.uri is required with the mongo driver"))
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("postgres.url is required with the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.JWT.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("jwt.secret is required outside development"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	if c.Alerts.SummaryInterval <= 0 {
		errs = append(errs, errors.New("alerts.summary_interval must be positive"))
	}

	return errors.Join(errs...)
}
