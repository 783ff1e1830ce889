package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingSecret is returned when no JWT signing secret is configured.
var ErrMissingSecret = errors.New("jwt.secret (JWT_SECRET) must be set")

// Config is built once at startup and passed by value to the components that need it.
type Config struct {
	Port        string
	DBDSN       string
	JWTSecret   string
	BcryptCost  int
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

const (
	keyPort       = "port"
	keyDBDSN      = "db.dsn"
	keyJWTSecret  = "jwt.secret"
	keyBcryptCost = "auth.bcrypt_cost"
	keyLogLevel   = "log.level"
	keyLogFormat  = "log.format"
	keyCORS       = "cors.origins"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyDBDSN, "expenses.db")
	v.SetDefault(keyBcryptCost, bcrypt.DefaultCost)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "console")
	v.SetDefault(keyCORS, "*")
}

// New returns a viper instance that reads configs/config.yml (optional) and
// environment variables, where "db.dsn" maps to DB_DSN.
func New() *viper.Viper {
	v := viper.New()
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads an optional .env file, the optional config file and the
// environment, and validates the result.
func Load() (Config, error) {
	// .env is optional; real environment wins over it
	_ = godotenv.Load()

	v := New()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:        v.GetString(keyPort),
		DBDSN:       v.GetString(keyDBDSN),
		JWTSecret:   v.GetString(keyJWTSecret),
		BcryptCost:  v.GetInt(keyBcryptCost),
		LogLevel:    v.GetString(keyLogLevel),
		LogFormat:   v.GetString(keyLogFormat),
		CORSOrigins: splitList(v.GetString(keyCORS)),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, ErrMissingSecret
	}
	if strings.TrimSpace(cfg.DBDSN) == "" {
		return Config{}, errors.New("db.dsn (DB_DSN) must not be empty")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("auth.bcrypt_cost must be within [%d, %d], got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
