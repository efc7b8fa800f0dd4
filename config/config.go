package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Log      Log
	Database Database
	Gemini   Gemini
}

type Server struct {
	Host         string
	Port         string
	Mode         string
	AllowOrigins []string
	MaxBodyBytes int64
}

type Log struct {
	Level  string
	Format string
}

type Database struct {
	Driver          string // "sqlite" or "postgres"
	SQLitePath      string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Gemini holds the static generation settings. They are applied once when the
// model is constructed, never per request.
type Gemini struct {
	ApiKey          string
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
	Timeout         time.Duration
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_SQLITE_PATH", "./medical_advice.db")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 10)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", time.Hour)

	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_TEMPERATURE", 0.7)
	v.SetDefault("GEMINI_TOP_P", 0.95)
	v.SetDefault("GEMINI_TOP_K", 40)
	v.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 2048)
	v.SetDefault("GEMINI_TIMEOUT", 60*time.Second)
}

func NewConfig() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(path)

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, falling back to environment")
	}

	var config Config

	config.Server.Host = v.GetString("SERVER_HOST")
	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.Mode = v.GetString("GIN_MODE")
	config.Server.AllowOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))
	config.Server.MaxBodyBytes = v.GetInt64("MAX_BODY_BYTES")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Format = v.GetString("LOG_FORMAT")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.SQLitePath = v.GetString("DATABASE_SQLITE_PATH")
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")
	config.Database.MaxIdleConns = v.GetInt("DATABASE_MAX_IDLE_CONNS")
	config.Database.ConnMaxLifetime = v.GetDuration("DATABASE_CONN_MAX_LIFETIME")

	config.Gemini.ApiKey = v.GetString("GEMINI_API_KEY")
	config.Gemini.Model = v.GetString("GEMINI_MODEL")
	config.Gemini.Temperature = float32(v.GetFloat64("GEMINI_TEMPERATURE"))
	config.Gemini.TopP = float32(v.GetFloat64("GEMINI_TOP_P"))
	config.Gemini.TopK = v.GetInt32("GEMINI_TOP_K")
	config.Gemini.MaxOutputTokens = v.GetInt32("GEMINI_MAX_OUTPUT_TOKENS")
	config.Gemini.Timeout = v.GetDuration("GEMINI_TIMEOUT")

	if config.Database.Driver != "sqlite" && config.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want sqlite or postgres)", config.Database.Driver)
	}
	if config.Database.Driver == "postgres" && config.Database.Name == "" {
		return nil, fmt.Errorf("DATABASE_NAME is required when DATABASE_DRIVER=postgres")
	}

	log.Info().
		Str("addr", config.Server.Addr()).
		Str("db_driver", config.Database.Driver).
		Str("gemini_model", config.Gemini.Model).
		Bool("gemini_key_set", config.Gemini.ApiKey != "").
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
