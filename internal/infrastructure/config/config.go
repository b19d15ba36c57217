package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env         string
	Server      ServerConfig
	Database    DatabaseConfig
	ContentGate ContentGateConfig
	Auth        AuthConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

// ContentGateConfig configura a chamada ao serviço externo de moderação de
// conteúdo. FailOpen decide a política quando o serviço está indisponível:
// true cria o comentário desbloqueado, false cria bloqueado.
type ContentGateConfig struct {
	URL      string
	Enabled  bool
	FailOpen bool
	Timeout  time.Duration
}

// AuthConfig configura a resolução de identidade.
// Mode: "static" (identidade fixa de referência) ou "jwt" (claims do bearer).
type AuthConfig struct {
	Mode            string
	JWTSecret       string
	StaticEmail     string
	StaticFirstName string
	StaticLastName  string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Sem arquivo .env ainda é válido: tudo pode vir do ambiente
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CONTENT_GATE_ENABLED", true)
	viper.SetDefault("CONTENT_GATE_FAIL_OPEN", true)
	viper.SetDefault("CONTENT_GATE_TIMEOUT_MS", 3000)
	viper.SetDefault("AUTH_MODE", "static")
	viper.SetDefault("AUTH_STATIC_EMAIL", "testowy@test.pl")
	viper.SetDefault("AUTH_STATIC_FIRST_NAME", "Jan")
	viper.SetDefault("AUTH_STATIC_LAST_NAME", "Testowy")

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:    viper.GetString("PORT"),
			Host:    viper.GetString("HOST"),
			BaseURL: viper.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			MaxConns:    viper.GetInt("DB_MAX_CONNS"),
			MinConns:    viper.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: viper.GetInt("DB_MAX_IDLE_TIME"),
		},
		ContentGate: ContentGateConfig{
			URL:      viper.GetString("CONTENT_GATE_URL"),
			Enabled:  viper.GetBool("CONTENT_GATE_ENABLED"),
			FailOpen: viper.GetBool("CONTENT_GATE_FAIL_OPEN"),
			Timeout:  time.Duration(viper.GetInt("CONTENT_GATE_TIMEOUT_MS")) * time.Millisecond,
		},
		Auth: AuthConfig{
			Mode:            viper.GetString("AUTH_MODE"),
			JWTSecret:       viper.GetString("JWT_SECRET"),
			StaticEmail:     viper.GetString("AUTH_STATIC_EMAIL"),
			StaticFirstName: viper.GetString("AUTH_STATIC_FIRST_NAME"),
			StaticLastName:  viper.GetString("AUTH_STATIC_LAST_NAME"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	return config, nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
