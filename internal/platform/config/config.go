package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne la configuración del BFF. Todo viene de env (con .env opcional).
type Config struct {
	Port          string
	PublicBaseURL string // origen público del sitio, p.ej. https://pura-pata.com

	// API_URL del backend REST (sin /api/v1). Vacío => backend in-memory (modo dev).
	APIURL string

	Supabase SupabaseConfig

	HTTPTimeout        time.Duration
	CORSAllowedOrigins []string
	CookieSecure       bool

	Log LogConfig
}

type SupabaseConfig struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Bucket    string
}

// Enabled indica si hay proveedor de auth/storage real.
func (s SupabaseConfig) Enabled() bool {
	return strings.TrimSpace(s.URL) != "" && strings.TrimSpace(s.AnonKey) != ""
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

// Load carga un .env (si existe) y luego lee variables de entorno.
// Si se pasa envPath explícito y no existe, es error; el .env por defecto es opcional.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && strings.TrimSpace(envPath[0]) != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("could not load env file %s: %w", envPath[0], err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "https://pura-pata.com"), "/"),
		APIURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("API_URL")), "/"),
		Supabase: SupabaseConfig{
			URL:       strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
			AnonKey:   strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
			JWTSecret: strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
			Bucket:    getEnv("STORAGE_BUCKET", "dog-photos"),
		},
		HTTPTimeout:        getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", true),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "pura-pata"),
		},
	}

	if cfg.Supabase.URL != "" && cfg.Supabase.AnonKey == "" {
		return nil, errors.New("SUPABASE_ANON_KEY is required when SUPABASE_URL is set")
	}

	return cfg, nil
}

// Addr devuelve la dirección de escucha.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("warning: %s=%q is not a bool, using %t", key, valStr, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil || d <= 0 {
		log.Printf("warning: %s=%q is not a duration, using %s", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	out := make([]string, 0)
	for _, p := range strings.Split(valStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
