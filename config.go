package cocktails

import "time"

type ServerConfig struct {
	Name          string `env:"SERVER_NAME,default=cocktail-recipes"`
	Version       string `env:"SERVER_VERSION,default=0.1.0"`
	HTTPAddr      string `env:"HTTP_ADDR,default=:8080"`
	WidgetBaseURL string `env:"WIDGET_BASE_URL"`
	InvocationLog string `env:"INVOCATION_LOG,default=none"`
	OtelEnabled   bool   `env:"OTEL_ENABLED,default=false"`
}

type CatalogConfig struct {
	Path         string `env:"CATALOG_PATH"`
	S3Bucket     string `env:"CATALOG_S3_BUCKET"`
	S3Key        string `env:"CATALOG_S3_KEY"`
	LoadAttempts int    `env:"CATALOG_LOAD_ATTEMPTS,default=3"`
}

type PrefsConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB,default=0"`
	TTL           time.Duration `env:"PREFS_TTL,default=0s"`
}
