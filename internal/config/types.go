package config

import "time"

// Поддерживаемые хранилища
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
	Env   string `mapstructure:"env"` // local, dev, prod
}

// ConfigServer настройки сервера
type ConfigServer struct {
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки внешнего HTTP слоя: CORS и rate limiting
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigStorage настройки хранилища заметок и пользователей
type ConfigStorage struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`      // DSN для mysql/postgres, URI для mongo
	Database string `mapstructure:"database"` // имя базы, только для mongo
}

// ConfigAuth настройки выдачи токенов
type ConfigAuth struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
}

// TokenTTL время жизни токена, по умолчанию 30 минут
func (c *ConfigAuth) TokenTTL() time.Duration {
	if c.TokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Storage *ConfigStorage `mapstructure:"storage"`
	Auth    *ConfigAuth    `mapstructure:"auth"`
}
