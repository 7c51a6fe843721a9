package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPattern ищет ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Извлекаем имя переменной и значение по умолчанию
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		// Пытаемся получить значение из переменных окружения
		value := os.Getenv(varName)
		if value == "" {
			// Если переменная не установлена, используем значение по умолчанию
			return defaultValue
		}
		return value
	})
}

// LoadEnv загружает .env файлы, если они есть. Уже заданные переменные не перезаписываются.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("godotenv.Load %s: %w", f, err)
		}
	}
	return nil
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации
// Использует generic для работы с произвольным типом конфигурации
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// Если значение выглядит как число или boolean, пытаемся распарсить
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load загружает .env и config файл, заполняет пропущенные секции и проверяет результат
func Load(configFile string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg, err := InitConfig[Config](configFile)
	if err != nil {
		return nil, err
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Env == "" {
		c.Logger.Env = "local"
	}
	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	if c.Server.PortHTTP == 0 {
		c.Server.PortHTTP = 5000
	}
	if c.Server.GracefulShutdownTimeout == 0 {
		c.Server.GracefulShutdownTimeout = 10
	}
	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Gateway.CORSAllowedOrigins == "" {
		c.Gateway.CORSAllowedOrigins = "http://localhost:8080"
	}
	if c.Storage == nil {
		c.Storage = &ConfigStorage{}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Auth == nil {
		c.Auth = &ConfigAuth{}
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.PortHTTP < 0 || c.Server.PortHTTP > 65535 {
		errs = append(errs, fmt.Errorf("server.port_http: %d is out of range", c.Server.PortHTTP))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverMySQL, DriverPostgres, DriverMongo:
		if c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}

	if c.Storage.Driver == DriverMongo && c.Storage.Database == "" {
		errs = append(errs, errors.New("storage.database is required for driver \"mongo\""))
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}

	return errors.Join(errs...)
}
