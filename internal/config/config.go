package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

var (
	ErrInvalidPort         = errors.New("invalid socket port")
	ErrNoAllowedOrigin     = errors.New("allowed origin is empty")
	ErrUnknownSessionStore = errors.New("unknown session store")
	ErrInvalidWebSocket    = errors.New("invalid websocket limits")
)

type Config struct {
	LogLevel       string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat      string    `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	SocketPort     string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"4000"`
	AllowedOrigin  string    `yaml:"allowed-origin" env:"ALLOWED_ORIGIN" env-default:"http://localhost:3000"`
	AllowedMethods []string  `yaml:"allowed-methods" env:"ALLOWED_METHODS" env-default:"GET,POST"`
	SessionStore   string    `yaml:"session-store" env:"SESSION_STORE" env-default:"memory"`
	Redis          Redis     `yaml:"redis"`
	WebSocket      WebSocket `yaml:"ws"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type WebSocket struct {
	SendBuffer     int   `yaml:"send-buffer" env:"WS_SEND_BUFFER" env-default:"256"`
	MaxMessageSize int64 `yaml:"max-message-size" env:"WS_MAX_MESSAGE_SIZE" env-default:"4096"`
}

// MustLoad - load all configurations in config.yml file, or from the environment only when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	port, err := strconv.Atoi(that.SocketPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, that.SocketPort)
	}

	if that.AllowedOrigin == "" {
		return ErrNoAllowedOrigin
	}

	if that.SessionStore != SessionStoreMemory && that.SessionStore != SessionStoreRedis {
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, that.SessionStore)
	}

	if that.WebSocket.SendBuffer < 1 || that.WebSocket.MaxMessageSize < 1 {
		return fmt.Errorf("%w: send buffer %d, max message size %d",
			ErrInvalidWebSocket, that.WebSocket.SendBuffer, that.WebSocket.MaxMessageSize)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
