package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	EngineModeLocal  = "local"
	EngineModeRemote = "remote"
)

var (
	ErrUnknownEngineMode = errors.New("unknown engine mode")
	ErrRemoteURLNotSet   = errors.New("remote engine url is empty")
)

type Config struct {
	LogLevel   string         `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string         `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string         `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis          `yaml:"redis"`
	Engine     Engine         `yaml:"engine"`
	Players    entity.Players `yaml:"players"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env-default:"24h"`
}

// Engine configures where automated moves come from and how long a search may run.
// DisableHeuristic is phrased negatively because cleanenv re-applies defaults over zero values.
type Engine struct {
	Mode             string        `yaml:"mode" env:"ENGINE_MODE" env-default:"local"`
	RemoteURL        string        `yaml:"remote-url" env:"ENGINE_REMOTE_URL"`
	DisableHeuristic bool          `yaml:"disable-heuristic"`
	SearchTimeout    time.Duration `yaml:"search-timeout" env-default:"10s"`
	BoardDimension   int           `yaml:"board-dimension" env-default:"3"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the file at path, applies env overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config.Players = config.Players.WithDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	if err := entity.ValidateDimension(that.Engine.BoardDimension); err != nil {
		return err
	}

	if err := that.Players.Validate(); err != nil {
		return err
	}

	switch that.Engine.Mode {
	case EngineModeLocal:
	case EngineModeRemote:
		if that.Engine.RemoteURL == "" {
			return ErrRemoteURLNotSet
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngineMode, that.Engine.Mode)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
