package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultPath = "./config/config.yaml"

type Model struct {
	Provider    string  `mapstructure:"provider"`
	Name        string  `mapstructure:"name"`
	APIKey      string  `mapstructure:"apiKey"`
	Temperature float64 `mapstructure:"temperature"`
	OllamaHost  string  `mapstructure:"ollamaHost"`
	OllamaPort  string  `mapstructure:"ollamaPort"`
}

func (m *Model) OllamaAddress() string {
	return fmt.Sprintf("http://%s:%s", m.OllamaHost, m.OllamaPort)
}

type Server struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	Name            string        `mapstructure:"name"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Pool sizes the workers that run blocking model calls.
type Pool struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Metrics struct {
	// Address of a dedicated metrics listener. Empty serves /metrics on the API router.
	Address string `mapstructure:"address"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // tint | json | text
}

// Client is handed to the browser page at render time.
type Client struct {
	MapsAPIKey string `mapstructure:"mapsApiKey"`
	BackendURL string `mapstructure:"backendUrl"`
}

type Config struct {
	Server  Server  `mapstructure:"server"`
	Model   Model   `mapstructure:"model"`
	Pool    Pool    `mapstructure:"pool"`
	Metrics Metrics `mapstructure:"metrics"`
	Log     Log     `mapstructure:"log"`
	Client  Client  `mapstructure:"client"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.name", "RERA Listings API")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)

	v.SetDefault("model.provider", "googleai")
	v.SetDefault("model.name", "gemini-1.5-flash")
	v.SetDefault("model.apiKey", "")
	v.SetDefault("model.temperature", 0.2)
	v.SetDefault("model.ollamaHost", "localhost")
	v.SetDefault("model.ollamaPort", "11434")

	v.SetDefault("pool.workers", 8)
	v.SetDefault("pool.queueSize", 64)

	v.SetDefault("metrics.address", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "tint")

	v.SetDefault("client.mapsApiKey", "")
	v.SetDefault("client.backendUrl", "")
}

// Load reads the yaml file at path, then lets the environment override it.
// A .env file in the working directory is loaded first when one exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// the provider SDK convention wins over the nested key
	if err := v.BindEnv("model.apiKey", "GOOGLE_API_KEY", "MODEL_APIKEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load(DefaultPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
