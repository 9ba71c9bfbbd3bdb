package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config/config.yaml"
	defaultEnvFile    = ".env"
)

type Config struct {
	App         AppConfig         `yaml:"app" envconfig:"APP"`
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Weather     WeatherConfig     `yaml:"weather" envconfig:"WEATHER"`
	Search      SearchConfig      `yaml:"search" envconfig:"SEARCH"`
	Preferences PreferencesConfig `yaml:"preferences" envconfig:"PREFERENCES"`
	Session     SessionConfig     `yaml:"session" envconfig:"SESSION"`
	LiveSearch  LiveSearchConfig  `yaml:"live_search" envconfig:"LIVE_SEARCH"`
	Log         LogConfig         `yaml:"log" envconfig:"LOG"`
	Sentry      SentryConfig      `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name     string `yaml:"name" envconfig:"NAME"`
	Version  string `yaml:"version" envconfig:"VERSION"`
	Env      string `yaml:"env" envconfig:"ENV"`
	Timezone string `yaml:"timezone" envconfig:"TIMEZONE"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
}

type WeatherConfig struct {
	APIs         []WeatherAPIConfig `yaml:"apis" ignored:"true"`
	ForecastDays int                `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
	// OpenWeatherMapKey and GeoDBKey override the api_key of the matching
	// entry in APIs so secrets can stay out of the YAML file.
	OpenWeatherMapKey string `yaml:"-" envconfig:"OPENWEATHERMAP_KEY"`
	GeoDBKey          string `yaml:"-" envconfig:"GEODB_KEY"`
}

// WeatherAPIConfig describes one upstream; Timeout is in seconds.
type WeatherAPIConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key,omitempty"`
	Timeout int    `yaml:"timeout"`
}

type SearchConfig struct {
	Debounce      time.Duration `yaml:"debounce" envconfig:"DEBOUNCE"`
	PageSize      int           `yaml:"page_size" envconfig:"PAGE_SIZE"`
	MinPopulation int           `yaml:"min_population" envconfig:"MIN_POPULATION"`
	RPS           float64       `yaml:"rps" envconfig:"RPS"`
	Burst         int           `yaml:"burst" envconfig:"BURST"`
}

type PreferencesConfig struct {
	Backend    string `yaml:"backend" envconfig:"BACKEND"`
	RedisAddr  string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl" envconfig:"IDLE_TTL"`
	SweepSchedule string        `yaml:"sweep_schedule" envconfig:"SWEEP_SCHEDULE"`
}

type LiveSearchConfig struct {
	Port string `yaml:"port" envconfig:"PORT"`
	// PublicURL is the websocket URL handed to browsers; empty means
	// ws://localhost:<port>/ws/search.
	PublicURL string `yaml:"public_url" envconfig:"PUBLIC_URL"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file, a .env file and the
// process environment, in that order.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: defaultEnvFile}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// A missing .env is the normal case outside local development.
	_ = godotenv.Load(p.envFile)

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	cnf.applyKeyOverrides()

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if cnf.App.Name == "" {
		problems = append(problems, "app.name is required")
	}
	if cnf.Server.Port == "" {
		problems = append(problems, "server.port is required")
	}
	if cnf.Server.ReadTimeout <= 0 || cnf.Server.WriteTimeout <= 0 || cnf.Server.IdleTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	for i, api := range cnf.Weather.APIs {
		if api.Name == "" {
			problems = append(problems, fmt.Sprintf("weather.apis[%d].name is required", i))
		}
		if api.Timeout < 0 {
			problems = append(problems, fmt.Sprintf("weather.apis[%d].timeout must not be negative", i))
		}
	}
	if cnf.Weather.ForecastDays < 0 {
		problems = append(problems, "weather.forecast_days must not be negative")
	}
	if cnf.Search.Debounce < 0 {
		problems = append(problems, "search.debounce must not be negative")
	}
	switch cnf.Preferences.Backend {
	case "", "memory":
	case "redis":
		if cnf.Preferences.RedisAddr == "" {
			problems = append(problems, "preferences.redis_addr is required for the redis backend")
		}
	case "sqlite":
		if cnf.Preferences.SQLitePath == "" {
			problems = append(problems, "preferences.sqlite_path is required for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("preferences.backend %q is not supported", cnf.Preferences.Backend))
	}
	if cnf.App.Timezone != "" {
		if _, err := time.LoadLocation(cnf.App.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("app.timezone: %v", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}

	return nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(defaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "weather-forecasting",
			Version:  "1.0.0",
			Env:      "development",
			Timezone: "UTC",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			ForecastDays: 6,
		},
		Search: SearchConfig{
			Debounce:      600 * time.Millisecond,
			PageSize:      10,
			MinPopulation: 10000,
			RPS:           1,
			Burst:         1,
		},
		Preferences: PreferencesConfig{
			Backend: "memory",
		},
		Session: SessionConfig{
			IdleTTL:       30 * time.Minute,
			SweepSchedule: "@every 5m",
		},
		LiveSearch: LiveSearchConfig{
			Port: "8081",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) applyKeyOverrides() {
	for i := range c.Weather.APIs {
		switch c.Weather.APIs[i].Name {
		case "openweathermap":
			if c.Weather.OpenWeatherMapKey != "" {
				c.Weather.APIs[i].APIKey = c.Weather.OpenWeatherMapKey
			}
		case "geodb":
			if c.Weather.GeoDBKey != "" {
				c.Weather.APIs[i].APIKey = c.Weather.GeoDBKey
			}
		}
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) GetWeatherAPIByName(name string) (*WeatherAPIConfig, bool) {
	for i := range c.Weather.APIs {
		if c.Weather.APIs[i].Name == name {
			return &c.Weather.APIs[i], true
		}
	}
	return nil, false
}

func (c *Config) GetWeatherAPIs() []WeatherAPIConfig {
	return c.Weather.APIs
}

func (c *Config) LiveSearchURL() string {
	if c.LiveSearch.PublicURL != "" {
		return c.LiveSearch.PublicURL
	}
	return "ws://localhost:" + c.LiveSearch.Port + "/ws/search"
}

// Location resolves App.Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
