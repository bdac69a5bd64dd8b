package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/examprep/selection/internal/bandit"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Bandit   BanditConfig   `koanf:"bandit"`
}

type ServerConfig struct {
	Port           string        `koanf:"port"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         string `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name"`
	SSLMode      string `koanf:"sslmode"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type LogConfig struct {
	Mode   string `koanf:"mode"`
	Level  string `koanf:"level"`
	Redact bool   `koanf:"redact"`
}

type CatalogConfig struct {
	TopicMappingPath string `koanf:"topic_mapping_path"`
}

// BanditConfig tunes the category selector. Exploration widths are kept per
// call site; the questions and rooms flows have historically used different
// widths and are not unified here.
type BanditConfig struct {
	Sampler        string  `koanf:"sampler"`
	Mode           string  `koanf:"mode"`
	QuestionsWidth float64 `koanf:"questions_width"`
	RoomsWidth     float64 `koanf:"rooms_width"`
	TasksWidth     float64 `koanf:"tasks_width"`
	TaskItemCount  int     `koanf:"task_item_count"`
	Seed           uint64  `koanf:"seed"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "examprep",
			Password:     "examprep",
			Name:         "examprep",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Auth: AuthConfig{
			TokenTTL: 72 * time.Hour,
		},
		Log: LogConfig{
			Mode:   "dev",
			Level:  "info",
			Redact: true,
		},
		Catalog: CatalogConfig{
			TopicMappingPath: "config/topic_mapping.yaml",
		},
		Bandit: BanditConfig{
			Sampler:        bandit.SamplerNormal,
			Mode:           string(bandit.ModeBlend),
			QuestionsWidth: 0.2,
			RoomsWidth:     0.3,
			TasksWidth:     0.3,
			TaskItemCount:  10,
		},
	}
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server.port is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Catalog.TopicMappingPath == "" {
		return fmt.Errorf("%w: catalog.topic_mapping_path is required", ErrInvalidConfig)
	}
	if c.Bandit.Sampler != bandit.SamplerNormal && c.Bandit.Sampler != bandit.SamplerExact {
		return fmt.Errorf("%w: bandit.sampler must be %q or %q", ErrInvalidConfig, bandit.SamplerNormal, bandit.SamplerExact)
	}
	if m := bandit.Mode(c.Bandit.Mode); m != bandit.ModeBlend && m != bandit.ModeThompson {
		return fmt.Errorf("%w: bandit.mode must be %q or %q", ErrInvalidConfig, bandit.ModeBlend, bandit.ModeThompson)
	}
	widths := map[string]float64{
		"bandit.questions_width": c.Bandit.QuestionsWidth,
		"bandit.rooms_width":     c.Bandit.RoomsWidth,
		"bandit.tasks_width":     c.Bandit.TasksWidth,
	}
	for key, w := range widths {
		if err := bandit.ValidateWidth(w); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
	}
	if c.Bandit.TaskItemCount <= 0 {
		return fmt.Errorf("%w: bandit.task_item_count must be positive", ErrInvalidConfig)
	}
	return nil
}
