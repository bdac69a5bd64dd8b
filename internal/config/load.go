package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/examprep/selection.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings binds the flat environment names used in deployment to koanf
// paths. Variables not listed here are ignored.
var envMappings = map[string]string{
	"port":                   "server.port",
	"server_read_timeout":    "server.read_timeout",
	"server_write_timeout":   "server.write_timeout",
	"cors_allowed_origins":   "server.allowed_origins",
	"db_host":                "database.host",
	"db_port":                "database.port",
	"db_user":                "database.user",
	"db_password":            "database.password",
	"db_name":                "database.name",
	"db_sslmode":             "database.sslmode",
	"db_max_open_conns":      "database.max_open_conns",
	"db_max_idle_conns":      "database.max_idle_conns",
	"jwt_secret":             "auth.jwt_secret",
	"jwt_token_ttl":          "auth.token_ttl",
	"log_mode":               "log.mode",
	"log_level":              "log.level",
	"log_redaction_enabled":  "log.redact",
	"topic_mapping_path":     "catalog.topic_mapping_path",
	"bandit_sampler":         "bandit.sampler",
	"bandit_mode":            "bandit.mode",
	"bandit_questions_width": "bandit.questions_width",
	"bandit_rooms_width":     "bandit.rooms_width",
	"bandit_tasks_width":     "bandit.tasks_width",
	"bandit_task_item_count": "bandit.task_item_count",
	"bandit_seed":            "bandit.seed",
}

// Load layers configuration: struct defaults, then the optional YAML file,
// then environment variables.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file path. An empty path falls
// back to CONFIG_PATH and DefaultConfigPaths.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Comma-separated env values arrive as a single string.
	if raw, ok := k.Get("server.allowed_origins").(string); ok {
		if err := k.Set("server.allowed_origins", splitList(raw)); err != nil {
			return nil, fmt.Errorf("split allowed origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
