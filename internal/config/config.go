package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Format string `yaml:"format"`
		Level  string `yaml:"level"`
	} `yaml:"log"`
	Generator struct {
		// Source selects where batches come from: "llm" (default), "bank" or "remote".
		Source      string   `yaml:"source"`
		APIKey      string   `yaml:"api_key"`
		BaseURL     string   `yaml:"base_url"`
		Model       string   `yaml:"model"`
		Temperature float64  `yaml:"temperature"`
		TopK        int      `yaml:"top_k"`
		TopP        float64  `yaml:"top_p"`
		MaxTokens   int      `yaml:"max_tokens"`
		Timeout     string   `yaml:"timeout"`
		Topics      []string `yaml:"topics"`
		RemoteURL   string   `yaml:"remote_url"`
	} `yaml:"generator"`
	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL     string `yaml:"url"`
		Archive bool   `yaml:"archive"`
	} `yaml:"postgres"`
	Quiz struct {
		Count      int    `yaml:"count"`
		Difficulty string `yaml:"difficulty"`
		Language   string `yaml:"language"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty config.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Config{}
		cfg.applyEnv()
		return cfg, nil
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.Generator.APIKey == "" {
		c.Generator.APIKey = key
	}
	if url := os.Getenv("QUIZ_REMOTE_URL"); url != "" && c.Generator.RemoteURL == "" {
		c.Generator.RemoteURL = url
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
