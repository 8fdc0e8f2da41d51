package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Artifacts struct {
		Dir            string `yaml:"dir"`
		RetentionHours int    `yaml:"retention_hours"`
	} `yaml:"artifacts"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults; environment variables override individual values.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		dec := yaml.NewDecoder(f)
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/jobs.db"
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = "public/jobs"
	}
	if cfg.Artifacts.RetentionHours == 0 {
		cfg.Artifacts.RetentionHours = 720
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads"
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ARTIFACT_DIR"); v != "" {
		cfg.Artifacts.Dir = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
}
