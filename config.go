package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from config.yaml when present,
// then environment variables, then flags (see main).
type Config struct {
	Port        int    `yaml:"port"`
	DBPath      string `yaml:"db"`
	BaseOrigin  string `yaml:"base_origin"`
	CompanyName string `yaml:"company_name"`
}

func defaultConfig() Config {
	return Config{
		Port:        9000,
		DBPath:      "cotacao.db",
		BaseOrigin:  "http://localhost:9000",
		CompanyName: "Your Company",
	}
}

// loadConfig reads the YAML config file at path and applies environment
// overrides. A missing file is not an error; defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.BaseOrigin = getEnv("COTACAO_BASE_ORIGIN", cfg.BaseOrigin)
	cfg.CompanyName = getEnv("COTACAO_COMPANY_NAME", cfg.CompanyName)
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
