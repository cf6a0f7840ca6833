package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	GitHubHost    string   `json:"github_host"`
	Organization  string   `json:"organization"`
	MainRepo      string   `json:"main_repo"`
	DocsRepo      string   `json:"docs_repo"`
	BotLogins     []string `json:"bot_logins"`
	CacheTTLHours int      `json:"cache_ttl_hours"`
	Language      string   `json:"language"`
	PathFile      string   `json:"path_file"`
}

const (
	defaultHost     = "github.com"
	defaultOrg      = "napari"
	defaultMainRepo = "napari"
	defaultDocsRepo = "docs"
	defaultCacheTTL = 48
	defaultLang     = "en"
)

// defaultBotLogins are accounts that never receive contributor credit.
var defaultBotLogins = []string{
	"github-actions[bot]",
	"pre-commit-ci[bot]",
	"dependabot[bot]",
	"napari-bot",
}

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".napari-release-tools")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		GitHubHost:    defaultHost,
		Organization:  defaultOrg,
		MainRepo:      defaultMainRepo,
		DocsRepo:      defaultDocsRepo,
		BotLogins:     defaultBotLogins,
		CacheTTLHours: defaultCacheTTL,
		Language:      defaultLang,
		PathFile:      path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error writing default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.GitHubHost == "" {
		return errors.New("github_host must not be empty")
	}
	if config.Organization == "" {
		return errors.New("organization must not be empty")
	}
	if config.MainRepo == "" {
		return errors.New("main_repo must not be empty")
	}
	if config.DocsRepo == "" {
		return errors.New("docs_repo must not be empty")
	}
	if config.CacheTTLHours <= 0 {
		return errors.New("cache_ttl_hours must be greater than 0")
	}
	if config.Language == "" {
		return errors.New("language must not be empty")
	}
	return nil
}
