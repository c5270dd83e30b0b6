package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/grabr/internal/application"
	"github.com/inovacc/grabr/internal/encoding"
	"github.com/inovacc/grabr/internal/model"
)

const configFileName = "config.json"

// EnvAPIBaseURL overrides the GitHub API endpoint, for GitHub Enterprise
// installs.
const EnvAPIBaseURL = "GITHUB_API_URL"

// ConfigPath returns the location of the persisted configuration file.
func ConfigPath() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads the persisted configuration, falling back to defaults
// when no file exists yet.
func LoadConfig() (*model.Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFrom(path)
}

// LoadConfigFrom reads a configuration file at an explicit path.
func LoadConfigFrom(path string) (*model.Config, error) {
	cfg, err := encoding.LoadJSON[model.Config](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		def := model.DefaultConfig()
		return &def, nil
	}

	return cfg, nil
}

// SaveConfig persists the configuration to the application directory.
func SaveConfig(cfg *model.Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	return SaveConfigTo(path, cfg)
}

// SaveConfigTo persists the configuration to an explicit path.
func SaveConfigTo(path string, cfg *model.Config) error {
	if err := encoding.SaveJSON(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// ExpandTilde resolves a leading ~ to the current user's home directory.
// Paths without one are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}

// ResolveTargetDir picks the clone destination: the explicit argument
// wins, then the configured default, then ~/grabr.
func ResolveTargetDir(arg string, cfg *model.Config) (string, error) {
	switch {
	case arg != "":
		return ExpandTilde(arg)
	case cfg != nil && cfg.DefaultCloneDir != "":
		return ExpandTilde(cfg.DefaultCloneDir)
	default:
		return application.DefaultTargetDirectory()
	}
}

// ResolveAPIBase picks the API endpoint: the --api flag wins, then the
// GITHUB_API_URL environment variable, then the configured value. Empty
// means the public github.com API.
func ResolveAPIBase(flagValue string, cfg *model.Config) string {
	if flagValue != "" {
		return flagValue
	}

	if env := os.Getenv(EnvAPIBaseURL); env != "" {
		return env
	}

	if cfg != nil {
		return cfg.APIBaseURL
	}

	return ""
}

// ShowConfig prints the current configuration
func ShowConfig() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Current Configuration:")
	fmt.Println("=====================")
	fmt.Printf("Default Clone Directory: %s\n", cfg.DefaultCloneDir)
	fmt.Printf("API Base URL:            %s\n", displayAPIBase(cfg.APIBaseURL))
	fmt.Printf("Clone Protocol:          %s\n", cfg.Protocol)

	return nil
}

// ResetConfig resets the configuration to default values
func ResetConfig() error {
	defaultCfg := model.DefaultConfig()

	if err := SaveConfig(&defaultCfg); err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}

	fmt.Println("✓ Configuration reset to defaults:")
	fmt.Println("==================================")
	fmt.Printf("Default Clone Directory: %s\n", defaultCfg.DefaultCloneDir)
	fmt.Printf("API Base URL:            %s\n", displayAPIBase(defaultCfg.APIBaseURL))
	fmt.Printf("Clone Protocol:          %s\n", defaultCfg.Protocol)

	return nil
}

func displayAPIBase(base string) string {
	if base == "" {
		return "(public GitHub)"
	}

	return base
}
