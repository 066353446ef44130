package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	providerGemini    = "gemini"
	providerAnthropic = "anthropic"
	providerNone      = "none"
)

// defaultConfigFile is read when no --config flag is given
const defaultConfigFile = "config.yaml"

// Config is read once per run. JSON is valid YAML, so a config.json file
// decodes the same way
type Config struct {
	ProjectsDirectory string        `yaml:"projects_directory"`
	ScanDepth         int           `yaml:"scan_depth"`
	StateFile         string        `yaml:"state_file"`
	ChangesFile       string        `yaml:"changes_file"`
	ReportFile        string        `yaml:"report_file"`
	Report            bool          `yaml:"report"`
	OpenReport        bool          `yaml:"open_report"`
	Provider          string        `yaml:"provider"`
	Model             string        `yaml:"model"`
	GeminiAPIKey      string        `yaml:"gemini_api_key"`
	AnthropicAPIKey   string        `yaml:"anthropic_api_key"`
	AnalysisDelay     time.Duration `yaml:"analysis_delay"`
	GitTimeout        time.Duration `yaml:"git_timeout"`
	Workers           int           `yaml:"workers"`
}

// defaultConfig returns the configuration used for keys absent from the file
func defaultConfig() *Config {
	return &Config{
		ScanDepth:     4,
		StateFile:     "projects.json",
		ChangesFile:   "changes.jsonl",
		ReportFile:    "report.html",
		Report:        true,
		Provider:      providerGemini,
		AnalysisDelay: 1500 * time.Millisecond,
		GitTimeout:    defaultGitTimeout,
		Workers:       4,
	}
}

// expandPath replaces a leading ~ with the home directory
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadConfig reads and validates the config file at path. Environment
// variables, including those from a .env file in the working directory,
// supply API keys the file leaves empty
func loadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s (create it with at least projects_directory)", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.AnthropicAPIKey == "" {
		cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	base := filepath.Dir(path)
	cfg.ProjectsDirectory = resolvePath(base, cfg.ProjectsDirectory)
	if cfg.ProjectsDirectory != "" {
		if abs, err := filepath.Abs(cfg.ProjectsDirectory); err == nil {
			cfg.ProjectsDirectory = abs
		}
		if resolved, err := filepath.EvalSymlinks(cfg.ProjectsDirectory); err == nil {
			cfg.ProjectsDirectory = resolved
		}
	}
	cfg.StateFile = resolvePath(base, cfg.StateFile)
	cfg.ChangesFile = resolvePath(base, cfg.ChangesFile)
	cfg.ReportFile = resolvePath(base, cfg.ReportFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath makes a configured file path absolute relative to base.
// Empty paths stay empty and disable the corresponding output
func resolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	path = expandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.ProjectsDirectory == "" {
		return errors.New("projects_directory is required")
	}
	info, err := os.Stat(c.ProjectsDirectory)
	if err != nil {
		return fmt.Errorf("projects directory not found: %s", c.ProjectsDirectory)
	}
	if !info.IsDir() {
		return fmt.Errorf("projects directory is not a directory: %s", c.ProjectsDirectory)
	}
	if c.ScanDepth < 0 {
		return fmt.Errorf("scan_depth must not be negative, got %d", c.ScanDepth)
	}
	if c.StateFile == "" {
		return errors.New("state_file is required")
	}
	switch c.Provider {
	case providerGemini, providerAnthropic, providerNone:
	case "":
		c.Provider = providerNone
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.AnalysisDelay < 0 {
		c.AnalysisDelay = 0
	}
	if c.GitTimeout <= 0 {
		c.GitTimeout = defaultGitTimeout
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return nil
}
