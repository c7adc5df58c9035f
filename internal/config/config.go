package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/loykin/relaunch/internal/logger"
)

// DefaultGracePeriod is the wait between the stop phase and the launch phase.
// Termination is asynchronous; launching immediately risks the new instance
// contending for the UI port with a not-yet-exited predecessor.
const DefaultGracePeriod = 3 * time.Second

// DashboardConfig describes the process that gets relaunched.
type DashboardConfig struct {
	Name        string   `toml:"name" mapstructure:"name"`
	Command     string   `toml:"command" mapstructure:"command"`
	WorkDir     string   `toml:"workdir" mapstructure:"workdir"`
	Env         []string `toml:"env" mapstructure:"env"`
	RequiredEnv []string `toml:"required_env" mapstructure:"required_env"`
	URL         string   `toml:"url" mapstructure:"url"`
	Pattern     string   `toml:"pattern" mapstructure:"pattern"`
	PIDFile     string   `toml:"pidfile" mapstructure:"pidfile"`
}

// TargetConfig is a stop-only target: a running process identified by a
// substring of its command line.
type TargetConfig struct {
	Name    string `toml:"name" mapstructure:"name"`
	Pattern string `toml:"pattern" mapstructure:"pattern"`
}

type HistoryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// Config is the top-level TOML structure.
type Config struct {
	GracePeriod time.Duration   `toml:"grace_period" mapstructure:"grace_period"`
	Env         []string        `toml:"env" mapstructure:"env"`
	Dashboard   DashboardConfig `toml:"dashboard" mapstructure:"dashboard"`
	Collectors  []TargetConfig  `toml:"collectors" mapstructure:"collectors"`
	Log         logger.Config   `toml:"log" mapstructure:"log"`
	History     HistoryConfig   `toml:"history" mapstructure:"history"`
}

// Default returns the embedded configuration so a zero-config invocation
// works out of the box: the stock dashboard plus its collector daemons.
func Default() Config {
	c := baseConfig()
	c.Dashboard = DashboardConfig{
		Name:        "dashboard",
		Command:     "streamlit run app.py",
		RequiredEnv: []string{"CLAUDE_ADMIN_API_KEY"},
		URL:         "http://localhost:8501",
	}
	c.Collectors = []TargetConfig{
		{Name: "collector", Pattern: "collector.py"},
	}
	c.applyFallbacks()
	return c
}

// baseConfig carries only the settings every deployment shares. Targets and
// required_env are deliberately absent: a config file that names its own
// dashboard must not inherit stop patterns or credential checks meant for
// the stock one.
func baseConfig() Config {
	return Config{
		GracePeriod: DefaultGracePeriod,
		Log: logger.Config{
			Slog: logger.SlogConfig{
				Level:  logger.LevelInfo,
				Format: logger.FormatText,
				Color:  true,
			},
		},
	}
}

// Load reads TOML configuration from path. An empty path returns Default;
// a file is layered over baseConfig only, so it fully owns its target list.
// A missing file is an error.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	cfg := baseConfig()
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyFallbacks()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFallbacks fills derived values that the file may leave empty.
func (c *Config) applyFallbacks() {
	if c.Dashboard.Name == "" {
		c.Dashboard.Name = "dashboard"
	}
	if c.Dashboard.Pattern == "" {
		c.Dashboard.Pattern = c.Dashboard.Command
	}
	for i := range c.Collectors {
		if c.Collectors[i].Name == "" {
			c.Collectors[i].Name = fmt.Sprintf("collector-%d", i+1)
		}
	}
}

// Validate rejects configurations the restart sequence cannot act on.
func (c *Config) Validate() error {
	if c.GracePeriod <= 0 {
		return fmt.Errorf("grace_period must be positive, got %s", c.GracePeriod)
	}
	if strings.TrimSpace(c.Dashboard.Command) == "" {
		return fmt.Errorf("dashboard command is required")
	}
	if strings.TrimSpace(c.Dashboard.Pattern) == "" {
		return fmt.Errorf("dashboard pattern is required")
	}
	for _, t := range c.Collectors {
		if strings.TrimSpace(t.Pattern) == "" {
			return fmt.Errorf("collector %q: pattern is required", t.Name)
		}
	}
	for i, kv := range c.Env {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("env[%d] %q is invalid, must be in KEY=VALUE format", i, kv)
		}
	}
	for i, kv := range c.Dashboard.Env {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("dashboard env[%d] %q is invalid, must be in KEY=VALUE format", i, kv)
		}
	}
	return nil
}

// Targets returns every stop target in order: the dashboard first, then the
// collectors. Each is stopped at most once per run.
func (c *Config) Targets() []TargetConfig {
	out := make([]TargetConfig, 0, 1+len(c.Collectors))
	out = append(out, TargetConfig{Name: c.Dashboard.Name, Pattern: c.Dashboard.Pattern})
	out = append(out, c.Collectors...)
	return out
}
