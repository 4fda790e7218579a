package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/pathwise/internal/curriculum"
)

// Keys understood by Load.
const (
	KeyCurriculum      = "curriculum"
	KeyExplanations    = "explanations"
	KeyDiagnosticPass  = "thresholds.diagnostic_pass"
	KeyRemediation     = "thresholds.remediation"
	KeyTransitionDelay = "transition.delay"
	KeyLogLevel        = "log.level"
	KeyLogEnv          = "log.env"
	KeyLogFile         = "log.file"
)

const (
	configName = "pathwise"
	envPrefix  = "PATHWISE"
)

// Config is the resolved application configuration.
type Config struct {
	Curriculum      string
	Explanations    bool
	Thresholds      ThresholdOverrides
	TransitionDelay time.Duration
	Logger          LoggerConfig
	File            string // config file used, empty if none
}

// ThresholdOverrides replace the curriculum's own pass marks when set.
type ThresholdOverrides struct {
	DiagnosticPass *int
	Remediation    *int
}

// LoggerConfig configures internal/logger.
type LoggerConfig struct {
	Level string
	Env   string
	File  string
}

// New returns a viper instance carrying the defaults, config search paths
// and environment binding. Callers may bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyCurriculum, curriculum.BuiltinPrefix+"fractions")
	v.SetDefault(KeyExplanations, true)
	v.SetDefault(KeyTransitionDelay, "3s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogEnv, "development")
	v.SetDefault(KeyLogFile, "")

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and resolves every key. When
// explicitFile is set it must exist.
func Load(v *viper.Viper, explicitFile string) (*Config, error) {
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Curriculum:      v.GetString(KeyCurriculum),
		Explanations:    v.GetBool(KeyExplanations),
		TransitionDelay: v.GetDuration(KeyTransitionDelay),
		Logger: LoggerConfig{
			Level: v.GetString(KeyLogLevel),
			Env:   v.GetString(KeyLogEnv),
			File:  v.GetString(KeyLogFile),
		},
		File: v.ConfigFileUsed(),
	}
	if v.IsSet(KeyDiagnosticPass) {
		n := v.GetInt(KeyDiagnosticPass)
		cfg.Thresholds.DiagnosticPass = &n
	}
	if v.IsSet(KeyRemediation) {
		n := v.GetInt(KeyRemediation)
		cfg.Thresholds.Remediation = &n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Curriculum == "" {
		return errors.New("config: curriculum must not be empty")
	}
	if c.TransitionDelay < 0 {
		return fmt.Errorf("config: %s must not be negative, got %s", KeyTransitionDelay, c.TransitionDelay)
	}
	return nil
}

// LoadCurriculum resolves the configured curriculum and applies any
// threshold overrides.
func (c *Config) LoadCurriculum() (*curriculum.Curriculum, error) {
	cur, err := curriculum.Resolve(c.Curriculum)
	if err != nil {
		return nil, err
	}
	if c.Thresholds.DiagnosticPass == nil && c.Thresholds.Remediation == nil {
		return cur, nil
	}

	t := cur.Thresholds
	if p := c.Thresholds.DiagnosticPass; p != nil {
		t.DiagnosticPass = *p
	}
	if p := c.Thresholds.Remediation; p != nil {
		t.Remediation = *p
	}
	for name, val := range map[string]int{KeyDiagnosticPass: t.DiagnosticPass, KeyRemediation: t.Remediation} {
		if val < 0 || val > 100 {
			return nil, fmt.Errorf("config: %s must be between 0 and 100, got %d", name, val)
		}
	}
	return cur.WithThresholds(t), nil
}
