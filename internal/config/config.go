package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultName    = "mediagate"
	DefaultAddr    = ":9200"
	DefaultWorkers = 4
)

// GateConfig configures the gatectl binary. Declarations and Content are
// paths to the test discovery manifest and the content snapshot.
type GateConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	Declarations string   `toml:"declarations"`
	Content      string   `toml:"content"`
	Workers      int      `toml:"workers"`
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		Name:    DefaultName,
		Addr:    DefaultAddr,
		Workers: DefaultWorkers,
	}
}

func LoadGateConfig(path string) (GateConfig, error) {
	var cfg GateConfig
	if err := loadToml(path, &cfg); err != nil {
		return GateConfig{}, err
	}
	applyDefaults(&cfg)
	if err := ValidateGateConfig(cfg); err != nil {
		return GateConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *GateConfig) {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultName
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateGateConfig(cfg GateConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("gate config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("gate config missing addr")
	}
	if strings.TrimSpace(cfg.Declarations) == "" {
		return fmt.Errorf("gate config missing declarations path")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("gate config workers must be positive, got %d", cfg.Workers)
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
