// Package config loads the planner scenario from defaults, an optional
// config file and PLANNER_* environment variables.
package config

import (
	"errors"
	"factory-location-planner/internal/adapters/repositories"
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/platform/logging"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "PLANNER"

type Config struct {
	Factories []FactoryConfig `mapstructure:"factories" validate:"required,min=1,dive"`
	Demand    DemandConfig    `mapstructure:"demand"`
	Search    SearchConfig    `mapstructure:"search"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
}

type FactoryConfig struct {
	X        float64 `mapstructure:"x"`
	Y        float64 `mapstructure:"y"`
	Capacity float64 `mapstructure:"capacity" validate:"gte=0"`
}

// Where wholesalers come from. Ranges are inclusive integers and only apply
// to the random source.
type DemandConfig struct {
	Source   string `mapstructure:"source"    validate:"oneof=random json"`
	SeedPath string `mapstructure:"seed_path" validate:"required_if=Source json"`
	Count    int    `mapstructure:"count"     validate:"gt=0"`
	Seed     int64  `mapstructure:"seed"`
	XMin     int    `mapstructure:"x_min"`
	XMax     int    `mapstructure:"x_max"     validate:"gtefield=XMin"`
	YMin     int    `mapstructure:"y_min"`
	YMax     int    `mapstructure:"y_max"     validate:"gtefield=YMin"`
	Min      int    `mapstructure:"min"       validate:"gte=0"`
	Max      int    `mapstructure:"max"       validate:"gtefield=Min"`
}

type RangeConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"  validate:"gtefield=Min"`
	Step float64 `mapstructure:"step" validate:"gt=0"`
}

type SearchConfig struct {
	X                 RangeConfig `mapstructure:"x"`
	Y                 RangeConfig `mapstructure:"y"`
	CandidateCapacity float64     `mapstructure:"candidate_capacity" validate:"gte=0"`
	Workers           int         `mapstructure:"workers"            validate:"gte=1"`
	Tolerance         float64     `mapstructure:"tolerance"          validate:"gt=0"`
}

type OutputConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	Plot    bool   `mapstructure:"plot"`
	JSON    bool   `mapstructure:"json"`
	Heatmap bool   `mapstructure:"heatmap"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

// Default scenario: three fixed factories, eight random wholesalers.
func setDefaults(v *viper.Viper) {
	v.SetDefault("factories", []map[string]any{
		{"x": 10, "y": 260, "capacity": 400},
		{"x": 130, "y": 120, "capacity": 200},
		{"x": 50, "y": 70, "capacity": 300},
	})

	v.SetDefault("demand.source", "random")
	v.SetDefault("demand.seed_path", "")
	v.SetDefault("demand.count", 8)
	v.SetDefault("demand.seed", 42)
	v.SetDefault("demand.x_min", 0)
	v.SetDefault("demand.x_max", 360)
	v.SetDefault("demand.y_min", 0)
	v.SetDefault("demand.y_max", 325)
	v.SetDefault("demand.min", 50)
	v.SetDefault("demand.max", 150)

	v.SetDefault("search.x.min", 0)
	v.SetDefault("search.x.max", 360)
	v.SetDefault("search.x.step", 2)
	v.SetDefault("search.y.min", 0)
	v.SetDefault("search.y.max", 325)
	v.SetDefault("search.y.step", 2)
	v.SetDefault("search.candidate_capacity", 900)
	v.SetDefault("search.workers", 1)
	v.SetDefault("search.tolerance", 1e-9)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.plot", true)
	v.SetDefault("output.json", true)
	v.SetDefault("output.heatmap", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// LoadEnv reads .env files into the process environment. A missing file is
// reported as an error the caller may ignore.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply; otherwise its extension selects
// the format (yaml, json, toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

// Validate checks field constraints and the cross-field rules that tags
// cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if err := domain.ValidateFactories(c.DomainFactories()); err != nil {
		return fmt.Errorf("validate: factories: %w", err)
	}
	if err := c.GridX().Validate(); err != nil {
		return fmt.Errorf("validate: search.x: %w", err)
	}
	if err := c.GridY().Validate(); err != nil {
		return fmt.Errorf("validate: search.y: %w", err)
	}

	// Worst case for generated demand: every wholesaler at the upper bound.
	if c.Demand.Source == "random" {
		worst := float64(c.Demand.Count) * float64(c.Demand.Max)
		supply := domain.TotalCapacity(c.DomainFactories()) + c.Search.CandidateCapacity
		if supply < worst {
			return fmt.Errorf("validate: %w: capacity %g with candidate, worst-case demand %g",
				domain.ErrInsufficientCandidateCapacity, supply, worst)
		}
	}

	return nil
}

// Fixed factories numbered from 1 in configuration order.
func (c *Config) DomainFactories() []domain.Factory {
	out := make([]domain.Factory, len(c.Factories))
	for i, f := range c.Factories {
		out[i] = domain.NewFactory(i+1, domain.Point{X: f.X, Y: f.Y}, f.Capacity)
	}
	return out
}

func (c *Config) GridX() domain.GridRange {
	return domain.GridRange{Min: c.Search.X.Min, Max: c.Search.X.Max, Step: c.Search.X.Step}
}

func (c *Config) GridY() domain.GridRange {
	return domain.GridRange{Min: c.Search.Y.Min, Max: c.Search.Y.Max, Step: c.Search.Y.Step}
}

func (c *Config) RandomDemand() repositories.RandomDemandConfig {
	d := c.Demand
	return repositories.RandomDemandConfig{
		Count:     d.Count,
		Seed:      d.Seed,
		XMin:      d.XMin,
		XMax:      d.XMax,
		YMin:      d.YMin,
		YMax:      d.YMax,
		DemandMin: d.Min,
		DemandMax: d.Max,
	}
}

func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

// IsValidation reports whether err comes from struct tag validation.
func IsValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
