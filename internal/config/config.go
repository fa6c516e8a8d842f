package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/db"
)

// VenueTemplate declares recurring venue availability as an RRULE plus a
// daily window. Templates are expanded into dated venue slots between the
// season bounds.
type VenueTemplate struct {
	Venue string `yaml:"venue" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// SheetTabs names the spreadsheet tabs holding the three input tables
type SheetTabs struct {
	Persons string `yaml:"persons,omitempty"`
	Groups  string `yaml:"groups,omitempty"`
	Slots   string `yaml:"slots,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ProductionYear    int             `yaml:"productionYear" validate:"required"`
	Epsilon           float64         `yaml:"epsilon,omitempty" validate:"omitempty,gt=0"`
	SeasonStart       string          `yaml:"seasonStart,omitempty"`
	SeasonEnd         string          `yaml:"seasonEnd,omitempty"`
	SchedulingSheetID string          `yaml:"schedulingSheetID,omitempty"`
	SheetTabs         SheetTabs       `yaml:"sheetTabs,omitempty"`
	CredentialsPath   string          `yaml:"credentialsPath,omitempty"`
	DatabaseURL       string          `yaml:"databaseURL,omitempty"`
	CSVDir            string          `yaml:"csvDir,omitempty"`
	VenueTemplates    []VenueTemplate `yaml:"venueTemplates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from stagecall_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax, and the clock
// and date fields the struct tags cannot express
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tpl := range cfg.VenueTemplates {
		if _, err := rrule.StrToRRule(tpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in venueTemplates[%d]: %w", i, err)
		}

		start, err := interval.ParseMinute(tpl.Start)
		if err != nil {
			return fmt.Errorf("invalid start in venueTemplates[%d]: %w", i, err)
		}
		end, err := interval.ParseMinute(tpl.End)
		if err != nil {
			return fmt.Errorf("invalid end in venueTemplates[%d]: %w", i, err)
		}
		if start >= end {
			return fmt.Errorf("venueTemplates[%d]: start %s is not before end %s", i, tpl.Start, tpl.End)
		}
	}

	if len(cfg.VenueTemplates) > 0 && (cfg.SeasonStart == "" || cfg.SeasonEnd == "") {
		return fmt.Errorf("venue templates need seasonStart and seasonEnd to expand into")
	}

	var seasonStart, seasonEnd time.Time
	if cfg.SeasonStart != "" {
		var err error
		if seasonStart, err = time.Parse(db.DateFormat, cfg.SeasonStart); err != nil {
			return fmt.Errorf("invalid seasonStart %q: want YYYY-MM-DD", cfg.SeasonStart)
		}
	}
	if cfg.SeasonEnd != "" {
		var err error
		if seasonEnd, err = time.Parse(db.DateFormat, cfg.SeasonEnd); err != nil {
			return fmt.Errorf("invalid seasonEnd %q: want YYYY-MM-DD", cfg.SeasonEnd)
		}
	}
	if !seasonStart.IsZero() && !seasonEnd.IsZero() && seasonEnd.Before(seasonStart) {
		return fmt.Errorf("seasonEnd %s is before seasonStart %s", cfg.SeasonEnd, cfg.SeasonStart)
	}

	return nil
}

// Season returns the parsed season bounds. Validate has already checked
// the formats.
func (c *Config) Season() (time.Time, time.Time) {
	start, _ := time.Parse(db.DateFormat, c.SeasonStart)
	end, _ := time.Parse(db.DateFormat, c.SeasonEnd)
	return start, end
}

// CSVPaths returns the three input file paths under the configured CSV
// directory.
func (c *Config) CSVPaths() (persons, groups, slots string) {
	return filepath.Join(c.CSVDir, "persons.csv"),
		filepath.Join(c.CSVDir, "groups.csv"),
		filepath.Join(c.CSVDir, "slots.csv")
}

func applyDefaults(cfg *Config) {
	if cfg.SheetTabs.Persons == "" {
		cfg.SheetTabs.Persons = "persons"
	}
	if cfg.SheetTabs.Groups == "" {
		cfg.SheetTabs.Groups = "groups"
	}
	if cfg.SheetTabs.Slots == "" {
		cfg.SheetTabs.Slots = "slots"
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "service_account.json"
	}
}

// findConfigFile searches for stagecall_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "stagecall_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
