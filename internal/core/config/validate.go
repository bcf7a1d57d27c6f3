package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/yutounun/storetracker/internal/core/styles"
	"github.com/yutounun/storetracker/internal/core/validate"
)

const (
	minWidthPercent = 10
	minBodyPercent  = 5
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks the structural rules of the configuration. All field
// failures are reported together.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, styles.ValidateTheme),
		c.validateTracker(),
	)
}

func (c *Config) validateTracker() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Side(c.Tracker.Side); err != nil {
		errs = errs.Append("tracker.side", err)
	}
	if err := validate.Percent(c.Tracker.WidthPercent, minWidthPercent, 100); err != nil {
		errs = errs.Append("tracker.width_percent", err)
	}
	if err := validate.Percent(c.Tracker.BodyHeightPercent, minBodyPercent, 100); err != nil {
		errs = errs.Append("tracker.body_height_percent", err)
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks the files the configuration
// refers to. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateStateFile(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Demo.Watch && c.Demo.StateFile == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Demo",
			Item:     "watch",
			Message:  "watch is enabled but no state_file is set",
		})
	}

	if c.Tracker.WidthPercent < 30 {
		warnings = append(warnings, ValidationWarning{
			Category: "Tracker",
			Item:     "width_percent",
			Message:  fmt.Sprintf("panel width of %d%% leaves little room for dumps", c.Tracker.WidthPercent),
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateStateFile() error {
	if c.Demo.StateFile == "" {
		return nil
	}

	info, err := os.Stat(c.Demo.StateFile)
	if err != nil {
		return criterio.NewFieldErrors("demo.state_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("demo.state_file", fmt.Errorf("%s is a directory, not a file", c.Demo.StateFile))
	}
	return nil
}
