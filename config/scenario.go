package config

import (
	"fmt"
	"os"

	"agent-staffing/errors"
	"agent-staffing/models"
	"agent-staffing/validator"

	"gopkg.in/yaml.v3"
)

// Scenario bundles the service targets and shrinkage used for one calculation.
type Scenario struct {
	Service   models.ServiceParameters `yaml:"service"`
	Shrinkage models.ShrinkageConfig   `yaml:"shrinkage"`
	Capacity  int                      `yaml:"capacity"`
}

// DefaultScenario targets 80% of calls answered in 20 seconds at a 300s AHT.
func DefaultScenario() Scenario {
	return Scenario{
		Service: models.ServiceParameters{
			DefaultAHT:       300,
			ServiceLevel:     80,
			TargetAnswerTime: 20,
		},
	}
}

// LoadScenario reads a YAML scenario file on top of DefaultScenario and validates it.
// An empty path returns the defaults.
func LoadScenario(path string) (Scenario, error) {
	scenario := DefaultScenario()
	if path == "" {
		return scenario, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML scenario bytes on top of DefaultScenario and validates them.
func ParseScenario(data []byte) (Scenario, error) {
	scenario := DefaultScenario()
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", errors.ErrInvalidScenario, err)
	}
	if scenario.Capacity < 0 {
		return Scenario{}, fmt.Errorf("%w: capacity must be non-negative", errors.ErrInvalidScenario)
	}
	if errs := validator.ValidateScenario(scenario.Service, scenario.Shrinkage); len(errs) > 0 {
		return Scenario{}, fmt.Errorf("%w: %w", errors.ErrInvalidScenario, errs)
	}
	return scenario, nil
}
