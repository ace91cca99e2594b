// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &reg, nil
}

// ValidateFile checks a registry file against the registry JSON Schema and
// for duplicate activity IDs.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msg := "registry does not match schema:"
		for _, desc := range result.Errors() {
			msg += "\n  - " + desc.String()
		}
		return fmt.Errorf("%s", msg)
	}

	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return fmt.Errorf("parse registry: %w", err)
	}

	seen := make(map[string]bool, len(reg.Activities))
	for _, activity := range reg.Activities {
		if seen[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		seen[activity.ID] = true
	}
	return nil
}
