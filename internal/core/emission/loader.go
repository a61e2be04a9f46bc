package emission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawTable is the on-disk YAML shape:
//
//	factors:
//	  - package: com.instagram.android
//	    name: Instagram
//	    grams_per_minute: 1.05
type rawTable struct {
	Factors []Factor `yaml:"factors"`
}

// LoadFile reads a factor table from a YAML file. The table is loaded once at
// startup; there is no reload.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading emission factor file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a table from YAML bytes.
func Parse(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing emission factors: %w", err)
	}
	t, err := NewTable(raw.Factors)
	if err != nil {
		return nil, fmt.Errorf("invalid emission factors: %w", err)
	}
	return t, nil
}
