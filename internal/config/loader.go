package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrRegistryNotFound is returned when the registry file does not exist.
var ErrRegistryNotFound = errors.New("registry file not found")

// RegistryFile is the YAML shape of an external operator registry:
//
//	operators:
//	  - mcc: 310
//	    mnc: 410
//	    name: AT&T
//	colors:
//	  AT&T: blue
type RegistryFile struct {
	// Operators lists the (MCC, MNC) to carrier-name mappings.
	Operators []RegistryEntry `yaml:"operators"`

	// Colors maps carrier names to map marker colors.
	Colors map[string]string `yaml:"colors"`
}

// RegistryEntry is one operator mapping in a registry file.
type RegistryEntry struct {
	MCC  int    `yaml:"mcc"`
	MNC  int    `yaml:"mnc"`
	Name string `yaml:"name"`
}

// LoadRegistryFile loads an operator registry and carrier colors from a YAML
// file. If the file does not exist, it returns ErrRegistryNotFound so the
// caller can decide whether a missing file is fatal.
//
// Entries without a name are rejected: a registry that maps a PLMN to an
// empty operator would make the mismatch heuristic compare against nothing.
func LoadRegistryFile(path string) (*OperatorRegistry, CarrierColors, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided registry path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrRegistryNotFound
		}
		return nil, nil, err
	}

	var rf RegistryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, nil, fmt.Errorf("parse registry file: %w", err)
	}

	operators := make(map[PLMN]string, len(rf.Operators))
	for _, e := range rf.Operators {
		if e.Name == "" {
			return nil, nil, fmt.Errorf("registry entry %d-%d has no operator name", e.MCC, e.MNC)
		}
		operators[PLMN{MCC: e.MCC, MNC: e.MNC}] = e.Name
	}

	colors := CarrierColors(rf.Colors)
	if colors == nil {
		colors = make(CarrierColors)
	}

	return NewOperatorRegistry(operators), colors, nil
}
