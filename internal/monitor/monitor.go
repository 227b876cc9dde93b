// Package monitor validates outgoing Adyen request bodies against JSON
// schemas before they leave the process.
package monitor

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	SchemaPayment      = "payment"
	SchemaModification = "modification"
	SchemaRecurring    = "recurring"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ContractMonitor holds the compiled request schemas.
type ContractMonitor struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles the embedded request schemas.
func New() (*ContractMonitor, error) {
	cm := &ContractMonitor{schemas: make(map[string]*gojsonschema.Schema)}
	for _, name := range []string{SchemaPayment, SchemaModification, SchemaRecurring} {
		raw, err := schemaFS.ReadFile(path.Join("schemas", name+".json"))
		if err != nil {
			return nil, fmt.Errorf("error reading schema %s: %w", name, err)
		}
		if err := cm.Register(name, raw); err != nil {
			return nil, err
		}
	}
	return cm, nil
}

// Register compiles schema and stores it under name, replacing any previous one.
func (cm *ContractMonitor) Register(name string, schema []byte) error {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return fmt.Errorf("error loading or compiling schema %s: %w", name, err)
	}
	cm.schemas[name] = compiled
	return nil
}

// Validate checks body against the named schema. It returns true if valid,
// or false and the list of violations.
func (cm *ContractMonitor) Validate(schema string, body []byte) (bool, []string, error) {
	compiled, ok := cm.schemas[schema]
	if !ok {
		return false, nil, fmt.Errorf("unknown schema %q", schema)
	}
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return false, nil, fmt.Errorf("error during validation: %w", err)
	}
	if result.Valid() {
		return true, nil, nil
	}

	var errors []string
	for _, desc := range result.Errors() {
		errors = append(errors, desc.String())
	}
	return false, errors, nil
}

// FormatErrors formats a slice of validation error strings into a single string.
func FormatErrors(validationErrors []string) string {
	if len(validationErrors) == 0 {
		return ""
	}
	return "Validation errors: " + strings.Join(validationErrors, "; ")
}
