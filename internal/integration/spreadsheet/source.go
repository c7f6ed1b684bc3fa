// Package spreadsheet parses third-party bill exports into candidate ledger rows.
package spreadsheet

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var embeddedSources []byte

// ColumnSynonyms lists the accepted header names per logical field, in priority order.
type ColumnSynonyms struct {
	Date        []string `yaml:"date"`
	Direction   []string `yaml:"direction"`
	Amount      []string `yaml:"amount"`
	Remark      []string `yaml:"remark"`
	Category    []string `yaml:"category"`
	SubCategory []string `yaml:"subcategory"`
	Discount    []string `yaml:"discount"`
	Refund      []string `yaml:"refund"`
	Tags        []string `yaml:"tags"`
}

// SourceDefinition describes the layout of one export format.
type SourceDefinition struct {
	Name              string         `yaml:"name"`
	Description       string         `yaml:"description"`
	Columns           ColumnSynonyms `yaml:"columns"`
	IncomeValues      []string       `yaml:"income_values"`
	TagDelimiters     []string       `yaml:"tag_delimiters"`
	SplitOnWhitespace bool           `yaml:"split_on_whitespace"`
}

type sourceFile struct {
	Sources []SourceDefinition `yaml:"sources"`
}

// LoadSourceDefinitions decodes and validates a YAML document of source definitions.
func LoadSourceDefinitions(data []byte) ([]SourceDefinition, error) {
	var file sourceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode source definitions: %w", err)
	}

	seen := make(map[string]bool, len(file.Sources))
	for i := range file.Sources {
		def := &file.Sources[i]
		def.Name = normalizeSource(def.Name)
		if def.Name == "" {
			return nil, fmt.Errorf("source definition %d has no name", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("source %s is defined twice", def.Name)
		}
		seen[def.Name] = true
		if len(def.Columns.Date) == 0 || len(def.Columns.Amount) == 0 {
			return nil, fmt.Errorf("source %s must declare date and amount columns", def.Name)
		}
	}

	return file.Sources, nil
}

// DefaultSourceDefinitions returns the definitions shipped with the binary.
func DefaultSourceDefinitions() ([]SourceDefinition, error) {
	return LoadSourceDefinitions(embeddedSources)
}

// LoadSourceDefinitionsFile reads definitions from path, or the built-in set when path is empty.
func LoadSourceDefinitionsFile(path string) ([]SourceDefinition, error) {
	if path == "" {
		return DefaultSourceDefinitions()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source definitions: %w", err)
	}
	return LoadSourceDefinitions(data)
}

func normalizeSource(source string) string {
	return strings.ToUpper(strings.TrimSpace(source))
}
