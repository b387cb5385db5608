package advisor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Persona is the fixed instructional identity prepended to every prompt.
type Persona struct {
	Name               string   `yaml:"name"`
	Version            string   `yaml:"version"`
	Traits             []string `yaml:"traits"`
	Expertise          []string `yaml:"expertise"`
	CommunicationStyle string   `yaml:"communication_style"`
	RiskTolerance      string   `yaml:"risk_tolerance"`
	Disclaimer         string   `yaml:"disclaimer"`
}

// DefaultPersona returns the built-in advisor identity.
func DefaultPersona() Persona {
	return Persona{
		Name:    "FinAI",
		Version: "2.0",
		Traits: []string{
			"knowledgeable",
			"cautious",
			"helpful",
			"ethical",
			"educational",
			"professional",
		},
		Expertise: []string{
			"personal finance",
			"budgeting",
			"investment basics",
			"retirement planning",
			"debt management",
			"emergency funds",
			"tax basics",
			"insurance fundamentals",
		},
		CommunicationStyle: "clear, professional, and educational",
		RiskTolerance:      "conservative",
		Disclaimer:         "Always remind users to consult certified professionals for major financial decisions",
	}
}

// LoadPersona returns the default persona with any non-empty fields from the
// YAML file at path merged over it. An empty path returns the default.
func LoadPersona(path string) (Persona, error) {
	p := DefaultPersona()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("read persona file: %w", err)
	}

	var override Persona
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Persona{}, fmt.Errorf("parse persona file: %w", err)
	}

	if override.Name != "" {
		p.Name = override.Name
	}
	if override.Version != "" {
		p.Version = override.Version
	}
	if len(override.Traits) > 0 {
		p.Traits = override.Traits
	}
	if len(override.Expertise) > 0 {
		p.Expertise = override.Expertise
	}
	if override.CommunicationStyle != "" {
		p.CommunicationStyle = override.CommunicationStyle
	}
	if override.RiskTolerance != "" {
		p.RiskTolerance = override.RiskTolerance
	}
	if override.Disclaimer != "" {
		p.Disclaimer = override.Disclaimer
	}

	return p, nil
}
