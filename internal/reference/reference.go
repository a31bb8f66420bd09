// Package reference holds the immutable vocabularies and role profiles used by
// the extractors and the scoring engine.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var embedded []byte

// Data is loaded once at startup and shared read-only between requests.
type Data struct {
	DefaultRole          string        `yaml:"default_role"`
	DefaultSummary       string        `yaml:"default_summary"`
	Technologies         []string      `yaml:"technologies"`
	TechnicalTerms       []string      `yaml:"technical_terms"`
	CertificationIssuers []string      `yaml:"certification_issuers"`
	Languages            []string      `yaml:"languages"`
	ProficiencyLevels    []string      `yaml:"proficiency_levels"`
	Roles                []RoleProfile `yaml:"roles"`
}

// RoleProfile lists what a target role expects from a resume.
type RoleProfile struct {
	Name               string   `yaml:"name" json:"name"`
	RequiredSkills     []string `yaml:"required_skills" json:"requiredSkills"`
	PreferredSkills    []string `yaml:"preferred_skills" json:"preferredSkills"`
	KeyTerms           []string `yaml:"key_terms" json:"keyTerms"`
	ProjectSuggestions []string `yaml:"project_suggestions" json:"projectSuggestions"`
}

var (
	defaultOnce sync.Once
	defaultData *Data
	defaultErr  error
)

// Default returns the built-in reference data. It panics if the embedded
// document is broken, which can only happen at build time.
func Default() *Data {
	defaultOnce.Do(func() {
		defaultData, defaultErr = parse(embedded, nil)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded reference data: %v", defaultErr))
	}
	return defaultData.clone()
}

// Load returns the built-in data with the YAML document at path applied on
// top. Keys present in the file replace the built-in values entirely; absent
// keys keep them. An empty path returns the built-in data.
func Load(path string) (*Data, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference file %q: %w", path, err)
	}

	data, err := parse(raw, Default())
	if err != nil {
		return nil, fmt.Errorf("reference file %q: %w", path, err)
	}
	return data, nil
}

func parse(raw []byte, base *Data) (*Data, error) {
	data := base
	if data == nil {
		data = &Data{}
	}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	data.DefaultSummary = strings.TrimSpace(data.DefaultSummary)
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks the invariants the pipeline relies on.
func (d *Data) Validate() error {
	if d.DefaultSummary == "" {
		return fmt.Errorf("default_summary must not be empty")
	}
	if len(d.Roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}

	seen := make(map[string]struct{}, len(d.Roles))
	for i, role := range d.Roles {
		key := roleKey(role.Name)
		if key == "" {
			return fmt.Errorf("role #%d has no name", i+1)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("role %q is declared twice", role.Name)
		}
		seen[key] = struct{}{}
	}

	if _, ok := seen[roleKey(d.DefaultRole)]; !ok {
		return fmt.Errorf("%w: %q", ErrNoDefaultRole, d.DefaultRole)
	}
	return nil
}

func (d *Data) clone() *Data {
	out := *d
	out.Technologies = slices.Clone(d.Technologies)
	out.TechnicalTerms = slices.Clone(d.TechnicalTerms)
	out.CertificationIssuers = slices.Clone(d.CertificationIssuers)
	out.Languages = slices.Clone(d.Languages)
	out.ProficiencyLevels = slices.Clone(d.ProficiencyLevels)
	out.Roles = make([]RoleProfile, len(d.Roles))
	for i, role := range d.Roles {
		out.Roles[i] = role.clone()
	}
	return &out
}

func (p RoleProfile) clone() RoleProfile {
	return RoleProfile{
		Name:               p.Name,
		RequiredSkills:     nonNil(slices.Clone(p.RequiredSkills)),
		PreferredSkills:    nonNil(slices.Clone(p.PreferredSkills)),
		KeyTerms:           nonNil(slices.Clone(p.KeyTerms)),
		ProjectSuggestions: nonNil(slices.Clone(p.ProjectSuggestions)),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func roleKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
