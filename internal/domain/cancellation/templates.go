package cancellation

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

type Template struct {
	Type        PolicyType   `yaml:"type"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Rules       []RefundRule `yaml:"rules"`
	Fee         Fee          `yaml:"fee"`
}

// Spec turns the template into a creatable policy for the provider.
func (t Template) Spec(providerID uuid.UUID, name string) PolicySpec {
	if name == "" {
		name = t.Name
	}
	return PolicySpec{
		ProviderID: providerID,
		Name:       name,
		Type:       t.Type,
		Rules:      append([]RefundRule(nil), t.Rules...),
		Fee:        t.Fee,
	}
}

var (
	templatesOnce sync.Once
	templates     []Template
	templatesErr  error
)

func loadTemplates() {
	templatesErr = yaml.Unmarshal(templatesYAML, &templates)
	if templatesErr != nil {
		templatesErr = fmt.Errorf("parse policy templates: %w", templatesErr)
	}
}

func Templates() ([]Template, error) {
	templatesOnce.Do(loadTemplates)
	if templatesErr != nil {
		return nil, templatesErr
	}
	out := make([]Template, len(templates))
	copy(out, templates)
	return out, nil
}

func TemplateFor(t PolicyType) (Template, error) {
	all, err := Templates()
	if err != nil {
		return Template{}, err
	}
	for _, tpl := range all {
		if tpl.Type == t {
			return tpl, nil
		}
	}
	return Template{}, fmt.Errorf("%w: no template for %q", ErrInvalidPolicy, t)
}
