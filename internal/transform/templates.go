package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	categoryCoverage    = "Automation Coverage"
	categoryDebt        = "Debt Remediation"
	categoryAssumptions = "Financial Assumptions"
	categoryStrategy    = "Horizon & Strategy"
)

// CreateBuiltInTemplates creates a template registry with common what-if edits
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "full_automation",
		Category:    categoryCoverage,
		Description: "Automate 100% of changes (debt impact drops to zero)",
		Transforms:  []ScenarioTransform{&SetCoverage{Pct: decimal.NewFromInt(100)}},
	})
	registry.Register(Template{
		Name:        "half_automation",
		Category:    categoryCoverage,
		Description: "Automate only 50% of changes",
		Transforms:  []ScenarioTransform{&SetCoverage{Pct: decimal.NewFromInt(50)}},
	})

	registry.Register(Template{
		Name:        "remediate_tech_debt",
		Category:    categoryDebt,
		Description: "Remediate technical debt to 25% residual for one year of its base cost",
		Transforms: []ScenarioTransform{&RemediateDebt{
			Debt: TechDebt, ResidualPct: decimal.NewFromInt(25), BaseMultiple: decimal.NewFromInt(1),
		}},
	})
	registry.Register(Template{
		Name:        "remediate_csat_debt",
		Category:    categoryDebt,
		Description: "Remediate CSAT debt to 25% residual for one year of its base cost",
		Transforms: []ScenarioTransform{&RemediateDebt{
			Debt: CSATDebt, ResidualPct: decimal.NewFromInt(25), BaseMultiple: decimal.NewFromInt(1),
		}},
	})

	registry.Register(Template{
		Name:        "conservative_benefits",
		Category:    categoryAssumptions,
		Description: "Count only half of each additional benefit",
		Transforms:  []ScenarioTransform{&ScaleBenefits{Factor: decimal.RequireFromString("0.5")}},
	})
	registry.Register(Template{
		Name:        "cost_overrun",
		Category:    categoryAssumptions,
		Description: "One-time costs run 25% over estimate",
		Transforms: []ScenarioTransform{&ScaleCosts{
			Factor: decimal.RequireFromString("1.25"), Timing: domain.TimingOneTime,
		}},
	})
	registry.Register(Template{
		Name:        "hurdle_15",
		Category:    categoryAssumptions,
		Description: "Discount cash flows at a 15% hurdle rate",
		Transforms:  []ScenarioTransform{&SetDiscountRate{Pct: decimal.NewFromInt(15)}},
	})

	registry.Register(Template{
		Name:        "horizon_3yr",
		Category:    categoryStrategy,
		Description: "Shorten the model horizon to 3 years",
		Transforms:  []ScenarioTransform{&SetHorizon{Years: 3}},
	})
	registry.Register(Template{
		Name:        "horizon_7yr",
		Category:    categoryStrategy,
		Description: "Extend the model horizon to 7 years",
		Transforms:  []ScenarioTransform{&SetHorizon{Years: 7}},
	})
	registry.Register(Template{
		Name:        "switch_strategy",
		Category:    categoryStrategy,
		Description: "Flip the acquisition strategy between Buy and Build",
		Transforms:  []ScenarioTransform{&SetStrategy{}},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.ScenarioInputs, template Template) (*domain.ScenarioInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	byCategory := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = "Other"
		}
		byCategory[category] = append(byCategory[category], t)
	}

	for _, category := range []string{categoryCoverage, categoryDebt, categoryAssumptions, categoryStrategy, "Other"} {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  bizcase compare base.yaml --with full_automation,hurdle_15\n")
	sb.WriteString("  bizcase compare base.yaml --transform remediate_debt:debt=tech,residual=10\n")

	return sb.String()
}
