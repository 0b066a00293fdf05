package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/bizcase/internal/calculation"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/rgehrsitz/bizcase/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	Comparator        *Comparator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry

	// Now stamps generated documents; defaults to time.Now
	Now func() time.Time
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		Comparator:        NewComparator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
		Now:               time.Now,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the base scenario; defaults to its title
	Templates        []string // Each template becomes one alternative
	Transforms       []string // Transform specs applied together as one "custom" alternative
}

// Compare runs the base scenario and each requested variant through the
// engine and diffs every variant against the base
func (ce *CompareEngine) Compare(base domain.ScenarioInputs, options CompareOptions) (*ComparisonSet, error) {
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("no templates or transforms to compare against")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = base.Title
	}

	baseDoc, err := ce.document(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	compSet := &ComparisonSet{BaseScenarioName: baseName}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(&base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altDoc, err := ce.document(*modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		compSet.Alternatives = append(compSet.Alternatives, Comparison{
			ScenarioName: baseName + "_" + template.Name,
			Description:  template.Description,
			Rows:         ce.Comparator.Compare(baseDoc, altDoc),
		})
	}

	if len(options.Transforms) > 0 {
		transforms := make([]transform.ScenarioTransform, 0, len(options.Transforms))
		descriptions := make([]string, 0, len(options.Transforms))
		for _, spec := range options.Transforms {
			t, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
			}
			transforms = append(transforms, t)
			descriptions = append(descriptions, t.Description())
		}

		modified, err := transform.ApplyTransforms(&base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms: %w", err)
		}
		altDoc, err := ce.document(*modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate custom scenario: %w", err)
		}

		compSet.Alternatives = append(compSet.Alternatives, Comparison{
			ScenarioName: baseName + "_custom",
			Description:  strings.Join(descriptions, "; "),
			Rows:         ce.Comparator.Compare(baseDoc, altDoc),
		})
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareInputs computes two independent scenarios and diffs them
func (ce *CompareEngine) CompareInputs(a, b domain.ScenarioInputs, nameA, nameB string) (*ComparisonSet, error) {
	docA, err := ce.document(a)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate scenario %s: %w", nameA, err)
	}
	docB, err := ce.document(b)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate scenario %s: %w", nameB, err)
	}
	return ce.CompareDocuments(docA, docB, nameA, nameB), nil
}

// CompareDocuments diffs two previously computed documents as stored, without
// recomputing them
func (ce *CompareEngine) CompareDocuments(a, b *domain.ScenarioDocument, nameA, nameB string) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName: nameA,
		Alternatives: []Comparison{{
			ScenarioName: nameB,
			Rows:         ce.Comparator.Compare(a, b),
		}},
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func (ce *CompareEngine) document(in domain.ScenarioInputs) (*domain.ScenarioDocument, error) {
	res, err := ce.CalcEngine.Run(in)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if ce.Now != nil {
		now = ce.Now
	}
	return domain.NewScenarioDocument(res, now()), nil
}
