package output

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter writes the persisted scenario document. The output can be
// loaded again by the calculate and compare commands.
type JSONFormatter struct {
	Pretty bool
	Now    func() time.Time
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(res *domain.ScenarioResult) ([]byte, error) {
	doc := domain.NewScenarioDocument(res, stamp(j.Now))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if j.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLFormatter writes the persisted scenario document as YAML
type YAMLFormatter struct {
	Now func() time.Time
}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(res *domain.ScenarioResult) ([]byte, error) {
	doc := domain.NewScenarioDocument(res, stamp(y.Now))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stamp(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
