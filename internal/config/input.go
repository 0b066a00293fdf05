package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenario inputs from a YAML or JSON file. The file may be
// either a bare inputs file or a persisted scenario document; documents are
// recognized by their version key.
func (ip *InputParser) LoadFromFile(filename string) (domain.ScenarioInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.ScenarioInputs{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// LoadDocument loads a persisted scenario document
func (ip *InputParser) LoadDocument(filename string) (*domain.ScenarioDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseDocument(data)
}

// Parse decodes inputs from raw YAML or JSON bytes
func (ip *InputParser) Parse(data []byte) (domain.ScenarioInputs, error) {
	if IsDocument(data) {
		doc, err := ip.ParseDocument(data)
		if err != nil {
			return domain.ScenarioInputs{}, err
		}
		return doc.Inputs()
	}

	var inputs domain.ScenarioInputs
	if err := decodeStrict(data, &inputs); err != nil {
		return domain.ScenarioInputs{}, fmt.Errorf("failed to parse scenario inputs: %w", err)
	}
	return inputs, nil
}

// ParseDocument decodes a persisted scenario document and checks its version
func (ip *InputParser) ParseDocument(data []byte) (*domain.ScenarioDocument, error) {
	var doc domain.ScenarioDocument
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario document: %w", err)
	}
	if doc.Version != domain.DocumentVersion {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, doc.Version)
	}
	return &doc, nil
}

// Validate normalizes the inputs and reports what was adjusted
func (ip *InputParser) Validate(inputs domain.ScenarioInputs) ([]domain.ConsistencyWarning, error) {
	_, warnings, err := Normalize(inputs)
	if err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return warnings, nil
}

// IsDocument reports whether the data carries a top-level version key
func IsDocument(data []byte) bool {
	var header struct {
		Version *string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return false
	}
	return header.Version != nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file is empty")
		}
		return err
	}
	return nil
}
