package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/bizcase/internal/domain"
)

// Formatter renders a computed scenario in one output format
type Formatter interface {
	Name() string
	Format(res *domain.ScenarioResult) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(res *domain.ScenarioResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(res *domain.ScenarioResult) ([]byte, error) {
	return f.F(res)
}

// formatterAliases maps every accepted --format value to a constructor
var formatterAliases = map[string]func() Formatter{
	"console": func() Formatter { return ConsoleFormatter{} },
	"table":   func() Formatter { return ConsoleFormatter{} },
	"json":    func() Formatter { return JSONFormatter{Pretty: true} },
	"yaml":    func() Formatter { return YAMLFormatter{} },
	"csv":     func() Formatter { return CSVFormatter{} },
	"xlsx":    func() Formatter { return XLSXFormatter{} },
	"excel":   func() Formatter { return XLSXFormatter{} },
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	ctor, ok := formatterAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return ctor()
}

// AvailableFormatAliases lists the accepted format names, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatterAliases))
	for name := range formatterAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension used when a format is written to disk
func Extension(f Formatter) string {
	switch f.Name() {
	case "console":
		return "txt"
	default:
		return f.Name()
	}
}

// FileName builds the export name, e.g. business_case_Buy_20250601_120000.json
func FileName(res *domain.ScenarioResult, ext string, now time.Time) string {
	return fmt.Sprintf("business_case_%s_%s.%s",
		res.Inputs.AcquisitionStrategy.Slug(), now.Format("20060102_150405"), ext)
}

// WriteFormatted formats res and writes it to a timestamped file in the
// current directory, returning the file name
func WriteFormatted(f Formatter, res *domain.ScenarioResult, ext string) (string, error) {
	data, err := f.Format(res)
	if err != nil {
		return "", err
	}
	filename := FileName(res, ext, time.Now())
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
