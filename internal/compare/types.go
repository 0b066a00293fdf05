package compare

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/rgehrsitz/bizcase/internal/output"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown for a value that is missing or undefined in either scenario
const NotAvailable = "not available"

// FieldKind controls how a compared value is displayed
type FieldKind string

const (
	KindMoney   FieldKind = "money"
	KindPercent FieldKind = "percent" // stored as a fraction, shown as a percentage
	KindYears   FieldKind = "years"
	KindText    FieldKind = "text"
)

// Field is a document key compared between two scenarios
type Field struct {
	Key   string
	Label string
	Kind  FieldKind
}

// DefaultFields are the headline figures compared for every pair of scenarios.
// Cumulative checkpoints are appended per comparison.
var DefaultFields = []Field{
	{Key: "acquisition_strategy", Label: "Acquisition strategy", Kind: KindText},
	{Key: "project_cost", Label: "Project cost (Y0)", Kind: KindMoney},
	{Key: "annual_run_cost_effective", Label: "Annual run cost (effective)", Kind: KindMoney},
	{Key: "annual_total_benefit", Label: "Annual total benefit", Kind: KindMoney},
	{Key: "annual_net_benefit", Label: "Annual net benefit", Kind: KindMoney},
	{Key: "npv", Label: "NPV", Kind: KindMoney},
	{Key: "irr", Label: "IRR", Kind: KindPercent},
	{Key: "payback", Label: "Payback (years)", Kind: KindYears},
}

// Row is one compared field. A and B are nil when the field is missing or
// undefined in that scenario; Delta (B - A) is set only when both are present.
type Row struct {
	Key       string           `json:"key"`
	Label     string           `json:"label"`
	Kind      FieldKind        `json:"kind"`
	A         *decimal.Decimal `json:"a,omitempty"`
	B         *decimal.Decimal `json:"b,omitempty"`
	Delta     *decimal.Decimal `json:"delta,omitempty"`
	TextA     string           `json:"text_a,omitempty"`
	TextB     string           `json:"text_b,omitempty"`
	Available bool             `json:"available"`
}

// Comparison is scenario B set against the base scenario
type Comparison struct {
	ScenarioName string `json:"scenario_name"`
	Description  string `json:"description,omitempty"`
	Rows         []Row  `json:"rows"`
}

// Row returns the row for a key
func (c Comparison) Row(key string) (Row, bool) {
	for _, r := range c.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// ComparisonSet is a base scenario compared against one or more alternatives
type ComparisonSet struct {
	BaseScenarioName string       `json:"base_scenario_name"`
	Alternatives     []Comparison `json:"alternatives"`
	Recommendations  []string     `json:"recommendations"`
	ConfigPath       string       `json:"config_path,omitempty"`
}

// Comparator diffs two computed scenario documents field by field
type Comparator struct {
	// Fields overrides DefaultFields when set
	Fields []Field
}

// NewComparator creates a comparator over the default fields
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare produces one row per field. It never fails: a field missing from
// either document, or a nil document, yields a row that is not available.
func (c *Comparator) Compare(a, b *domain.ScenarioDocument) []Row {
	fields := c.Fields
	if fields == nil {
		fields = append(append([]Field(nil), DefaultFields...), checkpointFields(a, b)...)
	}

	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, compareField(f, a, b))
	}
	return rows
}

func compareField(f Field, a, b *domain.ScenarioDocument) Row {
	row := Row{Key: f.Key, Label: f.Label, Kind: f.Kind}
	va, okA := lookup(a, f.Key)
	vb, okB := lookup(b, f.Key)

	if f.Kind == KindText {
		if okA {
			row.TextA = valueText(va)
		}
		if okB {
			row.TextB = valueText(vb)
		}
		row.Available = okA && okB
		return row
	}

	if okA && !va.IsText {
		n := va.Number
		row.A = &n
	}
	if okB && !vb.IsText {
		n := vb.Number
		row.B = &n
	}
	if row.A != nil && row.B != nil {
		d := row.B.Sub(*row.A)
		row.Delta = &d
		row.Available = true
	}
	return row
}

func lookup(doc *domain.ScenarioDocument, key string) (domain.FieldValue, bool) {
	if doc == nil {
		return domain.FieldValue{}, false
	}
	return doc.Lookup(key)
}

func valueText(v domain.FieldValue) string {
	if v.IsText {
		return v.Text
	}
	return v.Number.String()
}

// checkpointFields lists the cumulative checkpoints found in either document
func checkpointFields(a, b *domain.ScenarioDocument) []Field {
	seen := map[int]bool{}
	for _, doc := range []*domain.ScenarioDocument{a, b} {
		if doc == nil {
			continue
		}
		for _, cp := range doc.Cumulative {
			seen[cp.Year] = true
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	fields := make([]Field, 0, len(years))
	for _, y := range years {
		fields = append(fields, Field{
			Key:   "cum_" + strconv.Itoa(y),
			Label: fmt.Sprintf("Cumulative cash (Y%d)", y),
			Kind:  KindMoney,
		})
	}
	return fields
}

// FormatValue renders a compared value for display
func FormatValue(kind FieldKind, v *decimal.Decimal) string {
	if v == nil {
		return NotAvailable
	}
	switch kind {
	case KindPercent:
		return v.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	case KindYears:
		return v.StringFixed(2)
	default:
		return output.FormatCurrency(*v)
	}
}

// FormatDelta renders a row's delta, or an empty string for text rows
func FormatDelta(r Row) string {
	if r.Kind == KindText {
		return ""
	}
	if !r.Available {
		return NotAvailable
	}
	s := FormatValue(r.Kind, r.Delta)
	if r.Delta.IsPositive() {
		s = "+" + s
	}
	return s
}

// GenerateRecommendations highlights alternatives that beat the base scenario
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.Alternatives) == 0 {
		return recommendations
	}

	// Best NPV gain over base
	var bestNPV *Comparison
	var bestNPVGain decimal.Decimal
	for i := range compSet.Alternatives {
		alt := &compSet.Alternatives[i]
		row, ok := alt.Row("npv")
		if !ok || !row.Available || !row.Delta.IsPositive() {
			continue
		}
		if bestNPV == nil || row.Delta.GreaterThan(bestNPVGain) {
			bestNPV = alt
			bestNPVGain = *row.Delta
		}
	}
	if bestNPV != nil {
		recommendations = append(recommendations,
			"Best NPV: "+bestNPV.ScenarioName+" adds "+output.FormatCurrency(bestNPVGain)+
				" of net present value over "+compSet.BaseScenarioName)
	}

	// Fastest payback; an alternative that pays back when the base never does counts
	var fastest *Comparison
	var fastestPayback decimal.Decimal
	for i := range compSet.Alternatives {
		alt := &compSet.Alternatives[i]
		row, ok := alt.Row("payback")
		if !ok || row.B == nil {
			continue
		}
		if row.A != nil && !row.B.LessThan(*row.A) {
			continue
		}
		if fastest == nil || row.B.LessThan(fastestPayback) {
			fastest = alt
			fastestPayback = *row.B
		}
	}
	if fastest != nil {
		recommendations = append(recommendations,
			"Fastest Payback: "+fastest.ScenarioName+" pays back in "+
				fastestPayback.StringFixed(2)+" years")
	}

	// Highest IRR gain
	var bestIRR *Comparison
	var bestIRRGain decimal.Decimal
	for i := range compSet.Alternatives {
		alt := &compSet.Alternatives[i]
		row, ok := alt.Row("irr")
		if !ok || !row.Available || !row.Delta.IsPositive() {
			continue
		}
		if bestIRR == nil || row.Delta.GreaterThan(bestIRRGain) {
			bestIRR = alt
			bestIRRGain = *row.Delta
		}
	}
	if bestIRR != nil {
		recommendations = append(recommendations,
			"Highest IRR: "+bestIRR.ScenarioName+" raises IRR by "+
				bestIRRGain.Mul(decimal.NewFromInt(100)).StringFixed(2)+" points")
	}

	return recommendations
}
