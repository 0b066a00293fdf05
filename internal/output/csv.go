package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes the cash-flow series, one row per year, with raw values
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(res *domain.ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Year", "CashFlow", "Cumulative"}); err != nil {
		return nil, err
	}
	running := decimal.Zero
	for year, cf := range res.CashFlows {
		running = running.Add(cf)
		if err := w.Write([]string{strconv.Itoa(year), cf.StringFixed(2), running.StringFixed(2)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
