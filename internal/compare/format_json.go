package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter writes the comparison set as JSON. HTML escaping is off so
// labels such as "Horizon & Strategy" survive unchanged.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the comparison set; the output ends with a newline
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return buf.String(), nil
}
