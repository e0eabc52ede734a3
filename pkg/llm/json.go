package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object in model output")

// DecodeJSON pulls the outermost JSON object out of model output, which is
// often wrapped in markdown fences or prose, and unmarshals it into v.
func DecodeJSON(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(raw[start:end+1]), v)
}
