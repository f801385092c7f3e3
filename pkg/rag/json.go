package rag

import (
	"encoding/json"
	"strings"
)

// parseJSONObject decodes a JSON object from model output, tolerating
// leading/trailing prose around the braces.
func parseJSONObject(content string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		return parsed
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil
	}
	return parsed
}

func jsonString(parsed map[string]any, key string) string {
	if parsed == nil {
		return ""
	}
	if v, ok := parsed[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func jsonFloat(parsed map[string]any, key string) *float64 {
	if parsed == nil {
		return nil
	}
	switch v := parsed[key].(type) {
	case float64:
		return &v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}
	return nil
}
