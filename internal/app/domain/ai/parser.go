package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// CleanJSONResponse removes markdown code blocks and cleans up the JSON response
func CleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ExtractJSONArray locates the outermost JSON array in a response that may
// carry surrounding prose or code fences and unmarshals it into v.
func ExtractJSONArray(responseText string, v any) error {
	return extract(responseText, '[', ']', v)
}

// ExtractJSONObject locates the outermost JSON object in a response that may
// carry surrounding prose or code fences and unmarshals it into v.
func ExtractJSONObject(responseText string, v any) error {
	return extract(responseText, '{', '}', v)
}

func extract(responseText string, open, close byte, v any) error {
	cleaned := CleanJSONResponse(responseText)

	start := strings.IndexByte(cleaned, open)
	end := strings.LastIndexByte(cleaned, close)
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("%w: no %c...%c found in response", models.ErrParseFailed, open, close)
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrParseFailed, err)
	}
	return nil
}
