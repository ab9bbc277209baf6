package analyses

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema requires every key of Result with its JSON type.
var resultSchema = gojsonschema.NewGoLoader(map[string]any{
	"type": "object",
	"properties": map[string]any{
		"management_tone":             stringProp(),
		"confidence_level":            stringProp(),
		"key_positives":               stringListProp(),
		"key_concerns":                stringListProp(),
		"forward_guidance":            stringProp(),
		"capacity_utilization_trends": stringProp(),
		"growth_initiatives":          stringListProp(),
	},
	"required": []string{
		"management_tone",
		"confidence_level",
		"key_positives",
		"key_concerns",
		"forward_guidance",
		"capacity_utilization_trends",
		"growth_initiatives",
	},
})

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func stringListProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

// ParseResult decodes raw model output into a Result.
// The JSON must be well formed; schema violations are returned separately so
// callers can decide whether to reject or render the partial result.
func ParseResult(raw string) (Result, []string, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Result{}, nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return Result{}, nil, fmt.Errorf("%w: top-level value is not an object", ErrSchemaParse)
	}

	violations, err := validateResult(doc)
	if err != nil {
		return Result{}, nil, err
	}

	var result Result
	if len(violations) == 0 {
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return Result{}, nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
		}
		return result, nil, nil
	}
	return lenientResult(doc.(map[string]any)), violations, nil
}

func validateResult(doc any) ([]string, error) {
	res, err := gojsonschema.Validate(resultSchema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate result: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, desc := range res.Errors() {
		out = append(out, desc.String())
	}
	return out, nil
}

// lenientResult keeps whatever fields have the right type and leaves the rest empty.
// Lists are never nil so JSON callers always see arrays.
func lenientResult(m map[string]any) Result {
	return Result{
		ManagementTone:            stringField(m, "management_tone"),
		ConfidenceLevel:           stringField(m, "confidence_level"),
		KeyPositives:              listField(m, "key_positives"),
		KeyConcerns:               listField(m, "key_concerns"),
		ForwardGuidance:           stringField(m, "forward_guidance"),
		CapacityUtilizationTrends: stringField(m, "capacity_utilization_trends"),
		GrowthInitiatives:         listField(m, "growth_initiatives"),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func listField(m map[string]any, key string) []string {
	raw, _ := m[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
