package unit

import "github.com/joeydtaylor/steeze-plugin/pkg/value"

// collectData always asks the host for company, department and notes.
func collectData() Outcome {
	schema, _ := value.MustFromAny(map[string]any{
		"title":       "Additional Information",
		"description": "Please provide the following information",
		"fields": []any{
			map[string]any{
				"name":     "company",
				"type":     "text",
				"label":    "Company Name",
				"required": true,
			},
			map[string]any{
				"name":  "department",
				"type":  "select",
				"label": "Department",
				"options": []any{
					map[string]any{"value": "engineering", "label": "Engineering"},
					map[string]any{"value": "sales", "label": "Sales"},
					map[string]any{"value": "marketing", "label": "Marketing"},
					map[string]any{"value": "support", "label": "Support"},
				},
			},
			map[string]any{
				"name":  "notes",
				"type":  "textarea",
				"label": "Additional Notes",
				"rows":  3,
			},
		},
	}).AsMap()
	return RequireInput(schema)
}
