package services

// Response schemas sent to the hosted model alongside the instruction
// templates. The model is asked for JSON conforming to these; the tagged
// extraction outcome still guards against non-conforming answers.

func stringSchema() map[string]any {
	return map[string]any{"type": "STRING"}
}

func stringListSchema() map[string]any {
	return map[string]any{
		"type":  "ARRAY",
		"items": map[string]any{"type": "STRING"},
	}
}

// EdibleProductSchema describes the initial product extraction.
func EdibleProductSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"product_name":           stringSchema(),
			"product_appearance":     stringSchema(),
			"product_description":    stringSchema(),
			"manufacturing_location": stringSchema(),
			"ingridients_used":       stringListSchema(),
			"allergen_information":   stringListSchema(),
			"cautions_and_warnings":  stringListSchema(),
			"nutritional_info":       map[string]any{"type": "OBJECT"},
		},
		"required": []string{
			"product_name",
			"product_appearance",
			"product_description",
			"manufacturing_location",
			"ingridients_used",
		},
	}
}

// SearchQueriesSchema asks for a plain list of query strings.
func SearchQueriesSchema() map[string]any {
	return stringListSchema()
}

// AssessmentSchema is shared by the environmental and health analyses:
// harmful aspects, positive aspects (an empty list is a valid, meaningful
// answer) and alternatives.
func AssessmentSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"harmful_aspects":  stringListSchema(),
			"positive_aspects": stringListSchema(),
			"alternatives":     stringListSchema(),
		},
		"required": []string{"harmful_aspects", "positive_aspects", "alternatives"},
	}
}

// ReportContentSchema describes the medical report extraction.
func ReportContentSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"report_type":    stringSchema(),
			"report_content": stringListSchema(),
		},
		"required": []string{"report_type", "report_content"},
	}
}
