package itembank

// bankSchema is the JSON schema an item bank file must satisfy before
// decoding. Parameter-level invariants (ascending thresholds, positive
// discrimination) are checked after decoding, where model context is known.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"model": map[string]any{
			"type": "string",
			"enum": []any{"1PL", "2PL", "3PL", "GRM"},
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"a": map[string]any{
						"type": []any{"number", "null"},
					},
					"b": map[string]any{
						"type": []any{"number", "null"},
					},
					"c": map[string]any{
						"type":    "number",
						"minimum": 0,
					},
					"thresholds": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": []any{"number", "null"},
						},
					},
					"domain": map[string]any{
						"type": "string",
					},
					"text": map[string]any{
						"type": "string",
					},
				},
				"required":             []any{"id"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"model", "items"},
	"additionalProperties": false,
}
