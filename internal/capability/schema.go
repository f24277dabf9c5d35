package capability

import "github.com/abhisek/lingua/internal/llm"

// GrammarSchema is the structured reply of the grammar checker.
var GrammarSchema = &llm.Schema{
	Name:        "grammar-check",
	Description: "Grammar errors found in a learner's sentence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"errors": map[string]any{
				"type":        "array",
				"description": "One entry per error; empty when the sentence is correct",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"rule": map[string]any{
							"type":        "string",
							"description": "Short upper-case rule identifier, e.g. DE_CASE or VERB_POSITION",
						},
						"message": map[string]any{
							"type":        "string",
							"description": "One-sentence explanation in English including the correction",
						},
					},
					"required":             []any{"rule", "message"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"errors"},
		"additionalProperties": false,
	},
}

// DefinitionSchema is the structured reply of the LLM dictionary.
var DefinitionSchema = &llm.Schema{
	Name:        "word-definition",
	Description: "English meaning of a single foreign-language word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"found": map[string]any{
				"type":        "boolean",
				"description": "False if the input is not a real word of the language",
			},
			"definition": map[string]any{
				"type":        "string",
				"description": "Short English gloss, e.g. 'house' or 'to learn'; empty when not found",
			},
		},
		"required":             []any{"found", "definition"},
		"additionalProperties": false,
	},
}

// ExplanationSchema is the structured reply of the grammar explainer.
var ExplanationSchema = &llm.Schema{
	Name:        "grammar-explain",
	Description: "Grammar explanation of a sentence in English and Bengali",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"english": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Explanation in English, at most four sentences",
			},
			"bengali": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The same explanation in Bengali",
			},
		},
		"required":             []any{"english", "bengali"},
		"additionalProperties": false,
	},
}
