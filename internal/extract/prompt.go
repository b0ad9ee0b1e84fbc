package extract

import (
	"fmt"
	"strings"
)

const ParsePrompt = `Parse the following text into a structured infographic format with a title and a sequence of steps. If no title is found, provide a suitable professional one based on the context. Assign a logical icon name (using Lucide icons, e.g., 'Activity', 'Check', 'Target', 'Layers', 'Users', 'Settings', 'Zap', 'Shield') to each step.`

// jsonShape tells providers without schema support what to return.
const jsonShape = `Respond with ONLY a JSON object, no other text, of the form:
{"title": string, "subtitle": string (optional), "steps": [{"id": string, "number": integer, "title": string, "description": string, "iconName": string}]}
Steps must be in the order they appear in the text. Return {"title": "...", "steps": []} if the text has no distinct steps.`

// BuildPrompt creates the model prompt for text. A non-empty titleHint, such
// as the title of an uploaded file, is offered as context.
func BuildPrompt(text, titleHint string) string {
	var sb strings.Builder
	sb.WriteString(ParsePrompt)
	if titleHint != "" {
		sb.WriteString(fmt.Sprintf("\nThe source document is titled %q.", titleHint))
	}
	sb.WriteString("\n\nInput Text:\n")
	sb.WriteString(text)
	return sb.String()
}

// responseSchema is the structured-output schema sent to Gemini.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title":    map[string]any{"type": "STRING"},
		"subtitle": map[string]any{"type": "STRING"},
		"steps": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"id":          map[string]any{"type": "STRING"},
					"number":      map[string]any{"type": "INTEGER"},
					"title":       map[string]any{"type": "STRING"},
					"description": map[string]any{"type": "STRING"},
					"iconName":    map[string]any{"type": "STRING"},
				},
				"required": []string{"id", "number", "title", "description"},
			},
		},
	},
	"required": []string{"title", "steps"},
}
