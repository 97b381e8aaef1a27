package prompt

import (
	"fmt"
	"strings"

	"nanomerch/internal/domain"
)

const mockupTemplate = "a high-quality, photorealistic product shot of a %s featuring the provided logo or design clearly visible on it, professional studio lighting, commercial photography style."

var editSuggestions = []string{
	"Make it cyberpunk style",
	"Turn it into a pencil sketch",
	"Add a sunset background",
	"Make the object gold",
}

// FromCatalogSelection renders the mockup instruction for a catalog product.
func FromCatalogSelection(entry domain.CatalogEntry) string {
	return fmt.Sprintf(mockupTemplate, entry.Name)
}

// FromFreeText returns the user's instruction with surrounding whitespace
// removed. Blank instructions are rejected before any network call.
func FromFreeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domain.ErrEmptyPrompt
	}
	return trimmed, nil
}

// Suggestions are the quick instructions offered by the editor.
func Suggestions() []string {
	out := make([]string, len(editSuggestions))
	copy(out, editSuggestions)
	return out
}
