package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// SourceImage is an image carried as a data-URI: data:<mime>;base64,<payload>.
type SourceImage string

func (s SourceImage) IsZero() bool {
	return s == ""
}

// Mode tags how a prompt was produced.
type Mode string

const (
	ModeCatalog  Mode = "catalog"
	ModeFreeText Mode = "freetext"
)

// ParseMode accepts the canonical names plus the tab names used by the UI,
// ignoring case and surrounding whitespace.
func ParseMode(v string) (Mode, bool) {
	switch cases.Fold().String(strings.TrimSpace(v)) {
	case string(ModeCatalog), "merch":
		return ModeCatalog, true
	case string(ModeFreeText), "edit":
		return ModeFreeText, true
	default:
		return "", false
	}
}

// GenerationRecord is one completed generation. Records are never mutated
// after creation.
type GenerationRecord struct {
	ID          string      `json:"id"`
	SourceImage SourceImage `json:"source_image"`
	ResultImage SourceImage `json:"result_image"`
	PromptText  string      `json:"prompt"`
	CreatedAt   time.Time   `json:"created_at"`
	Mode        Mode        `json:"mode"`
}

// Filename is the name offered when the result is saved.
func (r GenerationRecord) Filename() string {
	return "nanomerch-" + r.ID + ".png"
}
