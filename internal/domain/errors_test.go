package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("Error 403, Message: key revoked")
	err := fmt.Errorf("generate: %w", Classify(KindPermissionDenied, cause))

	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("errors.Is(err, ErrPermissionDenied) = false")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false")
	}
	if got := KindOf(err); got != KindPermissionDenied {
		t.Fatalf("KindOf() = %v, want %v", got, KindPermissionDenied)
	}
	if got, want := UserMessage(err), "API Key invalid or permission denied."; got != want {
		t.Fatalf("UserMessage() = %q, want %q", got, want)
	}
}

func TestUserMessageUnclassifiedKeepsCause(t *testing.T) {
	err := Classify(KindUnclassifiedService, errors.New("Error 429, Message: quota exhausted"))
	if got, want := UserMessage(err), "Error 429, Message: quota exhausted"; got != want {
		t.Fatalf("UserMessage() = %q, want %q", got, want)
	}

	bare := Classify(KindUnclassifiedService, nil)
	if got, want := UserMessage(bare), "Failed to generate image. Please try again."; got != want {
		t.Fatalf("UserMessage() = %q, want %q", got, want)
	}
}

func TestKindOfSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{err: nil, want: KindNone},
		{err: errors.New("boom"), want: KindNone},
		{err: fmt.Errorf("read: %w", ErrUnreadableFile), want: KindUnreadableFile},
		{err: ErrEmptyPrompt, want: KindEmptyPrompt},
		{err: ErrMissingCredential, want: KindMissingCredential},
		{err: ErrGenerationInProgress, want: KindNone},
	}
	for _, tc := range tests {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestCatalogLookupAndOrder(t *testing.T) {
	c := MerchCatalog()
	if c.Len() != 6 {
		t.Fatalf("catalog len = %d, want 6", c.Len())
	}
	entries := c.Entries()
	if entries[0].ID != "tshirt" || entries[5].ID != "notebook" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	mug, ok := c.Lookup("mug")
	if !ok || mug.Name != "Ceramic Mug" {
		t.Fatalf("Lookup(mug) = %+v, %v", mug, ok)
	}
	if _, ok := c.Lookup("umbrella"); ok {
		t.Fatalf("Lookup(umbrella) should miss")
	}

	entries[1].Name = "mutated"
	if again, _ := c.Lookup("mug"); again.Name != "Ceramic Mug" {
		t.Fatalf("catalog mutated through Entries(): %+v", again)
	}
}

func TestNewCatalogSkipsDuplicates(t *testing.T) {
	c := NewCatalog(
		CatalogEntry{ID: "a", Name: "first"},
		CatalogEntry{ID: "a", Name: "second"},
		CatalogEntry{ID: "", Name: "blank"},
	)
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if e, _ := c.Lookup("a"); e.Name != "first" {
		t.Fatalf("Lookup(a).Name = %q, want first", e.Name)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"catalog":    ModeCatalog,
		"merch":      ModeCatalog,
		"Catalog":    ModeCatalog,
		" MERCH ":    ModeCatalog,
		"freetext":   ModeFreeText,
		"edit":       ModeFreeText,
		"FREETEXT":   ModeFreeText,
		"FreeText\t": ModeFreeText,
	} {
		got, ok := ParseMode(in)
		if !ok || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", in, got, ok)
		}
	}
	for _, in := range []string{"video", "", "free text"} {
		if _, ok := ParseMode(in); ok {
			t.Fatalf("ParseMode(%q) should fail", in)
		}
	}
}
