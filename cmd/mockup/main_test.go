package main

import (
	"errors"
	"strings"
	"testing"

	"nanomerch/internal/domain"
)

func TestResolveInstruction(t *testing.T) {
	catalog := domain.MerchCatalog()
	tests := []struct {
		name     string
		product  string
		text     string
		wantMode domain.Mode
		wantSub  string
		wantErr  bool
	}{
		{name: "product", product: "cap", wantMode: domain.ModeCatalog, wantSub: "Baseball Cap"},
		{name: "product wins over text", product: " mug ", text: "gold", wantMode: domain.ModeCatalog, wantSub: "Ceramic Mug"},
		{name: "text", text: "  make it gold ", wantMode: domain.ModeFreeText, wantSub: "make it gold"},
		{name: "unknown product", product: "umbrella", wantErr: true},
		{name: "nothing", text: "   ", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, mode, err := resolveInstruction(catalog, tc.product, tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tc.wantMode || !strings.Contains(got, tc.wantSub) {
				t.Fatalf("got %q (%s), want %q (%s)", got, mode, tc.wantSub, tc.wantMode)
			}
		})
	}

	if _, _, err := resolveInstruction(catalog, "umbrella", ""); !errors.Is(err, domain.ErrUnknownProduct) {
		t.Fatalf("err = %v, want ErrUnknownProduct", err)
	}
}
