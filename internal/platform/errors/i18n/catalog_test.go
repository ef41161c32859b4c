package i18n

import "testing"

func TestFormatRendersMetadata(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format("REPLENISH_UNAFFORDABLE", map[string]string{
		"Title":     "Luck",
		"Cost":      "2",
		"Available": "1",
	})
	want := "Replenishing Luck costs 2, only 1 available."
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatMissingMetadataRendersEmpty(t *testing.T) {
	cat := GetCatalog("en-US")
	if got := cat.Format("RESOURCE_EMPTY", nil); got != " has nothing left to spend." {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatUnknownCodeReturnsCode(t *testing.T) {
	cat := GetCatalog("en-US")
	if got := cat.Format("NOPE", nil); got != "NOPE" {
		t.Fatalf("Format = %q, want %q", got, "NOPE")
	}
}

func TestGetCatalogFallsBackToBaseLocale(t *testing.T) {
	cat := GetCatalog("fr-FR")
	if cat.Locale() != BaseLocale {
		t.Fatalf("Locale = %q, want %q", cat.Locale(), BaseLocale)
	}
	if got := cat.Format("NOT_FOUND", nil); got != "The requested record was not found." {
		t.Fatalf("Format = %q", got)
	}
}

func TestGetCatalogPortuguese(t *testing.T) {
	cat := GetCatalog("pt-BR")
	if got := cat.Format("ROLL_KARMA_UNAVAILABLE", nil); got != "Carma não pode ser gasto neste resultado." {
		t.Fatalf("Format = %q", got)
	}
}

func TestNewCatalogKeepsInvalidTemplateVerbatim(t *testing.T) {
	cat := NewCatalog("en-US", map[Code]string{
		"BROKEN": "Bad {{.Title",
		"PLAIN":  "Plain text.",
	})
	tests := []struct {
		code Code
		want string
	}{
		{"BROKEN", "Bad {{.Title"},
		{"PLAIN", "Plain text."},
	}
	for _, tt := range tests {
		if got := cat.Format(tt.code, map[string]string{"Title": "Luck"}); got != tt.want {
			t.Fatalf("Format(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if !cat.Has("PLAIN") || cat.Has("MISSING") {
		t.Fatal("Has did not match catalog contents")
	}
}

func TestGetCatalogCachesResolvedLocale(t *testing.T) {
	if GetCatalog("pt-BR") != GetCatalog("pt-BR") {
		t.Fatal("expected cached catalog")
	}
}
