package tags

import "testing"

func TestNormalize(t *testing.T) {
	normalize := New([]string{"Karma", "#Luck Pool"})
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "#", want: ""},
		{in: "karma", want: "#karma"},
		{in: "  #Karma ", want: "#karma"},
		{in: "##karma", want: "#karma"},
		{in: "Luck Pool", want: "#luck pool"},
		{in: "# Luck Pool ", want: "#luck pool"},
		{in: "ÉCLAT", want: "#éclat"},
		{in: "1", want: "#karma"},
		{in: "2", want: "#luck pool"},
		{in: "3", want: ""},
		{in: "0", want: ""},
		{in: "-1", want: ""},
	}
	for _, tc := range tests {
		if got := normalize(tc.in); got != tc.want {
			t.Fatalf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNumericListEntryIsNotReindexed(t *testing.T) {
	normalize := New([]string{"2", "karma"})
	if got := normalize("1"); got != "#2" {
		t.Fatalf("normalize(1) = %q, want %q", got, "#2")
	}
}

func TestDefaultHasNoList(t *testing.T) {
	if got := Default("1"); got != "" {
		t.Fatalf("Default(1) = %q, want empty", got)
	}
}

func TestEqual(t *testing.T) {
	if !Default.Equal("#Karma", "karma") {
		t.Fatal("expected tags to match")
	}
	if Default.Equal("my karma", "mykarma") {
		t.Fatal("inner whitespace must be significant")
	}
	if Default.Equal("", "") {
		t.Fatal("empty tags must never match")
	}
	var nilNormalizer Normalizer
	if !nilNormalizer.Equal("luck", "#LUCK") {
		t.Fatal("nil normalizer should fall back to Default")
	}
}
