package helper

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tech Meetup", "tech-meetup"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-Slugged", "already-slugged"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Cafés & Bars", "cafes-bars"},
		{"UPPER", "upper"},
		{"symbols!!!here", "symbols-here"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	names := []string{"Tech Meetup", "Cafés & Bars", "plain"}
	for _, name := range names {
		once := GenerateSlug(name)
		twice := GenerateSlug(once)
		if once != twice {
			t.Errorf("slug not idempotent for %q: %q -> %q", name, once, twice)
		}
	}
}

func TestGenerateSlugNormalizesToSameValue(t *testing.T) {
	// Two names that differ only in case/spacing must collide on the same
	// slug, which is what the category Conflict check relies on.
	a := GenerateSlug("Tech Meetup")
	b := GenerateSlug("tech   MEETUP")
	if a != b {
		t.Errorf("expected identical slugs, got %q and %q", a, b)
	}
}
