package utils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("short input must pass through: %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("zero limit must return empty: %q", got)
	}
}

func TestTail(t *testing.T) {
	text := "first paragraph.\n\nsecond paragraph that closes the chapter."
	got := Tail(text, 40)
	if got != "second paragraph that closes the chapter." {
		t.Fatalf("unexpected tail: %q", got)
	}
	if got = Tail("short", 40); got != "short" {
		t.Fatalf("short input must pass through: %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"The Hollow Crown":   "the_hollow_crown",
		"  Ash & Bronze!  ":  "ash_bronze",
		"Ashes of Valdrath ": "ashes_of_valdrath",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
