package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":       "hello-world",
		"  spaces  around ":   "spaces-around",
		"already-a-slug":      "already-a-slug",
		"Ünïcode and 2 words": "n-code-and-2-words",
		"!!!":                 "",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			if got := Slugify(in); got != want {
				t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello <a href=\"x\">there</a></p>\n\n<b>friend</b>")
	if got != "Hello there friend" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"long", "abcdef", 5, "abcde..."},
		{"runes", "ééééé", 2, "éé..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n, "..."); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	got := ParseKeyValues("color=blue\n\n =ignored\nsize = large\r\nflag\n")
	want := map[string]string{"color": "blue", "size": "large", "flag": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleLine(t *testing.T) {
	got := SingleLine("  Bob <b>\r\nthe builder\n")
	if got != "Bob &lt;b&gt; the builder" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestWithScheme(t *testing.T) {
	cases := map[string]string{
		"":                    "",
		"example.com":         "http://example.com",
		"https://example.com": "https://example.com",
		"HTTP://Example.com":  "HTTP://Example.com",
	}
	for in, want := range cases {
		if got := WithScheme(in); got != want {
			t.Errorf("WithScheme(%q) = %q, want %q", in, got, want)
		}
	}
}
