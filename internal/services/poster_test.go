package services

import (
	"strings"
	"testing"
)

func TestImageSizeDimensions(t *testing.T) {
	cases := []struct {
		size ImageSize
		w, h int
	}{
		{SizeSquareHD, 1080, 1080},
		{SizeSquare, 800, 800},
		{SizePortrait43, 1080, 1440},
		{SizePortrait169, 1080, 1920},
		{SizeLandscape43, 1440, 1080},
		{SizeLandscape169, 1920, 1080},
		{ImageSize("BOGUS"), 1080, 1080},
	}
	for _, tc := range cases {
		w, h := tc.size.Dimensions()
		if w != tc.w || h != tc.h {
			t.Errorf("%s.Dimensions() = %dx%d, want %dx%d", tc.size, w, h, tc.w, tc.h)
		}
	}
}

func TestImageSizeString(t *testing.T) {
	if got := SizeLandscape169.String(); got != "1920x1080" {
		t.Fatalf("String() = %q", got)
	}
}

func TestStyleValueFallback(t *testing.T) {
	if got := StyleNeonFuturistic.StyleValue(); got != "digital_illustration/neon_calm" {
		t.Fatalf("StyleValue() = %q", got)
	}
	if got := IllustrationStyle("NOPE").StyleValue(); got != "digital_illustration/2d_art_poster" {
		t.Fatalf("fallback StyleValue() = %q", got)
	}
}

func TestValidateHexColors(t *testing.T) {
	got, err := validateHexColors([]string{"#4A90E2", "50e3c2", " #B8E986 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"#4A90E2", "#50E3C2", "#B8E986"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color %d = %q, want %q", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"#12345", "zzzzzz", "#FFAA"} {
		if _, err := validateHexColors([]string{bad}); err == nil {
			t.Errorf("validateHexColors(%q) accepted invalid color", bad)
		}
	}
}

func TestDesignPromptTruncatesDescription(t *testing.T) {
	content := PosterContent{
		Title:       "Launch Poster",
		TextOverlay: "Join us.",
		Description: strings.Repeat("x", 300),
	}
	got := designPrompt(content)
	if !strings.HasPrefix(got, "Launch Poster. Join us. ") {
		t.Fatalf("prompt prefix wrong: %q", got[:40])
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("prompt should end with ellipsis: %q", got)
	}
	want := len("Launch Poster. Join us. ") + 200 + len("...")
	if len(got) != want {
		t.Fatalf("prompt length = %d, want %d", len(got), want)
	}
}
