package services

import (
	"reflect"
	"testing"

	"github.com/yungbote/contentforge-backend/internal/slideops"
)

func TestSplitColumns(t *testing.T) {
	cases := []struct {
		name    string
		content []string
		left    string
		right   string
	}{
		{
			name: "explicit markers",
			content: []string{
				"leftContent: Benefits of the approach",
				"rightContent: Risks to watch",
			},
			left:  "Benefits of the approach",
			right: "Risks to watch",
		},
		{
			name:    "markers out of order",
			content: []string{"rightContent: B", "leftContent: A"},
			left:    "A",
			right:   "B",
		},
		{
			name:    "positional fallback",
			content: []string{"first column", "second column"},
			left:    "first column",
			right:   "second column",
		},
		{
			name:    "single item without marker",
			content: []string{"only one"},
			left:    "",
			right:   "",
		},
		{
			name:    "marker mid string",
			content: []string{"note leftContent: A"},
			left:    "A",
			right:   "",
		},
		{
			name:    "empty",
			content: nil,
			left:    "",
			right:   "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			left, right := splitColumns(tc.content)
			if left != tc.left || right != tc.right {
				t.Fatalf("splitColumns(%v) = (%q, %q), want (%q, %q)", tc.content, left, right, tc.left, tc.right)
			}
		})
	}
}

func TestToSlidePoints(t *testing.T) {
	s := toSlide(SlideDescriptor{
		Layout:  "BULLET_POINTS",
		Title:   "Key Takeaways",
		Content: []string{"one", "two", "three"},
	})
	if s.Layout != slideops.BulletPoints {
		t.Fatalf("layout = %s, want %s", s.Layout, slideops.BulletPoints)
	}
	if !reflect.DeepEqual(s.Points, []string{"one", "two", "three"}) {
		t.Fatalf("points = %v", s.Points)
	}
}

func TestToSlideQuote(t *testing.T) {
	s := toSlide(SlideDescriptor{
		Layout:  "QUOTE_SIDE",
		Title:   "On Simplicity",
		Content: []string{"Less is more.", "Mies van der Rohe", "Bauhaus era"},
	})
	if s.Quote != "Less is more." || s.Author != "Mies van der Rohe" || s.Context != "Bauhaus era" {
		t.Fatalf("quote fields = %q / %q / %q", s.Quote, s.Author, s.Context)
	}
}

func TestToSlideUnknownLayoutFallsBack(t *testing.T) {
	s := toSlide(SlideDescriptor{
		Layout:  "SECTION",
		Title:   "Part Two",
		Content: []string{"a", "b"},
	})
	if s.Layout != slideops.TitleCentered {
		t.Fatalf("layout = %s, want %s", s.Layout, slideops.TitleCentered)
	}
	if s.Subtitle != "a\nb" {
		t.Fatalf("subtitle = %q", s.Subtitle)
	}
}

func TestToSlideTitleKeepsExplicitSubtitle(t *testing.T) {
	s := toSlide(SlideDescriptor{
		Layout:   "TITLE_GRADIENT",
		Title:    "Opening",
		Subtitle: "A short story",
		Content:  []string{"ignored"},
	})
	if s.Subtitle != "A short story" {
		t.Fatalf("subtitle = %q", s.Subtitle)
	}
}

func TestToSlideImage(t *testing.T) {
	s := toSlide(SlideDescriptor{
		Layout:   "IMAGE_CENTERED",
		Title:    "Architecture",
		Content:  []string{"caption line"},
		ImageURL: "https://cdn.example.com/img.png",
	})
	if s.ImageURL != "https://cdn.example.com/img.png" {
		t.Fatalf("imageURL = %q", s.ImageURL)
	}
	if s.Caption != "caption line" {
		t.Fatalf("caption = %q", s.Caption)
	}
}

func TestIsTwoColumnLayout(t *testing.T) {
	cases := map[string]bool{
		"TWO_COLUMNS_EQUAL":      true,
		"two_columns_left_wide":  true,
		"TWO_COLUMNS_RIGHT_WIDE": true,
		"BULLET_POINTS":          false,
		"":                       false,
	}
	for layout, want := range cases {
		if got := isTwoColumnLayout(layout); got != want {
			t.Errorf("isTwoColumnLayout(%q) = %v, want %v", layout, got, want)
		}
	}
}
