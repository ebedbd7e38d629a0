package slideops

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

// deterministic ids so op sequences can be compared across calls
func testCompiler(checker URLChecker) *Compiler {
	c := NewCompiler(checker)
	n := 0
	c.newID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
	return c
}

type stubChecker struct{ valid bool }

func (s stubChecker) ValidImageURL(context.Context, string) bool { return s.valid }

func TestLookupThemeFallback(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := LookupTheme(name); got.Name != name {
			t.Errorf("LookupTheme(%q) = %q", name, got.Name)
		}
	}
	if got := LookupTheme("midnight"); got.Name != "MIDNIGHT" {
		t.Errorf("lowercase lookup = %q", got.Name)
	}
	if got := LookupTheme("NEON_DREAMS"); got.Name != DefaultThemeName {
		t.Errorf("unknown theme = %q, want %q", got.Name, DefaultThemeName)
	}
	if KnownTheme("BOGUS") {
		t.Error("KnownTheme(BOGUS) = true")
	}
}

func TestUnknownLayoutFallsBackToTitleCentered(t *testing.T) {
	theme := LookupTheme("TECH")
	s := Slide{Title: "Hello", Subtitle: "World"}

	s.Layout = "BOGUS"
	bogus := testCompiler(nil).Compile(context.Background(), "slide1", s, theme)
	s.Layout = TitleCentered
	centered := testCompiler(nil).Compile(context.Background(), "slide1", s, theme)

	if !reflect.DeepEqual(bogus, centered) {
		t.Fatalf("BOGUS layout compiled differently:\n%+v\nvs\n%+v", bogus, centered)
	}
}

func TestTitleCenteredGeometry(t *testing.T) {
	theme := LookupTheme("TECH")
	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout:   TitleCentered,
		Title:    "T",
		Subtitle: "S",
	}, theme)

	// background, title box (3 ops), subtitle box (3 ops)
	if len(ops) != 7 {
		t.Fatalf("got %d ops, want 7", len(ops))
	}
	bg, ok := ops[0].(CreateShape)
	if !ok || bg.Shape != "RECTANGLE" || bg.Size != (Size{720, 405}) || bg.Fill == nil || *bg.Fill != theme.Background {
		t.Fatalf("background = %+v", ops[0])
	}
	title, ok := ops[1].(CreateShape)
	if !ok || title.Shape != "TEXT_BOX" || title.Pos != (Position{50, 120}) || title.Size != (Size{620, 60}) {
		t.Fatalf("title box = %+v", ops[1])
	}
	style, ok := ops[3].(SetTextStyle)
	if !ok || !style.Bold || style.FontSizePT != 40 || style.Color != theme.Primary {
		t.Fatalf("title style = %+v", ops[3])
	}
	subStyle, ok := ops[6].(SetTextStyle)
	if !ok || subStyle.Bold || subStyle.FontSizePT != 24 || subStyle.Color != theme.Secondary {
		t.Fatalf("subtitle style = %+v", ops[6])
	}
}

func TestTitleGradientAddsDarkerOverlay(t *testing.T) {
	theme := LookupTheme("SUNSET")
	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: TitleGradient,
		Title:  "T",
	}, theme)

	overlay, ok := ops[1].(CreateShape)
	if !ok || overlay.Fill == nil {
		t.Fatalf("expected gradient overlay, got %+v", ops[1])
	}
	want := RGB{theme.Primary.Red * 0.8, theme.Primary.Green * 0.8, theme.Primary.Blue * 0.8}
	if *overlay.Fill != want {
		t.Fatalf("overlay fill = %+v, want %+v", *overlay.Fill, want)
	}
	style := ops[4].(SetTextStyle)
	if style.Color != theme.TextLight {
		t.Fatalf("gradient title color = %+v, want textLight", style.Color)
	}
}

func TestTwoColumnPresets(t *testing.T) {
	theme := LookupTheme("MINIMAL")
	tests := []struct {
		layout     LayoutKind
		leftWidth  float64
		rightWidth float64
		rightStart float64
	}{
		{TwoColumnsEqual, 300, 300, 370},
		{TwoColumnsLeftWide, 400, 200, 470},
		{TwoColumnsRightWide, 200, 400, 270},
	}
	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
				Layout:       tt.layout,
				Title:        "T",
				LeftContent:  "L",
				RightContent: "R",
			}, theme)
			// background + title box + left box + right box
			if len(ops) != 10 {
				t.Fatalf("got %d ops, want 10", len(ops))
			}
			left := ops[4].(CreateShape)
			if left.Pos != (Position{50, 120}) || left.Size != (Size{tt.leftWidth, 200}) {
				t.Errorf("left box = %+v", left)
			}
			right := ops[7].(CreateShape)
			if right.Pos != (Position{tt.rightStart, 120}) || right.Size != (Size{tt.rightWidth, 200}) {
				t.Errorf("right box = %+v", right)
			}
		})
	}
}

func TestTwoColumnPlaceholders(t *testing.T) {
	theme := LookupTheme("TECH")
	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: TwoColumnsEqual,
		Title:  "T",
	}, theme)

	var texts []string
	for _, op := range ops {
		if ins, ok := op.(InsertText); ok {
			texts = append(texts, ins.Text)
		}
	}
	if len(texts) != 3 {
		t.Fatalf("got %d text inserts: %v", len(texts), texts)
	}
	if texts[1] == "" || texts[2] == "" {
		t.Fatal("empty column text made it into the output")
	}
	if texts[1] != "No content provided for left column" || texts[2] != "No content provided for right column" {
		t.Fatalf("unexpected placeholders: %v", texts[1:])
	}
}

func TestColumnTitlesShiftContentDown(t *testing.T) {
	theme := LookupTheme("TECH")
	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout:       TwoColumnsEqual,
		Title:        "T",
		LeftTitle:    "LT",
		LeftContent:  "L",
		RightContent: "R",
	}, theme)

	// left header box then left content shifted to y=160, right content
	// stays at y=120
	leftContent := ops[7].(CreateShape)
	if leftContent.Pos.Top != 160 {
		t.Fatalf("left content top = %v, want 160", leftContent.Pos.Top)
	}
	rightContent := ops[10].(CreateShape)
	if rightContent.Pos.Top != 120 {
		t.Fatalf("right content top = %v, want 120", rightContent.Pos.Top)
	}
}

func TestImageSlide(t *testing.T) {
	theme := LookupTheme("FOREST")
	slide := Slide{
		Layout:   ImageCentered,
		Title:    "T",
		ImageURL: "https://example.com/pic.png",
		Caption:  "cap",
	}

	ops := testCompiler(stubChecker{valid: true}).Compile(context.Background(), "s1", slide, theme)
	var img *CreateImage
	for _, op := range ops {
		if ci, ok := op.(CreateImage); ok {
			img = &ci
		}
	}
	if img == nil {
		t.Fatal("no CreateImage emitted for valid URL")
	}
	if img.Pos != (Position{110, 100}) || img.Size != (Size{500, 260}) {
		t.Fatalf("image geometry = %+v", img)
	}

	ops = testCompiler(stubChecker{valid: false}).Compile(context.Background(), "s1", slide, theme)
	for _, op := range ops {
		if _, ok := op.(CreateImage); ok {
			t.Fatal("CreateImage emitted for invalid URL")
		}
	}
}

func TestQuoteSlides(t *testing.T) {
	theme := LookupTheme("MIDNIGHT")
	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout:  QuoteCentered,
		Quote:   "stay hungry",
		Author:  "someone",
		Context: "about appetite",
	}, theme)

	var texts []string
	for _, op := range ops {
		if ins, ok := op.(InsertText); ok {
			texts = append(texts, ins.Text)
		}
	}
	want := []string{"\"stay hungry\"", "- someone", "about appetite"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("quote texts = %v, want %v", texts, want)
	}

	ops = testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: QuoteSide,
		Quote:  "q",
		Author: "a",
	}, theme)
	quoteBox := ops[1].(CreateShape)
	if quoteBox.Pos != (Position{50, 80}) || quoteBox.Size != (Size{400, 200}) {
		t.Fatalf("side quote box = %+v", quoteBox)
	}
	authorBox := ops[4].(CreateShape)
	if authorBox.Pos != (Position{470, 80}) || authorBox.Size != (Size{200, 40}) {
		t.Fatalf("side author box = %+v", authorBox)
	}
}

func TestPointsSlides(t *testing.T) {
	theme := LookupTheme("TECH")
	points := []string{"alpha", "beta", "gamma"}

	ops := testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: BulletPoints,
		Title:  "T",
		Points: points,
	}, theme)
	body := lastInsertedText(t, ops)
	if body != "• alpha\n• beta\n• gamma" {
		t.Fatalf("bullet body = %q", body)
	}

	ops = testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: NumberPoints,
		Title:  "T",
		Points: points,
	}, theme)
	body = lastInsertedText(t, ops)
	if body != "1. alpha\n2. beta\n3. gamma" {
		t.Fatalf("numbered body = %q", body)
	}

	ops = testCompiler(nil).Compile(context.Background(), "s1", Slide{
		Layout: BulletPoints,
		Title:  "T",
	}, theme)
	if body = lastInsertedText(t, ops); !strings.Contains(body, "No points provided") {
		t.Fatalf("empty points body = %q", body)
	}
}

func lastInsertedText(t *testing.T, ops []Op) string {
	t.Helper()
	var last string
	for _, op := range ops {
		if ins, ok := op.(InsertText); ok {
			last = ins.Text
		}
	}
	return last
}

func TestHSVToRGB(t *testing.T) {
	got := HSVToRGB(0, 0.8, 0.9)
	want := RGB{0.9, 0.18, 0.18}
	const eps = 1e-9
	if math.Abs(got.Red-want.Red) > eps || math.Abs(got.Green-want.Green) > eps || math.Abs(got.Blue-want.Blue) > eps {
		t.Fatalf("HSVToRGB(0, .8, .9) = %+v, want %+v", got, want)
	}
	mid := HSVToRGB(120, 1, 1)
	if mid != (RGB{0, 1, 0}) {
		t.Fatalf("HSVToRGB(120, 1, 1) = %+v, want pure green", mid)
	}
}
