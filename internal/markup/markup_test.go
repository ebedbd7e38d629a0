package markup

import (
	"reflect"
	"testing"
)

func TestApplyInlineMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no formatting here", "no formatting here"},
		{"bold stars", "**bold**", "§§bold§§"},
		{"bold underscores", "__bold__", "§§bold§§"},
		{"italic stars", "a *word* b", "a §word§ b"},
		{"italic underscore", "a _word_ b", "a §word§ b"},
		{"trailing italic", "ends *here*", "ends §here§"},
		{"bold then italic", "**bold** and *italic*", "§§bold§§ and §italic§"},
		{"unterminated bold", "**hello", "**hello"},
		{"unterminated italic", "a *stray", "a *stray"},
		{"two bold runs", "**a** x **b**", "§§a§§ x §§b§§"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyInlineMarkers(tt.in)
			if got != tt.want {
				t.Fatalf("ApplyInlineMarkers(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkersIdempotent(t *testing.T) {
	in := ApplyInlineMarkers("**bold** and *italic* text")
	once := StripMarkers(in)
	twice := StripMarkers(once)
	if once != twice {
		t.Fatalf("strip not idempotent: %q then %q", once, twice)
	}
	if once != "bold and italic text" {
		t.Fatalf("unexpected clean text %q", once)
	}
}

func TestProcess(t *testing.T) {
	raw := "### Title\n- first\n- second\n**bold** and *italic*\n"
	blocks := Process(raw)
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(blocks))
	}
	if blocks[0].Kind != KindHeading3 || blocks[0].CleanText() != "Title" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Kind != KindBullet || blocks[1].IndentLevel != 0 || blocks[1].CleanText() != "first" {
		t.Errorf("block 1 = %+v", blocks[1])
	}
	if blocks[2].Kind != KindBullet || blocks[2].IndentLevel != 0 || blocks[2].CleanText() != "second" {
		t.Errorf("block 2 = %+v", blocks[2])
	}
	last := blocks[3]
	if last.Kind != KindNormalText || last.CleanText() != "bold and italic" {
		t.Fatalf("block 3 = %+v", last)
	}
	want := []EmphasisSpan{
		{Start: 0, End: 4, Kind: SpanBold},
		{Start: 9, End: 15, Kind: SpanItalic},
	}
	if got := Spans(last.Text); !reflect.DeepEqual(got, want) {
		t.Fatalf("Spans(%q) = %+v, want %+v", last.Text, got, want)
	}
}

func TestProcessHeadings(t *testing.T) {
	tests := []struct {
		in   string
		kind BlockKind
		text string
	}{
		{"# One", KindHeading1, "One"},
		{"## Two", KindHeading2, "Two"},
		{"### Three", KindHeading3, "Three"},
		{"#NoSpace", KindNormalText, "#NoSpace"},
	}
	for _, tt := range tests {
		blocks := Process(tt.in)
		if len(blocks) != 1 {
			t.Fatalf("Process(%q): got %d blocks", tt.in, len(blocks))
		}
		if blocks[0].Kind != tt.kind || blocks[0].CleanText() != tt.text {
			t.Errorf("Process(%q) = %+v, want kind %v text %q", tt.in, blocks[0], tt.kind, tt.text)
		}
	}
}

func TestProcessBulletIndent(t *testing.T) {
	tests := []struct {
		in     string
		indent int
		text   string
	}{
		{"- item", 0, "item"},
		{"  - item", 1, "item"},
		{"    - item", 2, "item"},
		{"* starred", 0, "starred"},
	}
	for _, tt := range tests {
		blocks := Process(tt.in)
		if len(blocks) != 1 || blocks[0].Kind != KindBullet {
			t.Fatalf("Process(%q) = %+v", tt.in, blocks)
		}
		if blocks[0].IndentLevel != tt.indent || blocks[0].CleanText() != tt.text {
			t.Errorf("Process(%q): indent %d text %q, want %d %q",
				tt.in, blocks[0].IndentLevel, blocks[0].CleanText(), tt.indent, tt.text)
		}
	}
}

func TestProcessSkipsBlankLines(t *testing.T) {
	blocks := Process("first\n\n   \nsecond\n")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestUnterminatedBoldStaysLiteral(t *testing.T) {
	blocks := Process("**hello")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	if got := blocks[0].CleanText(); got != "**hello" {
		t.Fatalf("clean text %q, want literal **hello", got)
	}
	if spans := Spans(blocks[0].Text); len(spans) != 0 {
		t.Fatalf("expected no spans, got %+v", spans)
	}
}

func TestSpansMultipleBold(t *testing.T) {
	text := ApplyInlineMarkers("**ab** mid **cd**")
	want := []EmphasisSpan{
		{Start: 0, End: 2, Kind: SpanBold},
		{Start: 7, End: 9, Kind: SpanBold},
	}
	if got := Spans(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("Spans = %+v, want %+v", got, want)
	}
}
