package docops

import (
	"testing"

	"github.com/yungbote/contentforge-backend/internal/markup"
)

func section(heading, raw string) Section {
	return Section{Heading: heading, Blocks: markup.Process(raw)}
}

func TestCompileSectionScenario(t *testing.T) {
	sec := section("Overview", "### Title\n- first\n- second\n**bold** and *italic*\n")
	ops, end := CompileSection(sec, 1)

	if want := 46; end != want {
		t.Fatalf("end index = %d, want %d", end, want)
	}
	if measured := MeasureSection(sec); 1+measured != end {
		t.Fatalf("measure %d does not match compiled end %d", measured, end)
	}

	var inserts []InsertText
	var paras []SetParagraphStyle
	var texts []SetTextStyle
	for _, op := range ops {
		switch v := op.(type) {
		case InsertText:
			inserts = append(inserts, v)
		case SetParagraphStyle:
			paras = append(paras, v)
		case SetTextStyle:
			texts = append(texts, v)
		}
	}

	wantInserts := []InsertText{
		{At: 1, Text: "Overview\n"},
		{At: 10, Text: "Title\n"},
		{At: 16, Text: "first\n"},
		{At: 22, Text: "second\n"},
		{At: 29, Text: "bold and italic\n"},
		{At: 45, Text: "\n"},
	}
	if len(inserts) != len(wantInserts) {
		t.Fatalf("got %d inserts, want %d", len(inserts), len(wantInserts))
	}
	for i, want := range wantInserts {
		if inserts[i] != want {
			t.Errorf("insert %d = %+v, want %+v", i, inserts[i], want)
		}
	}

	if len(paras) != 5 {
		t.Fatalf("got %d paragraph styles, want 5", len(paras))
	}
	if paras[0].Style.Named != StyleHeading1 || paras[0].Start != 1 || paras[0].End != 10 {
		t.Errorf("section heading style = %+v", paras[0])
	}
	if paras[1].Style.Named != StyleHeading3 {
		t.Errorf("block heading style = %+v", paras[1])
	}
	if paras[2].Style.Named != StyleBullet || paras[2].Style.IndentStartPT != 36 {
		t.Errorf("bullet style = %+v", paras[2])
	}
	if paras[4].Style.Named != StyleNormal {
		t.Errorf("normal style = %+v", paras[4])
	}

	wantTexts := []SetTextStyle{
		{Start: 29, End: 33, Bold: true},
		{Start: 38, End: 44, Italic: true},
	}
	if len(texts) != len(wantTexts) {
		t.Fatalf("got %d text styles, want %d: %+v", len(texts), len(wantTexts), texts)
	}
	for i, want := range wantTexts {
		if texts[i] != want {
			t.Errorf("text style %d = %+v, want %+v", i, texts[i], want)
		}
	}
}

func TestCompileSectionOffsetsMonotonic(t *testing.T) {
	sec := section("Heading", "one\n- two\n  - three\n**four** five\n## six\n")
	ops, _ := CompileSection(sec, 1)
	prev := 0
	for i, op := range ops {
		var start int
		switch v := op.(type) {
		case InsertText:
			start = v.At
		case SetParagraphStyle:
			start = v.Start
		case SetTextStyle:
			start = v.Start
		}
		if start < prev {
			t.Fatalf("op %d starts at %d, before %d", i, start, prev)
		}
		if _, ok := op.(InsertText); ok {
			prev = start
		}
	}
}

func TestCompileSectionEmptyBlock(t *testing.T) {
	sec := Section{
		Heading: "H",
		Blocks: []markup.ContentBlock{
			{Kind: markup.KindNormalText, Text: "§§§§", HasInlineFormatting: true},
		},
	}
	ops, end := CompileSection(sec, 1)
	// "H\n" is 2, the empty paragraph is 1, separator is 1.
	if end != 5 {
		t.Fatalf("end = %d, want 5", end)
	}
	found := false
	for _, op := range ops {
		if ins, ok := op.(InsertText); ok && ins.At == 3 && ins.Text == "\n" {
			found = true
		}
	}
	if !found {
		t.Fatalf("empty block did not insert a bare newline: %+v", ops)
	}
}

func TestBulletIndentMapping(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{0, 36},
		{1, 54},
		{2, 72},
	}
	for _, tt := range tests {
		b := markup.ContentBlock{Kind: markup.KindBullet, Text: "item", IndentLevel: tt.level}
		st := styleFor(b)
		if st.IndentStartPT != tt.want {
			t.Errorf("indent level %d: start %v, want %v", tt.level, st.IndentStartPT, tt.want)
		}
		if st.IndentFirstPT != 18 || st.BulletPreset != "BULLET_DISC_CIRCLE_SQUARE" {
			t.Errorf("indent level %d: style %+v", tt.level, st)
		}
	}
}

func TestCompileDocumentContinuity(t *testing.T) {
	sections := []Section{
		section("First", "alpha\n- beta\n"),
		section("Second", "**gamma**\n"),
		section("Third", ""),
	}
	ops, end := CompileDocument(sections, 1)

	want := 1
	for _, sec := range sections {
		want += MeasureSection(sec)
	}
	if end != want {
		t.Fatalf("end = %d, want %d", end, want)
	}

	// Every section's first insert must land exactly where the previous
	// section ended.
	var starts []int
	at := 1
	for _, sec := range sections {
		starts = append(starts, at)
		at += MeasureSection(sec)
	}
	seen := map[int]bool{}
	for _, op := range ops {
		if ins, ok := op.(InsertText); ok {
			seen[ins.At] = true
		}
	}
	for i, s := range starts {
		if !seen[s] {
			t.Errorf("section %d start %d has no insert", i, s)
		}
	}
}

func TestUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown block kind")
		}
	}()
	styleFor(markup.ContentBlock{Kind: markup.BlockKind(99)})
}
