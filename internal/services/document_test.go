package services

import (
	"testing"

	"github.com/yungbote/contentforge-backend/internal/docops"
	"github.com/yungbote/contentforge-backend/internal/platform/gdocs"
)

func TestCompileDocumentFromContent(t *testing.T) {
	content := &DocumentContent{
		Title: "Plan",
		Sections: []DocumentSection{
			{Title: "Intro", Content: "**Bold** start here."},
			{Title: "Details", Content: "- first\n- second"},
		},
	}

	ops := compileDocument(content)
	if len(ops) == 0 {
		t.Fatal("no operations emitted")
	}

	first, ok := ops[0].(docops.InsertText)
	if !ok {
		t.Fatalf("first op = %T, want InsertText", ops[0])
	}
	if first.At != 1 || first.Text != "Intro\n" {
		t.Fatalf("first insert = %+v", first)
	}

	// Inline bold in the first section must surface as a text style op.
	var styled bool
	for _, op := range ops {
		if ts, ok := op.(docops.SetTextStyle); ok && ts.Bold {
			styled = true
		}
	}
	if !styled {
		t.Fatal("no bold SetTextStyle op for **Bold** run")
	}
}

func TestParseExportFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    gdocs.ExportFormat
		wantErr bool
	}{
		{"pdf", gdocs.ExportPDF, false},
		{"PDF", gdocs.ExportPDF, false},
		{" docx ", gdocs.ExportDOCX, false},
		{"html", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := parseExportFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseExportFormat(%q) accepted invalid format", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseExportFormat(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseExportFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"Quarterly Plan 2026": "Quarterly_Plan_2026",
		"a/b\\c:d":            "abcd",
		"   ":                 "document",
		"":                    "document",
		"already_clean":       "already_clean",
	}
	for in, want := range cases {
		if got := sanitizeFileName(in); got != want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
