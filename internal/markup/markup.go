// Package markup turns model-produced markdown into classified content
// blocks. Bold and italic runs are rewritten to private sentinel markers
// so that later stages can compute clean-text offsets without re-parsing
// the original delimiters.
package markup

import (
	"strings"
	"unicode/utf8"
)

// Sentinel markers substituted for markdown emphasis delimiters. The
// section sign never appears in generated content, which makes stripping
// unambiguous.
const (
	BoldMarker   = "§§"
	ItalicMarker = "§"
)

type BlockKind int

const (
	KindNormalText BlockKind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindBullet
)

func (k BlockKind) String() string {
	switch k {
	case KindNormalText:
		return "normal_text"
	case KindHeading1:
		return "heading1"
	case KindHeading2:
		return "heading2"
	case KindHeading3:
		return "heading3"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// ContentBlock is one logical paragraph of processed markdown. Text still
// carries sentinel markers; CleanText strips them.
type ContentBlock struct {
	Kind                BlockKind
	Text                string
	IndentLevel         int
	HasInlineFormatting bool
}

func (b ContentBlock) CleanText() string { return StripMarkers(b.Text) }

type SpanKind int

const (
	SpanBold SpanKind = iota
	SpanItalic
)

// EmphasisSpan is a half-open [Start, End) range in clean-text rune
// coordinates of a single block.
type EmphasisSpan struct {
	Start int
	End   int
	Kind  SpanKind
}

// Process splits raw markdown into content blocks. Blank lines are
// skipped. Heading prefixes are matched longest first on the formatted
// line; bullets are detected on the raw line so that leading indentation
// is still available for the indent level.
func Process(raw string) []ContentBlock {
	var blocks []ContentBlock
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		processed := ApplyInlineMarkers(strings.TrimSpace(line))
		if rest, ok := strings.CutPrefix(processed, "### "); ok {
			blocks = append(blocks, ContentBlock{Kind: KindHeading3, Text: rest})
			continue
		}
		if rest, ok := strings.CutPrefix(processed, "## "); ok {
			blocks = append(blocks, ContentBlock{Kind: KindHeading2, Text: rest})
			continue
		}
		if rest, ok := strings.CutPrefix(processed, "# "); ok {
			blocks = append(blocks, ContentBlock{Kind: KindHeading1, Text: rest})
			continue
		}
		stripped := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* ") {
			blocks = append(blocks, ContentBlock{
				Kind:                KindBullet,
				Text:                ApplyInlineMarkers(stripped[2:]),
				IndentLevel:         (len(line) - len(stripped)) / 2,
				HasInlineFormatting: true,
			})
			continue
		}
		blocks = append(blocks, ContentBlock{
			Kind:                KindNormalText,
			Text:                processed,
			HasInlineFormatting: true,
		})
	}
	return blocks
}

// ApplyInlineMarkers rewrites markdown emphasis to sentinel markers.
// Bold runs (** or __) are resolved before italic runs (* or _), so a
// bold pair is never misread as two italics. Unterminated delimiters are
// left in place as literal text.
func ApplyInlineMarkers(text string) string {
	return applyItalic(applyBold(text))
}

func applyBold(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		if i+1 < len(text) && (text[i:i+2] == "**" || text[i:i+2] == "__") {
			marker := text[i : i+2]
			end := strings.Index(text[i+2:], marker)
			if end >= 0 {
				end += i + 2
				out.WriteString(text[:i])
				out.WriteString(BoldMarker)
				out.WriteString(text[i+2 : end])
				out.WriteString(BoldMarker)
				text = text[end+2:]
				i = 0
				continue
			}
		}
		i++
	}
	out.WriteString(text)
	return out.String()
}

func applyItalic(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		// A delimiter adjacent to an identical character is part of a
		// bold run that survived the first pass; skip it. A candidate
		// close immediately followed by the same character is rejected
		// for the same reason.
		if (c == '*' || c == '_') &&
			(i == 0 || text[i-1] != c) &&
			(i+1 >= len(text) || text[i+1] != c) {
			end := strings.IndexByte(text[i+1:], c)
			if end >= 0 {
				end += i + 1
				if end+1 >= len(text) || text[end+1] != c {
					out.WriteString(text[:i])
					out.WriteString(ItalicMarker)
					out.WriteString(text[i+1 : end])
					out.WriteString(ItalicMarker)
					text = text[end+1:]
					i = 0
					continue
				}
			}
		}
		i++
	}
	out.WriteString(text)
	return out.String()
}

// StripMarkers removes all sentinel markers. Bold markers are removed
// first so a lone section sign never splits a bold pair. The operation
// is idempotent.
func StripMarkers(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, BoldMarker, ""), ItalicMarker, "")
}

// Spans locates emphasis ranges in marked text. Offsets are rune
// positions in the clean text, with all sentinel markers removed. Bold
// spans come first; bold markers are dropped from the scan state before
// italic markers are paired, so bold sentinels can never be mistaken for
// italic ones. An unpaired trailing marker yields no span.
func Spans(text string) []EmphasisSpan {
	var spans []EmphasisSpan

	pos := 0
	for {
		start := strings.Index(text[pos:], BoldMarker)
		if start < 0 {
			break
		}
		start += pos
		end := strings.Index(text[start+len(BoldMarker):], BoldMarker)
		if end < 0 {
			break
		}
		end += start + len(BoldMarker)
		spans = append(spans, EmphasisSpan{
			Start: cleanLen(text[:start]),
			End:   cleanLen(text[:end]),
			Kind:  SpanBold,
		})
		pos = end + len(BoldMarker)
	}

	italicText := strings.ReplaceAll(text, BoldMarker, "")
	pos = 0
	for {
		start := strings.Index(italicText[pos:], ItalicMarker)
		if start < 0 {
			break
		}
		start += pos
		end := strings.Index(italicText[start+len(ItalicMarker):], ItalicMarker)
		if end < 0 {
			break
		}
		end += start + len(ItalicMarker)
		spans = append(spans, EmphasisSpan{
			Start: cleanLen(italicText[:start]),
			End:   cleanLen(italicText[:end]),
			Kind:  SpanItalic,
		})
		pos = end + len(ItalicMarker)
	}

	return spans
}

// CleanLen is the rune length of text once sentinel markers are removed.
// Later stages advance document cursors by this measure.
func CleanLen(text string) int { return cleanLen(text) }

func cleanLen(text string) int {
	return utf8.RuneCountInString(StripMarkers(text))
}
