// Package docops compiles processed content blocks into an ordered list
// of document edit operations with precomputed character offsets. The
// operations are transport-agnostic; the Google Docs adapter translates
// them into batchUpdate requests.
package docops

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/contentforge-backend/internal/markup"
)

// Named paragraph styles understood by the compiler. Adapters map them
// to whatever the target document backend expects.
const (
	StyleNormal   = "NORMAL"
	StyleHeading1 = "HEADING_1"
	StyleHeading2 = "HEADING_2"
	StyleHeading3 = "HEADING_3"
	StyleBullet   = "BULLET"
)

const (
	headingSpaceAbovePT = 20
	headingSpaceBelowPT = 10

	bulletPreset        = "BULLET_DISC_CIRCLE_SQUARE"
	bulletIndentBasePT  = 36
	bulletIndentStepPT  = 18
	bulletFirstLinePT   = 18
)

type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// Op is one document edit. Ops are emitted in non-decreasing offset
// order; a style range never precedes the insert that created its text.
type Op interface {
	isOp()
}

type InsertText struct {
	At   int
	Text string
}

type ParagraphStyle struct {
	Named         string
	SpaceAbovePT  float64
	SpaceBelowPT  float64
	BulletPreset  string
	IndentStartPT float64
	IndentFirstPT float64
}

type SetParagraphStyle struct {
	Start int
	End   int
	Style ParagraphStyle
}

type SetTextStyle struct {
	Start      int
	End        int
	Bold       bool
	Italic     bool
	Background *RGB
}

func (InsertText) isOp()        {}
func (SetParagraphStyle) isOp() {}
func (SetTextStyle) isOp()      {}

// Cursor tracks the insertion offset during one compilation pass. It is
// owned by a single compilation and never shared.
type Cursor struct {
	index int
}

func NewCursor(start int) *Cursor { return &Cursor{index: start} }

func (c *Cursor) Index() int { return c.index }

func (c *Cursor) Advance(n int) { c.index += n }

// Section pairs a heading with its processed body blocks.
type Section struct {
	Heading string
	Blocks  []markup.ContentBlock
}

// CompileSection emits operations for one section starting at
// startIndex and returns them with the index one past the section's
// trailing separator.
func CompileSection(sec Section, startIndex int) ([]Op, int) {
	cur := NewCursor(startIndex)
	var ops []Op

	headingLen := markup.CleanLen(sec.Heading) + 1
	ops = append(ops,
		InsertText{At: cur.Index(), Text: sec.Heading + "\n"},
		SetParagraphStyle{
			Start: cur.Index(),
			End:   cur.Index() + headingLen,
			Style: ParagraphStyle{
				Named:        StyleHeading1,
				SpaceAbovePT: headingSpaceAbovePT,
				SpaceBelowPT: headingSpaceBelowPT,
			},
		})
	cur.Advance(headingLen)

	for _, b := range sec.Blocks {
		clean := b.CleanText()
		n := markup.CleanLen(b.Text) + 1
		ops = append(ops,
			InsertText{At: cur.Index(), Text: clean + "\n"},
			SetParagraphStyle{
				Start: cur.Index(),
				End:   cur.Index() + n,
				Style: styleFor(b),
			})
		if b.HasInlineFormatting {
			for _, sp := range markup.Spans(b.Text) {
				if sp.Start == sp.End {
					continue
				}
				ops = append(ops, SetTextStyle{
					Start:  cur.Index() + sp.Start,
					End:    cur.Index() + sp.End,
					Bold:   sp.Kind == markup.SpanBold,
					Italic: sp.Kind == markup.SpanItalic,
				})
			}
		}
		cur.Advance(n)
	}

	ops = append(ops, InsertText{At: cur.Index(), Text: "\n"})
	cur.Advance(1)

	return ops, cur.Index()
}

// MeasureSection returns the number of characters CompileSection will
// insert for sec without building any operations. Measuring is cheap and
// side-effect free, so a document's section offsets can be computed
// up front.
func MeasureSection(sec Section) int {
	total := markup.CleanLen(sec.Heading) + 1
	for _, b := range sec.Blocks {
		total += markup.CleanLen(b.Text) + 1
	}
	return total + 1
}

// CompileDocument compiles every section against a single offset space
// beginning at startIndex. Sections are measured concurrently, then
// compiled sequentially at their precomputed offsets so emitted
// operations stay in non-decreasing offset order.
func CompileDocument(sections []Section, startIndex int) ([]Op, int) {
	lengths := make([]int, len(sections))
	var g errgroup.Group
	for i, sec := range sections {
		g.Go(func() error {
			lengths[i] = MeasureSection(sec)
			return nil
		})
	}
	_ = g.Wait() // measurement never fails

	var ops []Op
	at := startIndex
	for i, sec := range sections {
		secOps, end := CompileSection(sec, at)
		ops = append(ops, secOps...)
		at += lengths[i]
		if end != at {
			panic(fmt.Sprintf("docops: section %d compiled to %d, measured %d", i, end, at))
		}
	}
	return ops, at
}

func styleFor(b markup.ContentBlock) ParagraphStyle {
	switch b.Kind {
	case markup.KindHeading1:
		return headingStyle(StyleHeading1)
	case markup.KindHeading2:
		return headingStyle(StyleHeading2)
	case markup.KindHeading3:
		return headingStyle(StyleHeading3)
	case markup.KindBullet:
		return ParagraphStyle{
			Named:         StyleBullet,
			BulletPreset:  bulletPreset,
			IndentStartPT: float64(bulletIndentBasePT + b.IndentLevel*bulletIndentStepPT),
			IndentFirstPT: bulletFirstLinePT,
		}
	case markup.KindNormalText:
		return ParagraphStyle{Named: StyleNormal}
	default:
		panic(fmt.Sprintf("docops: unknown block kind %d", int(b.Kind)))
	}
}

func headingStyle(named string) ParagraphStyle {
	return ParagraphStyle{
		Named:        named,
		SpaceAbovePT: headingSpaceAbovePT,
		SpaceBelowPT: headingSpaceBelowPT,
	}
}
