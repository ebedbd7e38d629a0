// Package slideops compiles slide descriptors into ordered slide edit
// operations. Every layout uses a fixed geometry table, so each slide's
// operation list is self-contained and independent of its neighbors.
package slideops

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// LayoutKind names a slide layout. Values match the wire names produced
// by the structured content generator.
type LayoutKind string

const (
	TitleCentered       LayoutKind = "TITLE_CENTERED"
	TitleLeft           LayoutKind = "TITLE_LEFT"
	TitleGradient       LayoutKind = "TITLE_GRADIENT"
	TwoColumnsEqual     LayoutKind = "TWO_COLUMNS_EQUAL"
	TwoColumnsLeftWide  LayoutKind = "TWO_COLUMNS_LEFT_WIDE"
	TwoColumnsRightWide LayoutKind = "TWO_COLUMNS_RIGHT_WIDE"
	ImageCentered       LayoutKind = "IMAGE_CENTERED"
	QuoteCentered       LayoutKind = "QUOTE_CENTERED"
	QuoteSide           LayoutKind = "QUOTE_SIDE"
	BulletPoints        LayoutKind = "BULLET_POINTS"
	NumberPoints        LayoutKind = "NUMBER_POINTS"
)

// ParseLayout normalizes a layout name. Unknown names fall back to
// TitleCentered so a malformed descriptor still renders something.
func ParseLayout(name string) LayoutKind {
	k := LayoutKind(strings.ToUpper(strings.TrimSpace(name)))
	switch k {
	case TitleCentered, TitleLeft, TitleGradient,
		TwoColumnsEqual, TwoColumnsLeftWide, TwoColumnsRightWide,
		ImageCentered, QuoteCentered, QuoteSide,
		BulletPoints, NumberPoints:
		return k
	default:
		return TitleCentered
	}
}

// Slide is one slide's intent. Only the fields relevant to the layout
// are consulted; the rest are ignored.
type Slide struct {
	Layout     LayoutKind
	Title      string
	Subtitle   string
	Points     []string
	LeftTitle  string
	RightTitle string

	LeftContent  string
	RightContent string

	ImageURL string
	Caption  string

	Quote   string
	Author  string
	Context string
}

// Placeholder text substituted for required fields the generator left
// empty. A hole in the content must never abort a build.
const (
	placeholderTitle  = "Untitled Slide"
	placeholderLeft   = "No content provided for left column"
	placeholderRight  = "No content provided for right column"
	placeholderPoints = "No points provided"
	placeholderQuote  = "No quote provided"
	placeholderAuthor = "Unknown"
)

type Position struct {
	Left float64
	Top  float64
}

type Size struct {
	Width  float64
	Height float64
}

// Op is one slide edit, consumed by the Slides adapter.
type Op interface {
	isOp()
}

type CreateShape struct {
	ID      string
	SlideID string
	Shape   string
	Pos     Position
	Size    Size
	Fill    *RGB
}

type InsertText struct {
	ShapeID string
	Text    string
}

type SetTextStyle struct {
	ShapeID    string
	Bold       bool
	FontSizePT float64
	Color      RGB
}

type CreateImage struct {
	ID      string
	SlideID string
	URL     string
	Pos     Position
	Size    Size
}

func (CreateShape) isOp()  {}
func (InsertText) isOp()   {}
func (SetTextStyle) isOp() {}
func (CreateImage) isOp()  {}

// URLChecker validates that an image URL is safe to hand to the slide
// backend. Validation may do network I/O, so it takes a context.
type URLChecker interface {
	ValidImageURL(ctx context.Context, url string) bool
}

// Compiler turns slide descriptors into operations. Safe for concurrent
// use; all state is per-call.
type Compiler struct {
	checker URLChecker
	newID   func(prefix string) string
}

func NewCompiler(checker URLChecker) *Compiler {
	return &Compiler{checker: checker, newID: objectID}
}

func objectID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:10]
}

// Compile lays out one slide. The background rectangle always comes
// first so the layout's boxes stack above it.
func (c *Compiler) Compile(ctx context.Context, slideID string, s Slide, theme Theme) []Op {
	ops := []Op{CreateShape{
		ID:      c.newID("RECTANGLE"),
		SlideID: slideID,
		Shape:   "RECTANGLE",
		Size:    Size{Width: 720, Height: 405},
		Fill:    &theme.Background,
	}}

	switch ParseLayout(string(s.Layout)) {
	case TitleCentered, TitleLeft, TitleGradient:
		ops = append(ops, c.titleSlide(slideID, s, theme)...)
	case TwoColumnsEqual, TwoColumnsLeftWide, TwoColumnsRightWide:
		ops = append(ops, c.twoColumnSlide(slideID, s, theme)...)
	case ImageCentered:
		ops = append(ops, c.imageSlide(ctx, slideID, s, theme)...)
	case QuoteCentered, QuoteSide:
		ops = append(ops, c.quoteSlide(slideID, s, theme)...)
	case BulletPoints, NumberPoints:
		ops = append(ops, c.pointsSlide(slideID, s, theme)...)
	}
	return ops
}

func (c *Compiler) titleSlide(slideID string, s Slide, theme Theme) []Op {
	layout := ParseLayout(string(s.Layout))
	var ops []Op

	textColor := theme.Primary
	if layout == TitleGradient {
		darker := RGB{
			Red:   theme.Primary.Red * 0.8,
			Green: theme.Primary.Green * 0.8,
			Blue:  theme.Primary.Blue * 0.8,
		}
		ops = append(ops, CreateShape{
			ID:      c.newID("RECTANGLE"),
			SlideID: slideID,
			Shape:   "RECTANGLE",
			Size:    Size{Width: 720, Height: 405},
			Fill:    &darker,
		})
		textColor = theme.TextLight
	}

	left := layout == TitleLeft
	ops = append(ops, c.textBox(slideID, titleOrDefault(s.Title),
		Position{Left: 50, Top: pick(left, 80, 120)},
		Size{Width: pick(left, 300, 620), Height: pick(left, 200, 60)},
		fontStyle{bold: true, sizePT: pick(left, 36, 40), color: textColor})...)

	if s.Subtitle != "" {
		ops = append(ops, c.textBox(slideID, s.Subtitle,
			Position{Left: 50, Top: pick(left, 200, 220)},
			Size{Width: pick(left, 300, 620), Height: pick(left, 60, 40)},
			fontStyle{sizePT: pick(left, 20, 24), color: theme.Secondary})...)
	}
	return ops
}

func (c *Compiler) twoColumnSlide(slideID string, s Slide, theme Theme) []Op {
	var leftWidth, rightWidth, rightStart float64
	switch ParseLayout(string(s.Layout)) {
	case TwoColumnsLeftWide:
		leftWidth, rightWidth, rightStart = 400, 200, 470
	case TwoColumnsRightWide:
		leftWidth, rightWidth, rightStart = 200, 400, 270
	default:
		leftWidth, rightWidth, rightStart = 300, 300, 370
	}

	ops := c.textBox(slideID, titleOrDefault(s.Title),
		Position{Left: 50, Top: 40},
		Size{Width: 620, Height: 60},
		fontStyle{bold: true, sizePT: 28, color: theme.Primary})

	leftTop := 120.0
	if s.LeftTitle != "" {
		ops = append(ops, c.textBox(slideID, s.LeftTitle,
			Position{Left: 50, Top: leftTop},
			Size{Width: leftWidth, Height: 30},
			fontStyle{bold: true, sizePT: 16, color: theme.Secondary})...)
		leftTop = 160
	}
	ops = append(ops, c.textBox(slideID, defaultIfEmpty(s.LeftContent, placeholderLeft),
		Position{Left: 50, Top: leftTop},
		Size{Width: leftWidth, Height: 200},
		fontStyle{sizePT: 14, color: theme.Text})...)

	rightTop := 120.0
	if s.RightTitle != "" {
		ops = append(ops, c.textBox(slideID, s.RightTitle,
			Position{Left: rightStart, Top: rightTop},
			Size{Width: rightWidth, Height: 30},
			fontStyle{bold: true, sizePT: 16, color: theme.Secondary})...)
		rightTop = 160
	}
	ops = append(ops, c.textBox(slideID, defaultIfEmpty(s.RightContent, placeholderRight),
		Position{Left: rightStart, Top: rightTop},
		Size{Width: rightWidth, Height: 200},
		fontStyle{sizePT: 14, color: theme.Text})...)

	return ops
}

func (c *Compiler) imageSlide(ctx context.Context, slideID string, s Slide, theme Theme) []Op {
	ops := c.textBox(slideID, titleOrDefault(s.Title),
		Position{Left: 50, Top: 30},
		Size{Width: 620, Height: 50},
		fontStyle{bold: true, sizePT: 28, color: theme.Primary})

	if s.ImageURL != "" && c.checker != nil && c.checker.ValidImageURL(ctx, s.ImageURL) {
		ops = append(ops, CreateImage{
			ID:      c.newID("Image"),
			SlideID: slideID,
			URL:     s.ImageURL,
			Pos:     Position{Left: 110, Top: 100},
			Size:    Size{Width: 500, Height: 260},
		})
	}

	if s.Caption != "" {
		ops = append(ops, c.textBox(slideID, s.Caption,
			Position{Left: 110, Top: 370},
			Size{Width: 500, Height: 25},
			fontStyle{sizePT: 14, color: theme.Text})...)
	}
	return ops
}

func (c *Compiler) quoteSlide(slideID string, s Slide, theme Theme) []Op {
	quote := "\"" + defaultIfEmpty(s.Quote, placeholderQuote) + "\""
	author := "- " + defaultIfEmpty(s.Author, placeholderAuthor)

	if ParseLayout(string(s.Layout)) == QuoteCentered {
		ops := c.textBox(slideID, quote,
			Position{Left: 100, Top: 100},
			Size{Width: 520, Height: 100},
			fontStyle{bold: true, sizePT: 32, color: theme.Primary})
		ops = append(ops, c.textBox(slideID, author,
			Position{Left: 100, Top: 220},
			Size{Width: 520, Height: 40},
			fontStyle{sizePT: 20, color: theme.Secondary})...)
		if s.Context != "" {
			ops = append(ops, c.textBox(slideID, s.Context,
				Position{Left: 100, Top: 270},
				Size{Width: 520, Height: 60},
				fontStyle{sizePT: 16, color: theme.Text})...)
		}
		return ops
	}

	ops := c.textBox(slideID, quote,
		Position{Left: 50, Top: 80},
		Size{Width: 400, Height: 200},
		fontStyle{bold: true, sizePT: 24, color: theme.Primary})
	ops = append(ops, c.textBox(slideID, author,
		Position{Left: 470, Top: 80},
		Size{Width: 200, Height: 40},
		fontStyle{sizePT: 18, color: theme.Secondary})...)
	if s.Context != "" {
		ops = append(ops, c.textBox(slideID, s.Context,
			Position{Left: 470, Top: 130},
			Size{Width: 200, Height: 150},
			fontStyle{sizePT: 16, color: theme.Text})...)
	}
	return ops
}

func (c *Compiler) pointsSlide(slideID string, s Slide, theme Theme) []Op {
	ops := c.textBox(slideID, titleOrDefault(s.Title),
		Position{Left: 50, Top: 40},
		Size{Width: 620, Height: 60},
		fontStyle{bold: true, sizePT: 28, color: theme.Primary})

	points := s.Points
	if len(points) == 0 {
		points = []string{placeholderPoints}
	}
	numbered := ParseLayout(string(s.Layout)) == NumberPoints
	var body strings.Builder
	for i, p := range points {
		if numbered {
			fmt.Fprintf(&body, "%d. %s\n", i+1, p)
		} else {
			fmt.Fprintf(&body, "• %s\n", p)
		}
	}

	ops = append(ops, c.textBox(slideID, strings.TrimSpace(body.String()),
		Position{Left: 70, Top: 120},
		Size{Width: 580, Height: 250},
		fontStyle{sizePT: 18, color: theme.Text})...)
	return ops
}

type fontStyle struct {
	bold   bool
	sizePT float64
	color  RGB
}

func (c *Compiler) textBox(slideID, text string, pos Position, size Size, style fontStyle) []Op {
	id := c.newID("TextBox")
	return []Op{
		CreateShape{ID: id, SlideID: slideID, Shape: "TEXT_BOX", Pos: pos, Size: size},
		InsertText{ShapeID: id, Text: text},
		SetTextStyle{ShapeID: id, Bold: style.bold, FontSizePT: style.sizePT, Color: style.color},
	}
}

func titleOrDefault(title string) string { return defaultIfEmpty(title, placeholderTitle) }

func defaultIfEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// HSVToRGB converts hue in degrees and saturation/value in [0, 1] to an
// RGB triple in [0, 1].
func HSVToRGB(h, s, v float64) RGB {
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return RGB{v, t, p}
	case 1:
		return RGB{q, v, p}
	case 2:
		return RGB{p, v, t}
	case 3:
		return RGB{p, q, v}
	case 4:
		return RGB{t, p, v}
	default:
		return RGB{v, p, q}
	}
}

// RotatingColor spreads total items evenly around the hue wheel and
// returns the color for item i.
func RotatingColor(i, total int) RGB {
	if total <= 0 {
		total = 1
	}
	return HSVToRGB(float64(i)/float64(total)*360, 0.8, 0.9)
}
