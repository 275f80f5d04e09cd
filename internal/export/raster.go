package export

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Page geometry in device pixels. The layout is 800 CSS px wide and drawn
// at scale 2; a page is the 7.5 x 10 in printable area of a US-letter
// sheet with 0.5 in margins.
const (
	rasterScale  = 2
	layoutWidth  = 800
	pageWidthPx  = layoutWidth * rasterScale
	pageHeightPx = pageWidthPx * 4 / 3

	paddingPx     float64 = 40 * rasterScale
	contentLeft   float64 = paddingPx
	contentRight  float64 = pageWidthPx - paddingPx
	contentBottom float64 = pageHeightPx
)

var (
	colorText     = color.Black
	colorRule     = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorStimBG   = color.RGBA{0xf9, 0xf9, 0xf9, 0xff}
	colorStimRule = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorHeadBG   = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

type fontStyle int

const (
	regular fontStyle = iota
	bold
	italic
)

var (
	fontsOnce sync.Once
	fonts     map[fontStyle]*truetype.Font
	fontsErr  error
)

func loadFonts() (map[fontStyle]*truetype.Font, error) {
	fontsOnce.Do(func() {
		fonts = map[fontStyle]*truetype.Font{}
		for style, ttf := range map[fontStyle][]byte{
			regular: goregular.TTF,
			bold:    gobold.TTF,
			italic:  goitalic.TTF,
		} {
			f, err := truetype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("failed to parse TTF: %w", err)
				return
			}
			fonts[style] = f
		}
	})
	return fonts, fontsErr
}

// typeface is a font at one pixel size, with a context for measuring.
type typeface struct {
	face    font.Face
	measure *gg.Context
	size    float64
	leading float64
}

func (t *typeface) lineHeight() float64 { return t.size * t.leading }

func (t *typeface) width(s string) float64 {
	w, _ := t.measure.MeasureString(s)
	return w
}

// wrap breaks text into lines no wider than width. Explicit newlines are
// kept, blank lines included. Words wider than width are split.
func (t *typeface) wrap(text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		for _, line := range t.measure.WordWrap(para, width) {
			lines = append(lines, t.split(line, width)...)
		}
	}
	return lines
}

// split hard-breaks a line that is still wider than width, one rune at a
// time. Every piece holds at least one rune.
func (t *typeface) split(line string, width float64) []string {
	if t.width(line) <= width {
		return []string{line}
	}
	var out []string
	var cur []rune
	for _, r := range line {
		if len(cur) > 0 && t.width(string(append(cur, r))) > width {
			out = append(out, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// baseline returns the text baseline for a line box starting at top.
func (t *typeface) baseline(top float64) float64 {
	m := t.face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	return top + (t.lineHeight()-(ascent+descent))/2 + ascent
}

// faces caches typefaces for one render. font.Face values keep a glyph
// cache and are not shared between renders.
type faces struct {
	fonts map[fontStyle]*truetype.Font
	cache map[string]*typeface
}

func (f *faces) get(style fontStyle, cssPx, leading float64) *typeface {
	key := strconv.Itoa(int(style)) + "/" + strconv.FormatFloat(cssPx, 'f', 2, 64) + "/" + strconv.FormatFloat(leading, 'f', 2, 64)
	if t, ok := f.cache[key]; ok {
		return t
	}
	size := cssPx * rasterScale
	face := truetype.NewFace(f.fonts[style], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	m := gg.NewContext(1, 1)
	m.SetFontFace(face)
	t := &typeface{face: face, measure: m, size: size, leading: leading}
	f.cache[key] = t
	return t
}

// row is an unbreakable horizontal band of the layout.
type row struct {
	height float64
	paint  func(dc *gg.Context, top float64)
}

// unit is a run of rows. A kept unit moves to the next page as a whole
// when it fits on one.
type unit struct {
	rows      []row
	keep      bool
	pageBreak bool
}

func (u unit) height() float64 {
	h := 0.0
	for _, r := range u.rows {
		h += r.height
	}
	return h
}

func gap(h float64) row {
	return row{height: h, paint: func(*gg.Context, float64) {}}
}

// Rasterize draws the document as page images.
func Rasterize(doc *Document) ([]image.Image, error) {
	loaded, err := loadFonts()
	if err != nil {
		return nil, err
	}
	l := &layout{faces: &faces{fonts: loaded, cache: map[string]*typeface{}}}
	units := l.document(doc)
	return paginate(units), nil
}

func paginate(units []unit) []image.Image {
	var pages []*gg.Context
	var dc *gg.Context
	y := 0.0
	top := 0.0
	newPage := func() {
		dc = gg.NewContext(pageWidthPx, pageHeightPx)
		dc.SetColor(color.White)
		dc.Clear()
		pages = append(pages, dc)
		y, top = 0, 0
	}
	newPage()
	y, top = paddingPx, paddingPx

	for _, u := range units {
		h := u.height()
		switch {
		case u.pageBreak && y > top:
			newPage()
		case u.keep && y > top && y+h > contentBottom && h <= contentBottom:
			newPage()
		}
		for _, r := range u.rows {
			if y+r.height > contentBottom && y > top {
				newPage()
			}
			r.paint(dc, y)
			y += r.height
		}
	}

	out := make([]image.Image, len(pages))
	for i, p := range pages {
		out[i] = p.Image()
	}
	return out
}

type layout struct {
	faces *faces
}

func (l *layout) document(doc *Document) []unit {
	units := []unit{l.titleBlock(doc)}
	if doc.HasSummary() {
		units = append(units, l.heading(HeadingSummary))
		units = append(units, l.summary(doc.Summary)...)
		units = append(units, unit{rows: []row{gap(30 * rasterScale)}})
	}
	units = append(units, l.heading(HeadingQuiz))
	for _, q := range doc.Questions {
		units = append(units, l.question(q))
	}
	key := l.heading(HeadingKey)
	key.pageBreak = true
	units = append(units, key)
	units = append(units, l.keyHeader())
	for _, q := range doc.Questions {
		units = append(units, l.keyRow(q))
	}
	return units
}

func (l *layout) titleBlock(doc *Document) unit {
	h1 := l.faces.get(bold, 24, 1.2)
	var rows []row
	for _, line := range h1.wrap(TitleText, contentRight-contentLeft) {
		rows = append(rows, centered(h1, line))
	}
	rows = append(rows, gap(10*rasterScale))
	for _, m := range [][2]string{
		{LabelSubject, doc.Subject},
		{LabelTopic, doc.Topic},
		{LabelLevel, doc.Level},
	} {
		rows = append(rows, l.metaRows(m[0], m[1])...)
	}
	rows = append(rows, gap(20*rasterScale), row{
		height: 30 * rasterScale,
		paint: func(dc *gg.Context, top float64) {
			dc.SetColor(colorText)
			dc.SetLineWidth(2 * rasterScale)
			dc.DrawLine(contentLeft, top+rasterScale, contentRight, top+rasterScale)
			dc.Stroke()
		},
	})
	return unit{rows: rows, keep: true}
}

// metaRows centers "<label> <value>" with the label in bold. Values too
// long for one line are wrapped below the label.
func (l *layout) metaRows(label, value string) []row {
	b := l.faces.get(bold, 14, 1.5)
	r := l.faces.get(regular, 14, 1.5)
	width := contentRight - contentLeft
	lw := b.width(label + " ")
	if lw+r.width(value) <= width {
		return []row{{
			height: r.lineHeight(),
			paint: func(dc *gg.Context, top float64) {
				x := contentLeft + (width-lw-r.width(value))/2
				dc.SetColor(colorText)
				dc.SetFontFace(b.face)
				dc.DrawString(label, x, b.baseline(top))
				dc.SetFontFace(r.face)
				dc.DrawString(value, x+lw, r.baseline(top))
			},
		}}
	}
	rows := []row{centered(b, label)}
	for _, line := range r.wrap(value, width) {
		rows = append(rows, centered(r, line))
	}
	return rows
}

func centered(t *typeface, line string) row {
	return row{
		height: t.lineHeight(),
		paint: func(dc *gg.Context, top float64) {
			dc.SetColor(colorText)
			dc.SetFontFace(t.face)
			dc.DrawStringAnchored(line, (contentLeft+contentRight)/2, t.baseline(top), 0.5, 0)
		},
	}
}

func textRow(t *typeface, line string, x float64) row {
	return row{
		height: t.lineHeight(),
		paint: func(dc *gg.Context, top float64) {
			dc.SetColor(colorText)
			dc.SetFontFace(t.face)
			dc.DrawString(line, x, t.baseline(top))
		},
	}
}

func (l *layout) heading(text string) unit {
	h2 := l.faces.get(bold, 18, 1.3)
	var rows []row
	for _, line := range h2.wrap(text, contentRight-contentLeft) {
		rows = append(rows, textRow(h2, line, contentLeft))
	}
	rows = append(rows, row{
		height: 20 * rasterScale,
		paint: func(dc *gg.Context, top float64) {
			y := top + 5*rasterScale
			dc.SetColor(colorRule)
			dc.SetLineWidth(rasterScale)
			dc.DrawLine(contentLeft, y, contentRight, y)
			dc.Stroke()
		},
	})
	return unit{rows: rows, keep: true}
}

// summary flows line by line across pages.
func (l *layout) summary(text string) []unit {
	t := l.faces.get(regular, 16, 1.6)
	var units []unit
	for _, line := range t.wrap(text, contentRight-contentLeft) {
		units = append(units, unit{rows: []row{textRow(t, line, contentLeft)}})
	}
	return units
}

func (l *layout) question(it Item) unit {
	num := l.faces.get(bold, 16, 1.5)
	stim := l.faces.get(italic, 14.67, 1.5)
	stem := l.faces.get(bold, 16, 1.5)
	opt := l.faces.get(regular, 16, 1.5)
	optKey := l.faces.get(bold, 16, 1.5)

	label := strconv.Itoa(it.Number) + "."
	x := contentLeft + num.width(label) + 10*rasterScale
	width := contentRight - x

	var rows []row
	first := true
	add := func(r row) {
		if first {
			inner := r.paint
			r.paint = func(dc *gg.Context, top float64) {
				dc.SetColor(colorText)
				dc.SetFontFace(num.face)
				dc.DrawString(label, contentLeft, num.baseline(top))
				inner(dc, top)
			}
			first = false
		}
		rows = append(rows, r)
	}

	if strings.TrimSpace(it.Stimulus) != "" {
		pad := 10.0 * rasterScale
		box := func(h float64, draw func(dc *gg.Context, top float64)) row {
			return row{height: h, paint: func(dc *gg.Context, top float64) {
				dc.SetColor(colorStimBG)
				dc.DrawRectangle(x, top, width, h)
				dc.Fill()
				dc.SetColor(colorStimRule)
				dc.DrawRectangle(x, top, 3*rasterScale, h)
				dc.Fill()
				if draw != nil {
					draw(dc, top)
				}
			}}
		}
		add(box(pad, nil))
		for _, line := range stim.wrap(it.Stimulus, width-2*pad-3*rasterScale) {
			line := line
			add(box(stim.lineHeight(), func(dc *gg.Context, top float64) {
				dc.SetColor(colorText)
				dc.SetFontFace(stim.face)
				dc.DrawString(line, x+pad+3*rasterScale, stim.baseline(top))
			}))
		}
		add(box(pad, nil))
		add(gap(10 * rasterScale))
	}

	for _, line := range stem.wrap(it.QuestionText, width) {
		add(textRow(stem, line, x))
	}
	add(gap(10 * rasterScale))

	ox := x + 10*rasterScale
	tx := ox + 25*rasterScale
	for _, o := range it.Options {
		key := o.Key + "."
		for i, line := range opt.wrap(o.Text, contentRight-tx) {
			r := textRow(opt, line, tx)
			if i == 0 {
				inner := r.paint
				r.paint = func(dc *gg.Context, top float64) {
					dc.SetColor(colorText)
					dc.SetFontFace(optKey.face)
					dc.DrawString(key, ox, optKey.baseline(top))
					inner(dc, top)
				}
			}
			add(r)
		}
		add(gap(5 * rasterScale))
	}
	add(gap(20 * rasterScale))

	return unit{rows: rows, keep: true}
}

// Answer key column geometry.
const (
	cellPad   float64 = 8 * rasterScale
	colNumber float64 = 50 * rasterScale
	colKey    float64 = 50 * rasterScale
)

func (l *layout) keyHeader() unit {
	b := l.faces.get(bold, 14.67, 1.4)
	h := b.lineHeight() + 2*cellPad
	return unit{keep: true, rows: []row{{
		height: h,
		paint: func(dc *gg.Context, top float64) {
			dc.SetColor(colorHeadBG)
			dc.DrawRectangle(contentLeft, top, contentRight-contentLeft, h)
			dc.Fill()
			drawCells(dc, top, h)
			dc.SetColor(colorText)
			dc.SetFontFace(b.face)
			y := b.baseline(top + cellPad)
			dc.DrawStringAnchored(ColumnNumber, contentLeft+colNumber/2, y, 0.5, 0)
			dc.DrawStringAnchored(ColumnKey, contentLeft+colNumber+colKey/2, y, 0.5, 0)
			third := contentLeft + colNumber + colKey
			dc.DrawStringAnchored(ColumnAnalysis, (third+contentRight)/2, y, 0.5, 0)
		},
	}}}
}

// keyRow is one answer-key table row. Each explanation line is its own
// band so a long row continues on the next page instead of being cut.
func (l *layout) keyRow(it Item) unit {
	r := l.faces.get(regular, 14.67, 1.4)
	b := l.faces.get(bold, 14.67, 1.4)
	x := contentLeft + colNumber + colKey + cellPad
	lines := r.wrap(it.Explanation, contentRight-cellPad-x)
	if len(lines) == 0 {
		lines = []string{""}
	}

	rows := make([]row, 0, len(lines))
	for i, line := range lines {
		first, last := i == 0, i == len(lines)-1
		h := r.lineHeight()
		pad := 0.0
		if first {
			h += cellPad
			pad = cellPad
		}
		if last {
			h += cellPad
		}
		line := line
		rows = append(rows, row{
			height: h,
			paint: func(dc *gg.Context, top float64) {
				drawColumns(dc, top, h, first, last)
				dc.SetColor(colorText)
				y := r.baseline(top + pad)
				if first {
					dc.SetFontFace(r.face)
					dc.DrawStringAnchored(strconv.Itoa(it.Number), contentLeft+colNumber/2, y, 0.5, 0)
					dc.SetFontFace(b.face)
					dc.DrawStringAnchored(it.CorrectAnswer, contentLeft+colNumber+colKey/2, y, 0.5, 0)
				}
				dc.SetFontFace(r.face)
				dc.DrawString(line, x, y)
			},
		})
	}
	return unit{keep: true, rows: rows}
}

// drawColumns draws the vertical rules of a table band, and the top and
// bottom rules when the band opens or closes a row.
func drawColumns(dc *gg.Context, top, h float64, first, last bool) {
	dc.SetColor(colorText)
	dc.SetLineWidth(rasterScale)
	for _, x := range []float64{contentLeft, contentLeft + colNumber, contentLeft + colNumber + colKey, contentRight} {
		dc.DrawLine(x, top, x, top+h)
	}
	if first {
		dc.DrawLine(contentLeft, top, contentRight, top)
	}
	if last {
		dc.DrawLine(contentLeft, top+h, contentRight, top+h)
	}
	dc.Stroke()
}

func drawCells(dc *gg.Context, top, h float64) {
	dc.SetColor(colorText)
	dc.SetLineWidth(rasterScale)
	dc.DrawRectangle(contentLeft, top, contentRight-contentLeft, h)
	dc.DrawLine(contentLeft+colNumber, top, contentLeft+colNumber, top+h)
	dc.DrawLine(contentLeft+colNumber+colKey, top, contentLeft+colNumber+colKey, top+h)
	dc.Stroke()
}
